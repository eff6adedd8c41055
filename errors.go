package emojimosaic

import (
	"errors"

	"github.com/tilemancer/emojimosaic/glyph"
)

// The three failure kinds a run can end with. Every error returned by this
// package wraps exactly one of them, so callers can classify failures with
// errors.Is. All of them are terminal: no retries, no partial output.
var (
	// ErrLoad: the glyph library is missing, unreadable or empty.
	ErrLoad = glyph.ErrLoad
	// ErrDecode: the source image could not be read or decoded.
	ErrDecode = errors.New("source image decode failed")
	// ErrEncode: the output could not be encoded or written.
	ErrEncode = errors.New("output image encode failed")
)
