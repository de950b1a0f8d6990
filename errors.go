package gifp

import "errors"

// ErrNoTerminator is Decode's recoverable LZW failure: the frame decoded
// so far is still handed to the sink, and Decode returns it alongside the
// negative (truncated) count, so a caller can tell "the last frame's LZW
// stream had no terminator" apart from "the buffer simply ran out"
// (err == nil, count < 0). Every other LZW failure (bad code size, a
// non-clear initial code, an empty first sub-block, a stream exhausted
// mid-code — see package lzw) ends decoding at its frame: that frame
// and any after it are not handed to the sink, and Decode returns no
// error for it, matching the source algorithm this package is ported from,
// which has no per-frame recovery path beyond this one case.
var ErrNoTerminator = errors.New("gif: lzw stream ended without a terminator byte")

// Container-level errors (components C1-C4, C6). These are the Go-native
// surface for the validation failures spec'd to "return 0" in the source
// this package is ported from.
var (
	ErrNilData      = errors.New("gif: no data")
	ErrTooShort     = errors.New("gif: buffer shorter than a screen descriptor")
	ErrBadSignature = errors.New("gif: not a GIF87a or GIF89a stream")
	ErrNilSink      = errors.New("gif: frame sink is nil")
	ErrNegativeSkip = errors.New("gif: skip is negative")
)
