// Package gifp decodes GIF (87a/89a) image streams one frame at a time.
//
// It is a streaming decoder: it consumes a byte buffer — a whole file or a
// truncated prefix of one — and hands decoded frames to a caller-supplied
// sink as it goes, rather than building an in-memory animation. Truncated
// input is a first-class case: Decode reports how many frames it accounted
// for (skipped or delivered) so a caller holding a growing buffer (a download in progress, a socket)
// can call again later with an updated skip count.
//
// The hard part, and the bulk of this package, is the LZW sub-block decoder
// (package lzw) and the container parser that feeds it: a self-referential
// code table with table-drop semantics, bit-stream reassembly across
// variable-width codes and sub-block boundaries, and a resilient top-level
// parser that walks typed chunks with partial-data recovery.
//
// Everything downstream of "here are this frame's pixels" — de-interlacing,
// disposal, transparency blending, display — is the caller's job. Decode
// only hands out palette indices and the metadata needed to composite them.
//
// Basic usage:
//
//	n, err := gifp.Decode(data, func(_ any, f *gifp.FrameDescriptor) error {
//		// f.Pixels holds f.Width*f.Height palette indices
//		return nil
//	}, nil, nil, 0)
package gifp
