package gifp

import (
	stderrors "errors"

	"github.com/hidefromkgb/gifp/lzw"
)

// FrameSink receives one decoded frame. The FrameDescriptor it is handed
// borrows both its pixel grid and its palette from decoder-owned memory;
// both are only valid for the duration of the call, so a sink that needs
// to retain a frame must copy it.
type FrameSink func(ctx any, f *FrameDescriptor) error

// MetadataSink receives the raw bytes of one application extension,
// starting two bytes past the 0xFF label — inside the 11-byte
// application identifier+authcode ("NETSCAPE2.0" for the looping
// extension) — and running through the chained data sub-blocks that
// follow it, ending in the zero-length terminator. The sink is
// responsible for walking the chain itself; see ParseNetscapeLoopCount
// for the common NETSCAPE2.0 case.
type MetadataSink func(ctx any, raw []byte) error

// FrameDescriptor is what Decode hands to the frame sink for each
// non-skipped frame.
type FrameDescriptor struct {
	ScreenWidth, ScreenHeight int
	Palette                   Palette
	BackgroundIndex           int
	TransparentIndex          int // -1 if the frame has no transparent color
	Disposal                  Disposal
	Delay                     int // 10ms units; negative iff the user-input flag was set
	Interlaced                bool
	X, Y, Width, Height       int
	Index                     int // 0-based
	FrameCount                int // negative if the stream appeared truncated
	Pixels                    []byte
}

func signedDelay(gc graphicsControl) int {
	if gc.userInput {
		return -(gc.delay + 1)
	}
	return gc.delay
}

// minHeaderLen is the signature (6) plus the logical screen descriptor
// (7): width, height, flags, background index, aspect ratio.
const minHeaderLen = 6 + 7

// Decode walks data as a GIF87a/89a stream and invokes sink once per
// frame after the first skip frames, in source-stream order. meta may be
// nil; it is invoked once per application extension if set.
//
// The returned int's sign follows the source algorithm this package is
// ported from: positive means the stream parsed to completion (0x3B),
// negative means it was truncated (ran out of bytes, or a frame's LZW
// stream ended without a proper END/terminator pair). Its magnitude is
// the number of frames accounted for, skipped or delivered. Caller and
// input errors (a nil sink, a negative skip, an empty, too short or
// non-GIF buffer) return 0 and a non-nil error. If sink/meta itself
// returns an error, or a frame's LZW stream ended without a terminator
// (ErrNoTerminator), Decode stops immediately and returns that error
// alongside the negated count reached so far. Any other LZW failure
// stops decoding at that frame without handing it to the sink and
// without an error (see ErrNoTerminator's doc); the count's sign then
// comes from the container pass alone. So a negative count with a nil
// error means the buffer ran out, either between frames or inside a
// frame's data.
func Decode(data []byte, sink FrameSink, meta MetadataSink, ctx any, skip int) (int, error) {
	if sink == nil {
		return 0, ErrNilSink
	}
	if skip < 0 {
		return 0, ErrNegativeSkip
	}
	if len(data) == 0 {
		return 0, ErrNilData
	}
	if len(data) <= minHeaderLen {
		return 0, ErrTooShort
	}

	c := newCursor(data)
	if !checkSignature(c) {
		return 0, ErrBadSignature
	}
	sd, ok := parseScreenDescriptor(c)
	if !ok {
		return 0, ErrTooShort
	}
	start := c.pos

	frameCount, maxW, maxH, complete := passA(data, start)
	totalFrames := frameCount
	if !complete {
		totalFrames = -frameCount
	}

	scratch := make([]byte, maxW*maxH)
	dec := lzw.NewDecoder()

	processed, err := passB(data, start, sd, dec, scratch, totalFrames, sink, meta, ctx, skip)
	if err != nil {
		return -processed, err
	}
	if !complete {
		return -processed, nil
	}
	return processed, nil
}

// passA traverses the stream once to count frames and find the largest
// frame extent, without decoding any LZW data. Its output sizes the
// single scratch buffer passB reuses across every frame.
func passA(data []byte, start int) (frameCount, maxW, maxH int, complete bool) {
	c := newCursor(data)
	c.pos = start
	for {
		tag, ok := c.readByte()
		if !ok {
			return frameCount, maxW, maxH, false
		}
		switch tag {
		case blockTrailer:
			return frameCount, maxW, maxH, true

		case blockExtension:
			if _, ok := c.readByte(); !ok {
				return frameCount, maxW, maxH, false
			}
			if !skipSubBlocks(c) {
				return frameCount, maxW, maxH, false
			}

		case blockImageDescriptor:
			id, ok := parseImageDescriptor(c)
			if !ok {
				return frameCount, maxW, maxH, false
			}
			// The extent counts even if this frame's data is cut off:
			// passB still decodes into scratch for it.
			if id.Width > maxW {
				maxW = id.Width
			}
			if id.Height > maxH {
				maxH = id.Height
			}
			if _, ok := c.readByte(); !ok { // LZW minimum code size
				return frameCount, maxW, maxH, false
			}
			if !skipSubBlocks(c) {
				return frameCount, maxW, maxH, false
			}
			frameCount++

		default:
			return frameCount, maxW, maxH, false
		}
	}
}

// passB re-traverses the stream, this time decoding each frame's pixels
// into scratch and invoking sink for every frame at or past skip. It
// returns the number of image descriptors it accounted for (skipped or
// delivered).
func passB(data []byte, start int, sd *ScreenDescriptor, dec *lzw.Decoder, scratch []byte, totalFrames int, sink FrameSink, meta MetadataSink, ctx any, skip int) (int, error) {
	c := newCursor(data)
	c.pos = start
	gc := newGraphicsControl()
	processed := 0

	for {
		tag, ok := c.readByte()
		if !ok {
			return processed, nil
		}
		switch tag {
		case blockTrailer:
			return processed, nil

		case blockExtension:
			ok, err := handleExtension(c, meta, ctx, &gc)
			if err != nil {
				return processed, err
			}
			if !ok {
				return processed, nil
			}

		case blockImageDescriptor:
			id, ok := parseImageDescriptor(c)
			if !ok {
				return processed, nil
			}
			pal := id.LocalPalette
			if pal == nil {
				pal = sd.GlobalPalette
			}
			pixels := scratch[:id.Width*id.Height]
			newPos, derr := dec.Decode(data, c.pos, pixels)
			c.pos = newPos

			if derr != nil && !stderrors.Is(derr, lzw.ErrNoTerminator) {
				// Fatal LZW error: this frame is not delivered.
				return processed, nil
			}

			index := processed
			processed++
			if index >= skip {
				fd := &FrameDescriptor{
					ScreenWidth:      sd.Width,
					ScreenHeight:     sd.Height,
					Palette:          pal,
					BackgroundIndex:  sd.BackgroundIndex,
					TransparentIndex: gc.transparentIndex,
					Disposal:         gc.disposal,
					Delay:            signedDelay(gc),
					Interlaced:       id.Interlaced,
					X:                id.X,
					Y:                id.Y,
					Width:            id.Width,
					Height:           id.Height,
					Index:            index,
					FrameCount:       totalFrames,
					Pixels:           pixels,
				}
				if err := sink(ctx, fd); err != nil {
					return processed, err
				}
			}
			gc = newGraphicsControl()

			if derr != nil {
				// ErrNoTerminator: frame was delivered, but the
				// stream is truncated right after it. Surfaced to the
				// caller so it can be told apart from a plain
				// out-of-bytes truncation.
				return processed, ErrNoTerminator
			}

		default:
			return processed, nil
		}
	}
}
