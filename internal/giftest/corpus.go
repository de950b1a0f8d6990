// Package giftest builds synthetic GIF streams for exercising the
// decoder without depending on external fixture files, and replays real
// ones from disk for ad-hoc corpus testing (see replay.go).
package giftest

import "github.com/hidefromkgb/gifp"

// GraphicsControl mirrors the fields a 0xF9 extension can set on the
// frame that follows it.
type GraphicsControl struct {
	Delay            int
	UserInput        bool
	TransparentIndex int // -1 for none
	Disposal         gifp.Disposal
}

// Frame is one image descriptor plus its pixel data and optional
// preceding graphics control extension.
type Frame struct {
	GC                  *GraphicsControl
	X, Y, Width, Height int
	Interlace           bool
	LocalPalette        []gifp.Color
	Pixels              []byte
	CodeSize            byte // 0 means "derive from the active palette"
}

// Builder assembles a minimal but conformant GIF byte stream. Pixel data
// is encoded as literal LZW codes (every code is a root, single-pixel
// code) rather than with real dictionary compression: it is larger than
// a real encoder would produce, but bit-for-bit valid input for this
// package's decoder, which is what these streams exist to exercise.
type Builder struct {
	Width, Height   int
	BackgroundIndex int
	GlobalPalette   []gifp.Color
	Frames          []Frame
	LoopCount       int // -1 omits the NETSCAPE2.0 extension entirely
}

func NewBuilder(width, height int, palette []gifp.Color) *Builder {
	return &Builder{
		Width:         width,
		Height:        height,
		GlobalPalette: palette,
		LoopCount:     -1,
	}
}

func (b *Builder) AddFrame(f Frame) *Builder {
	b.Frames = append(b.Frames, f)
	return b
}

// WithLoopCount sets the NETSCAPE2.0 loop count application extension
// emitted just before the trailer. 0 means "loop forever"; the default
// (unset) is -1, which omits the extension entirely.
func (b *Builder) WithLoopCount(n int) *Builder {
	b.LoopCount = n
	return b
}

func putUint16(out []byte, v int) []byte {
	return append(out, byte(v), byte(v>>8))
}

func minCodeSize(paletteLen int) byte {
	size := byte(2)
	for (1 << size) < paletteLen {
		size++
	}
	if size < 2 {
		size = 2
	}
	return size
}

func packedPaletteFlags(present bool, n int, extra byte) byte {
	if !present {
		return extra
	}
	bits := byte(0)
	for (1 << (bits + 1)) < n {
		bits++
	}
	return extra | 0x80 | bits
}

func appendPalette(out []byte, pal []gifp.Color) []byte {
	for _, c := range pal {
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

// Build renders the stream. If truncateAt >= 0, the output is clipped to
// that many bytes, simulating a partial download for resume-property
// tests.
func (b *Builder) Build(truncateAt int) []byte {
	out := append([]byte{}, "GIF89a"...)
	out = putUint16(out, b.Width)
	out = putUint16(out, b.Height)
	out = append(out, packedPaletteFlags(len(b.GlobalPalette) > 0, len(b.GlobalPalette), 0))
	out = append(out, byte(b.BackgroundIndex), 0)
	out = appendPalette(out, b.GlobalPalette)

	for _, f := range b.Frames {
		if f.GC != nil {
			out = append(out, 0x21, 0xF9, 4)
			flags := byte(f.GC.Disposal&0x07) << 2
			if f.GC.UserInput {
				flags |= 0x02
			}
			if f.GC.TransparentIndex >= 0 {
				flags |= 0x01
			}
			out = append(out, flags)
			out = putUint16(out, f.GC.Delay)
			out = append(out, byte(f.GC.TransparentIndex))
			out = append(out, 0)
		}

		out = append(out, 0x2C)
		out = putUint16(out, f.X)
		out = putUint16(out, f.Y)
		out = putUint16(out, f.Width)
		out = putUint16(out, f.Height)
		idFlags := packedPaletteFlags(len(f.LocalPalette) > 0, len(f.LocalPalette), 0)
		if f.Interlace {
			idFlags |= 0x40
		}
		out = append(out, idFlags)
		out = appendPalette(out, f.LocalPalette)

		ctsz := f.CodeSize
		if ctsz == 0 {
			n := len(f.LocalPalette)
			if n == 0 {
				n = len(b.GlobalPalette)
			}
			ctsz = minCodeSize(n)
		}
		out = append(out, ctsz)
		out = append(out, encodeLiteral(ctsz, f.Pixels)...)
	}

	if b.LoopCount >= 0 {
		out = append(out, 0x21, 0xFF, 0x0B)
		out = append(out, "NETSCAPE2.0"...)
		out = append(out, 3, 0x01)
		out = putUint16(out, b.LoopCount)
		out = append(out, 0)
	}

	out = append(out, 0x3B)

	if truncateAt >= 0 && truncateAt < len(out) {
		out = out[:truncateAt]
	}
	return out
}

// encodeLiteral LZW-encodes pixels as a sequence of root (single-pixel)
// codes: CLEAR, one code per pixel equal to its own value, END. Code
// width still grows with the code count, exactly as it would for a real
// encoder's codes, since the decoder's width tracking depends only on
// how many codes have been read since the last CLEAR, not on their
// values.
func encodeLiteral(ctsz byte, pixels []byte) []byte {
	clear := uint32(1) << ctsz
	end := clear + 1
	ccsz := uint(ctsz) + 1

	var acc uint32
	var nbits uint
	var payload []byte

	emit := func(code uint32, width uint) {
		acc |= code << nbits
		nbits += width
		for nbits >= 8 {
			payload = append(payload, byte(acc))
			acc >>= 8
			nbits -= 8
		}
	}

	emit(clear, ccsz)
	ctbl := uint64(clear)
	for _, p := range pixels {
		emit(uint32(p), ccsz)
		ctbl++
		if ctbl < 4096 {
			if ctbl == uint64(1)<<ccsz-1 && ctbl < 4095 {
				ccsz++
			}
		}
	}
	emit(end, ccsz)
	if nbits > 0 {
		payload = append(payload, byte(acc))
	}

	return frameSubBlocks(payload)
}

func frameSubBlocks(payload []byte) []byte {
	var out []byte
	for len(payload) > 0 {
		n := len(payload)
		if n > 255 {
			n = 255
		}
		out = append(out, byte(n))
		out = append(out, payload[:n]...)
		payload = payload[n:]
	}
	return append(out, 0)
}
