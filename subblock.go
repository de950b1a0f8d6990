package gifp

// skipSubBlocks advances c past one full chain of GIF sub-blocks —
// [len][len bytes][len][len bytes]...[0] — without interpreting the
// payload. It reports false if the stream is exhausted before the
// zero-length terminator.
//
// The consuming counterpart lives in package lzw: a single LZW code can
// straddle a sub-block boundary, so the LZW decoder walks the chain itself
// rather than being handed pre-framed bytes.
func skipSubBlocks(c *cursor) bool {
	for {
		n, ok := c.readByte()
		if !ok {
			return false
		}
		if n == 0 {
			return true
		}
		if !c.advance(int(n)) {
			return false
		}
	}
}

// readSubBlockChain reads and concatenates a full chain's payload bytes,
// discarding the length framing. Used where this package parses the
// sub-block content itself (the graphics control extension); the
// application extension instead hands its raw, still-framed chain to the
// metadata sink, which walks the framing on its own (see extension.go).
func readSubBlockChain(c *cursor) ([]byte, bool) {
	var buf []byte
	for {
		n, ok := c.readByte()
		if !ok {
			return nil, false
		}
		if n == 0 {
			return buf, true
		}
		chunk, ok := c.readBytes(int(n))
		if !ok {
			return nil, false
		}
		buf = append(buf, chunk...)
	}
}
