package gifp

// netscapeID is the fixed 11-byte application identifier+authcode
// a NETSCAPE2.0 looping extension starts with.
const netscapeID = "NETSCAPE2.0"

// ParseNetscapeLoopCount extracts the animation loop count from the raw
// application-extension bytes handed to a MetadataSink, if it is a
// NETSCAPE2.0 looping extension. It does not change the metadata-sink
// contract — raw is exactly what the sink already received — it is a
// convenience for the common case every GIF animation tool special-cases
// the same way.
//
// The chain layout is: ["NETSCAPE2.0"][sub-block length][0x01 sub-block
// ID][loop count, little-endian 16-bit]...[0x00 terminator]. A loop
// count of 0 means "loop forever".
func ParseNetscapeLoopCount(raw []byte) (count int, ok bool) {
	if len(raw) < len(netscapeID) || string(raw[:len(netscapeID)]) != netscapeID {
		return 0, false
	}
	pos := len(netscapeID)

	for pos < len(raw) {
		blockLen := int(raw[pos])
		pos++
		if blockLen == 0 {
			break
		}
		if pos+blockLen > len(raw) {
			return 0, false
		}
		block := raw[pos : pos+blockLen]
		pos += blockLen
		if blockLen >= 3 && block[0] == 0x01 {
			return int(block[1]) | int(block[2])<<8, true
		}
	}
	return 0, false
}
