package schem

// DecodeVarints reads unsigned varints (7 value bits per byte, least
// significant group first, high bit set while more bytes follow) until data is
// exhausted or limit values have been read. A value still unterminated when
// data runs out is kept as read so far.
func DecodeVarints(data []byte, limit int) []int32 {
	if limit <= 0 {
		return nil
	}
	out := make([]int32, 0, min(limit, len(data)))
	var value uint32
	var shift uint
	for _, b := range data {
		value |= uint32(b&0x7f) << shift
		if b&0x80 != 0 {
			shift += 7
			continue
		}
		out = append(out, int32(value))
		if len(out) == limit {
			break
		}
		value, shift = 0, 0
	}
	if shift > 0 && len(out) < limit {
		out = append(out, int32(value))
	}
	return out
}
