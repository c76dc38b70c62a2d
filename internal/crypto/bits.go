package crypto

// ConvertBits regroups a sequence of fromBits-wide values into toBits-wide
// values, MSB first.
//
// With pad set, a non-empty remainder is shifted left into one final group.
// Without it, a remainder of fromBits or more bits, or one with any bit set,
// fails with ErrInvalidPadding.
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, ErrInvalidInputValue
	}

	var (
		acc    uint32
		bits   uint8
		maxv   = uint32(1)<<toBits - 1
		maxAcc = uint32(1)<<(fromBits+toBits-1) - 1
	)
	out := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)

	for _, b := range data {
		v := uint32(b)
		if v>>fromBits != 0 {
			return nil, ErrInvalidInputValue
		}
		acc = (acc<<fromBits | v) & maxAcc
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte(acc>>bits&maxv))
		}
	}

	if pad {
		if bits > 0 {
			out = append(out, byte(acc<<(toBits-bits)&maxv))
		}
		return out, nil
	}
	if bits >= fromBits || acc<<(toBits-bits)&maxv != 0 {
		return nil, ErrInvalidPadding
	}
	return out, nil
}
