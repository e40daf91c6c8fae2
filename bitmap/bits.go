package bitmap

import "fmt"

// InvertBits reverses the bit order of an 8-bit value, so bit 0 becomes bit 7.
//
// Controllers that scan pages most significant bit first need their frames
// passed through InvertBits.
func InvertBits(v int) (byte, error) {
	if v < 0 || v > 0xff {
		return 0, fmt.Errorf("%w: %d", ErrByteRange, v)
	}
	var out byte
	for i := 0; i < 8; i++ {
		out = out<<1 | byte(v&1)
		v >>= 1
	}
	return out, nil
}

// InvertRow returns a copy of row with the bit order of every byte reversed.
func InvertRow(row Row) Row {
	out := make(Row, len(row))
	for i, v := range row {
		// Bytes are always in range.
		out[i], _ = InvertBits(int(v))
	}
	return out
}
