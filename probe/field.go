package probe

// Field readers for fixed-width values in a track image. They do no bounds
// checking: a probe must make sure the buffer is long enough before reading.

// WordAt returns the 16-bit value at off. Little-endian unless bigEndian.
func WordAt(data []byte, off int, bigEndian bool) uint16 {
	if bigEndian {
		return uint16(data[off])<<8 | uint16(data[off+1])
	}
	return uint16(data[off]) | uint16(data[off+1])<<8
}

// DwordAt returns the 32-bit value at off, built from the words at off and
// off+2 in the requested byte order.
func DwordAt(data []byte, off int, bigEndian bool) uint32 {
	lo, hi := WordAt(data, off, bigEndian), WordAt(data, off+2, bigEndian)
	if bigEndian {
		lo, hi = hi, lo
	}
	return uint32(hi)<<16 | uint32(lo)
}

// ASCIIAt returns n bytes starting at off as a string of the same character
// codes. Control and 8-bit bytes pass through; Amiga DOS types depend on it.
func ASCIIAt(data []byte, off, n int) string {
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		runes[i] = rune(data[off+i])
	}
	return string(runes)
}

// HasData reports whether any byte is non-zero. A failed read (empty) and an
// unformatted track (all zeros) look the same to the probes.
func HasData(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return true
		}
	}
	return false
}
