package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// ParseHexColor parses "#RRGGBB" (or "RRGGBB") into a packed 0xRRGGBB value.
// Malformed input yields 0xFFFFFF so a bad catalog entry renders white rather than black.
func ParseHexColor(s string) uint32 {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return 0xFFFFFF
	}
	var v uint32
	for i := 0; i < 6; i++ {
		c := s[i]
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0xFFFFFF
		}
		v = v<<4 | uint32(d)
	}
	return v
}
