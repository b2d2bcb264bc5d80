package wlog

// DiagFunc receives non-fatal diagnostics from the decoder. A nil DiagFunc
// discards them.
type DiagFunc func(format string, args ...interface{})

// Unescape decodes a backslash-escaped byte string into its literal bytes.
//
// Recognized sequences:
//
//	\\          backslash
//	\a          line feed (0x0A)
//	\r          carriage return (0x0D)
//	\n          CR LF (0x0D 0x0A, two bytes)
//	\0 .. \9    one byte valued by the octal digit run starting here
//
// Any other escaped character is passed through literally and reported via
// diag. Decoding never fails; a lone trailing backslash is dropped rather
// than reading past the input. The result is always a fresh allocation.
func Unescape(raw []byte, diag DiagFunc) []byte {
	out := make([]byte, 0, len(raw))

	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' {
			out = append(out, ch)
			continue
		}

		i++
		if i >= len(raw) {
			// Trailing backslash: nothing left to escape.
			break
		}

		switch c := raw[i]; {
		case c == '\\':
			out = append(out, '\\')

		case c == 'a':
			out = append(out, 0x0a)

		case c == 'r':
			out = append(out, 0x0d)

		case c == 'n':
			out = append(out, 0x0d, 0x0a)

		case c >= '0' && c <= '9':
			val, n := parseOctal(raw[i:])
			if n == 0 {
				// '8' or '9' starts no octal run; the value is zero and
				// the digit itself stays in the output.
				out = append(out, 0, c)
			} else {
				out = append(out, byte(val))
				i += n - 1
			}

		default:
			if diag != nil {
				diag("ignoring unknown escape sequence `\\%c'", c)
			}
			out = append(out, c)
		}
	}

	return out
}

// parseOctal consumes the maximal run of octal digits at the start of b and
// returns its value and the number of digits consumed.
func parseOctal(b []byte) (val, n int) {
	for n < len(b) && b[n] >= '0' && b[n] <= '7' {
		val = val<<3 | int(b[n]-'0')
		val &= 0xff // matches byte truncation of overlong runs
		n++
	}
	return val, n
}
