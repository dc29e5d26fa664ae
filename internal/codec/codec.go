// Package codec implements the restricted percent-encoding used to map key
// segments onto filesystem names.
//
// The safe set is deliberately narrower than URL encoding: only ASCII letters,
// digits, '-' and '_' pass through. Space becomes '+'; every other byte becomes
// '%' followed by two uppercase hex digits. Decoding accepts hex in either case
// and treats malformed escapes as literal text, so any file name decodes to
// something rather than failing.
package codec

const hexUpper = "0123456789ABCDEF"

func safe(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_':
		return true
	}
	return false
}

// Encode escapes s byte-wise into the filesystem-safe alphabet.
func Encode(s string) string {
	return string(AppendEncoded(nil, []byte(s)))
}

// Decode reverses Encode. Escapes are matched case-insensitively; incomplete
// escapes (a trailing '%' or '%X') pass through unchanged.
func Decode(s string) string {
	return string(AppendDecoded(nil, []byte(s)))
}

// AppendEncoded appends the encoded form of src to dst and returns the
// extended buffer.
func AppendEncoded(dst, src []byte) []byte {
	for _, b := range src {
		switch {
		case safe(b):
			dst = append(dst, b)
		case b == ' ':
			dst = append(dst, '+')
		default:
			dst = append(dst, '%', hexUpper[b>>4], hexUpper[b&0x0F])
		}
	}
	return dst
}

// AppendDecoded appends the decoded form of src to dst and returns the
// extended buffer.
func AppendDecoded(dst, src []byte) []byte {
	for i := 0; i < len(src); i++ {
		switch b := src[i]; {
		case b == '+':
			dst = append(dst, ' ')
		case b == '%' && i+2 < len(src):
			hi, okHi := unhex(src[i+1])
			lo, okLo := unhex(src[i+2])
			if okHi && okLo {
				dst = append(dst, hi<<4|lo)
				i += 2
			} else {
				dst = append(dst, b)
			}
		default:
			dst = append(dst, b)
		}
	}
	return dst
}

func unhex(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
