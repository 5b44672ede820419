package tsparse

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// cleanImportPath removes quotes from import path strings
func cleanImportPath(raw string) string {
	cleaned := strings.Trim(raw, "'\"`")
	return strings.TrimSpace(cleaned)
}

// unquote strips the surrounding quotes of a string literal and decodes
// its escape sequences. Unknown escapes keep the escaped character.
func unquote(raw string) string {
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '\'' || first == '"' || first == '`') && last == first {
			raw = raw[1 : len(raw)-1]
		}
	}
	if !strings.Contains(raw, `\`) {
		return raw
	}

	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			b.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if i+2 < len(raw) {
				if v, err := strconv.ParseUint(raw[i+1:i+3], 16, 8); err == nil {
					b.WriteRune(rune(v))
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		case 'u':
			if r, width, ok := decodeUnicodeEscape(raw[i+1:]); ok {
				i += width
				// a high surrogate escape followed by a low one encodes a single code point
				if utf16.IsSurrogate(r) && strings.HasPrefix(raw[i+1:], `\u`) {
					if low, lowWidth, ok := decodeUnicodeEscape(raw[i+3:]); ok {
						if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
							r = pair
							i += 2 + lowWidth
						}
					}
				}
				b.WriteRune(r)
				continue
			}
			b.WriteByte('u')
		default:
			r, width := utf8.DecodeRuneInString(raw[i:])
			b.WriteRune(r)
			i += width - 1
		}
	}
	return b.String()
}

// decodeUnicodeEscape decodes the part after `\u`: either XXXX or {X...}.
// It returns the rune and the number of bytes consumed.
func decodeUnicodeEscape(s string) (rune, int, bool) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		return rune(v), end + 1, true
	}
	if len(s) < 4 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), 4, true
}

// parseNumber parses a numeric literal. BigInt literals are not numbers.
func parseNumber(raw string) (float64, bool) {
	if strings.HasSuffix(raw, "n") {
		return 0, false
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		v, err := strconv.ParseInt(lower, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(v), true
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
