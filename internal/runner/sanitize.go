package runner

import "strings"

// SanitizeLine strips terminal noise from one line of server output: ANSI
// escape sequences (ESC [ ... final byte in '@'..'~'), control characters
// other than newline and tab, and the Braille spinner block used by npm/uv
// progress indicators.
func SanitizeLine(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\x1b' {
			if i+1 < len(runes) && runes[i+1] == '[' {
				i++
				for i+1 < len(runes) {
					i++
					if runes[i] >= '@' && runes[i] <= '~' {
						break
					}
				}
			}
			continue
		}
		if c < 0x20 && c != '\n' && c != '\t' {
			continue
		}
		if c == 0x7f || (c >= 0x80 && c <= 0x9f) {
			continue
		}
		if c >= 0x2800 && c <= 0x28ff {
			continue
		}
		out.WriteRune(c)
	}
	return out.String()
}
