package results

import "strings"

// NormalizeKey turns a raw column label into a stable field name: trim,
// drop everything that is not an ASCII letter or digit, upper-case the
// first remaining character. "Test 1" becomes "Test1", "  college " becomes
// "College". Always returns a string, possibly empty.
func NormalizeKey(label string) string {
	label = strings.TrimSpace(label)

	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	key := b.String()
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
