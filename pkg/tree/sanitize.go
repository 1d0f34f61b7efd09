package tree

import "strings"

// DefaultReplacement is substituted for illegal characters when no
// replacement is given.
const DefaultReplacement = "_"

// IllegalNameChars are the characters that cannot appear in a file name on
// at least one of Windows or POSIX.
const IllegalNameChars = `/\?%*:|"<>`

// SanitizeName replaces every character of IllegalNameChars in name with
// replacement (DefaultReplacement when empty). Everything else, including
// invalid UTF-8, is copied through byte for byte: the illegal set is ASCII
// and ASCII bytes never occur inside a multi-byte sequence.
func SanitizeName(name, replacement string) string {
	if replacement == "" {
		replacement = DefaultReplacement
	}
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		if strings.IndexByte(IllegalNameChars, name[i]) >= 0 {
			b.WriteString(replacement)
			continue
		}
		b.WriteByte(name[i])
	}
	return b.String()
}

// IsPortableName reports whether name contains none of IllegalNameChars.
func IsPortableName(name string) bool {
	return !strings.ContainsAny(name, IllegalNameChars)
}
