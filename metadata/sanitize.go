package metadata

import (
	"regexp"
	"unicode/utf8"
)

const maxFileNameBytes = 255

var (
	illegalChars    = regexp.MustCompile(`[/?<>\\:*|"]`)
	controlChars    = regexp.MustCompile(`[\x00-\x1f\x80-\x9f]`)
	reservedNames   = regexp.MustCompile(`^\.+$`)
	windowsReserved = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
	windowsTrailing = regexp.MustCompile(`[. ]+$`)
)

// SanitizeFileName removes characters that are not allowed in a file name
// on common filesystems and truncates the result to 255 bytes.
func SanitizeFileName(name string) string {
	name = illegalChars.ReplaceAllString(name, "")
	name = controlChars.ReplaceAllString(name, "")
	name = reservedNames.ReplaceAllString(name, "")
	name = windowsReserved.ReplaceAllString(name, "")
	name = windowsTrailing.ReplaceAllString(name, "")
	return truncate(name, maxFileNameBytes)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for i, r := range s {
		if i+utf8.RuneLen(r) > n {
			return s[:i]
		}
	}
	return s
}
