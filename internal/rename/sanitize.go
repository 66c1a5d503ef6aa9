// Package rename turns extracted report fields into a collision-free
// destination file inside the output directory.
package rename

import (
	"regexp"
	"strings"
)

// Characters that are reserved or illegal in filenames on at least one
// supported filesystem.
var reservedChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// Sanitize maps a raw field value to a filesystem-safe token: every reserved
// character is removed, then leading and trailing whitespace is trimmed.
// Removing first keeps Sanitize idempotent when stripping a reserved character
// exposes new edge whitespace. The result may be empty if the input consisted
// only of whitespace and reserved characters.
func Sanitize(raw string) string {
	return strings.TrimSpace(reservedChars.ReplaceAllString(raw, ""))
}
