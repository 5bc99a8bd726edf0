package uploads

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DisplayTitle derives a human-readable title from an upload's original
// filename: extension stripped, separators spaced, words title-cased.
// Used by operator-facing output, never stored.
func DisplayTitle(originalName string) string {
	base := strings.TrimSpace(filepath.Base(originalName))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Upload"
	}
	return titleCaser.String(base)
}
