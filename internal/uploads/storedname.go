package uploads

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// NewStoredName derives the on-disk identifier for an upload: the submission
// time in unix milliseconds, a dash, and the sanitized original filename.
// The time prefix keeps repeated uploads of the same file from colliding.
func NewStoredName(originalName string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), sanitizeFilename(originalName))
}

// RewriteExt substitutes a filename's extension, used when normalization
// changes the artifact's container.
func RewriteExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// sanitizeFilename strips path components and characters that are unsafe in
// a stored filename or a download URL path segment.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "upload"
	}
	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return "upload"
	}
	return cleaned
}
