package uploads

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// CanonicalExt is the extension every queued artifact is normalized to.
const CanonicalExt = ".wav"

// DisallowedExtensionError reports an upload rejected by the allow-set.
type DisallowedExtensionError struct {
	Ext     string
	Allowed []string
}

func (e *DisallowedExtensionError) Error() string {
	return fmt.Sprintf("only %s files are allowed", strings.Join(e.Allowed, " and "))
}

// Validator gates uploads on a configured extension allow-set before any
// bytes are committed to storage.
type Validator struct {
	allowed map[string]struct{}
	ordered []string
}

// NewValidator builds a validator from dot-prefixed extensions. Matching is
// case-insensitive.
func NewValidator(extensions []string) *Validator {
	allowed := make(map[string]struct{}, len(extensions))
	ordered := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if _, seen := allowed[ext]; seen {
			continue
		}
		allowed[ext] = struct{}{}
		ordered = append(ordered, ext)
	}
	sort.Strings(ordered)
	return &Validator{allowed: allowed, ordered: ordered}
}

// Validate extracts the filename's extension and accepts iff it is in the
// allow-set. It returns the lowercased extension on success.
func (v *Validator) Validate(filename string) (string, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return "", &DisallowedExtensionError{Allowed: v.ordered}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := v.allowed[ext]; !ok {
		return "", &DisallowedExtensionError{Ext: ext, Allowed: v.ordered}
	}
	return ext, nil
}

// Allowed returns the sorted allow-set.
func (v *Validator) Allowed() []string {
	cp := make([]string, len(v.ordered))
	copy(cp, v.ordered)
	return cp
}
