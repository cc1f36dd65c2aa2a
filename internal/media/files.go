// Package media holds the upload-path helpers: filename hygiene, the
// extension allow-list, and the best-effort downsampler.
package media

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

// AllowedExtension reports whether the filename carries an extension from
// the upload allow-list. This is the only validation uploads get; a renamed
// non-image file with an allowed extension is accepted.
func AllowedExtension(filename string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// AllowedExtensionList returns the allow-list for error messages.
func AllowedExtensionList() string {
	return "png, jpg, jpeg, gif, webp"
}

// SanitizeFilename strips any path components and reduces the name to a
// safe character set.
func SanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimLeft(name, ".")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// UniqueFilename sanitizes the original name and inserts a random hex
// suffix before the extension to avoid collisions in the upload directory.
func UniqueFilename(original string) string {
	name := SanitizeFilename(original)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	id := uuid.New()
	suffix := hex.EncodeToString(id[:])
	if base == "" {
		return fmt.Sprintf("%s%s", suffix, ext)
	}
	return fmt.Sprintf("%s_%s%s", base, suffix, ext)
}
