package storage

import (
	"encoding/hex"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// fallbackName is used when sanitization leaves nothing of the client name.
const fallbackName = "file"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename strips a client-supplied filename down to a form that is
// safe to place on disk: no path separators, no parent references, only
// ASCII letters, digits, dot, dash and underscore.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" || name == "." || name == ".." {
		return fallbackName
	}
	return name
}

// StoredName derives a collision-resistant on-disk name for an upload by
// prefixing a random 128-bit token to the sanitized client name. The raw
// client name is kept separately as the display name.
func StoredName(original string) string {
	u := uuid.New()
	return hex.EncodeToString(u[:]) + "_" + SanitizeFilename(original)
}
