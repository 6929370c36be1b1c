package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxSanitizedLen = 150

// sanitizeFilename keeps [A-Za-z0-9._-] and replaces every other character with '_'.
func sanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if len(s) > maxSanitizedLen {
		// keep the tail so the extension survives
		s = s[len(s)-maxSanitizedLen:]
	}
	if strings.Trim(s, ".") == "" {
		return "file"
	}
	return s
}

// StoredName builds the collision resistant name a file is saved under:
// <unix nanos>_<8 random hex>_<sanitized original>.
func StoredName(original string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%s_%s", now.UnixNano(), random, sanitizeFilename(original))
}
