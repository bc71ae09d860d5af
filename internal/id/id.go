package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// New returns a transaction ID like "20240315-0-a3f1": the date prefix,
// the ordinal within the import batch, and a short random suffix. IDs are
// unique within a batch but not across imports; cross-import dedup is
// content-based, not ID-based.
func New(datePrefix string, ordinal int) string {
	return fmt.Sprintf("%s-%d-%s", datePrefix, ordinal, suffix())
}

func suffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
}

// DatePrefix returns the date part of a transaction ID, or "" if the ID
// does not carry one.
func DatePrefix(id string) string {
	i := strings.IndexByte(id, '-')
	if i < 0 {
		return ""
	}
	return id[:i]
}
