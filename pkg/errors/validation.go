package errors

import (
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ValidateSnapshotID checks that id is a canonical UUID string, the form
// snapshot stores hand out. Anything else is rejected before it reaches a
// file path or a database query.
func ValidateSnapshotID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "snapshot id cannot be empty")
	}
	u, err := uuid.Parse(id)
	if err != nil || u.String() != strings.ToLower(id) {
		return New(ErrCodeInvalidID, "invalid snapshot id: %q", id)
	}
	return nil
}

// ParseEntityID parses a vertex or edge id given as decimal text.
// kind names the entity in the error message.
func ParseEntityID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, New(ErrCodeInvalidID, "invalid %s id: %q", kind, raw)
	}
	if id < 0 {
		return 0, New(ErrCodeInvalidID, "%s id must not be negative: %d", kind, id)
	}
	return id, nil
}

// ValidateChoice checks that value is one of allowed. field names the
// option in the error message.
func ValidateChoice(field, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "invalid %s %q (want one of %s)", field, value, strings.Join(allowed, ", "))
}
