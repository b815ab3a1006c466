package core

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Zcross091/torncity-bank-bot/utils"
)

// NewID generates a new ULID with the given prefix.
// The format is: prefix_ULID
// Example: core.NewID("cmd") returns "cmd_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	utils.AssertInvariant(prefix != "" && strings.TrimSpace(prefix) != "", "prefix cannot be empty")

	entropy := ulid.Monotonic(rand.Reader, 0)
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)

	return strings.ToLower(strings.TrimSpace(prefix)) + "_" + id.String()
}

// IsValidULID checks if the given string is a prefixed ULID, e.g. "cmd_01G0EZ1XTM37C5X11SQTDNCTM1".
func IsValidULID(id string) bool {
	prefix, ulidPart, found := strings.Cut(id, "_")
	if !found || prefix == "" {
		return false
	}
	for _, r := range prefix {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}

	_, err := ulid.ParseStrict(ulidPart)
	return err == nil
}
