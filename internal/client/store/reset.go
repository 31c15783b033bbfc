package store

import (
	"os"
	"strings"
)

// DataEpoch identifies the current on-disk data format. Bump it for
// incompatible payload-shape changes that cannot be expressed as a goose
// migration; a mismatch wipes all entity collections on the next bootstrap.
//
// This is deliberately separate from the goose schema version: goose handles
// structural upgrades (new table, new index), the epoch handles format
// resets.
const DataEpoch = "3"

// ResetTokenStale reports whether the epoch recorded at path differs from
// DataEpoch. A missing or unreadable token counts as stale, so a fresh
// install goes through the (empty) reset once and records the epoch.
func ResetTokenStale(path string) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		return true
	}
	return strings.TrimSpace(string(b)) != DataEpoch
}

// WriteResetToken records the current epoch at path. The token lives beside
// the database file, outside the transactional store, so it survives schema
// version bumps.
func WriteResetToken(path string) error {
	return os.WriteFile(path, []byte(DataEpoch+"\n"), 0o600)
}
