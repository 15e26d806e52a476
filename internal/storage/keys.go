package storage

import (
	"fmt"

	"github.com/mcoot/tictacgo/internal/model"
)

// SessionKey holds the last signed-in identity. It is a process-wide singleton.
const SessionKey = "session:user"

// StatsKey returns the key for an identity's ledger entry
func StatsKey(id model.Identity) string {
	return fmt.Sprintf("stats2:%s", id)
}

// PreferenceKey returns the key for an identity's mark preference
func PreferenceKey(id model.Identity) string {
	return fmt.Sprintf("pref:%s:mark", id)
}
