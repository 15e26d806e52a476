package model

import (
	"strings"
	"time"
)

// Identity is the normalized key of a signed-in user (trimmed, lowercase).
// The empty Identity is the guest state.
type Identity string

// GuestIdentity is the absence of a signed-in user
const GuestIdentity Identity = ""

// NormalizeIdentity trims and lowercases raw. It fails with
// ErrInvalidIdentity when nothing is left.
func NormalizeIdentity(raw string) (Identity, error) {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id == "" {
		return GuestIdentity, ErrInvalidIdentity
	}
	return Identity(id), nil
}

// IsGuest returns true when no user is signed in
func (id Identity) IsGuest() bool {
	return id == GuestIdentity
}

func (id Identity) String() string {
	if id.IsGuest() {
		return "guest"
	}
	return string(id)
}

// SessionRecord is the persisted "last signed-in identity" pointer
type SessionRecord struct {
	Identity   Identity  `json:"identity"`
	SignedInAt time.Time `json:"signed_in_at"`
}
