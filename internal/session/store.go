// Package session maps opaque tokens to authenticated identities.  A
// session is created on successful login, refreshed on every resolve
// (sliding TTL) and destroyed on logout or expiry.  The backing store is
// pluggable: MemoryStore for single-process deployments and tests,
// RedisStore when sessions must survive restarts or be shared.
package session

import (
	"context"
	"time"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/utils"
)

// Identity is the snapshot of a user captured at login time.  It is what a
// resolved session hands back; it deliberately omits the password hash and
// anything else the HTTP layer has no business seeing.
type Identity struct {
	UserID       uint64 `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
}

// IdentityOf builds the session snapshot for a user record.
func IdentityOf(u model.User) Identity {
	return Identity{
		UserID:       u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Organization: u.Organization,
	}
}

// Store is the session manager contract.
//
// Create allocates a fresh opaque token bound to the identity.  Resolve
// returns the identity for a live token and refreshes its sliding TTL; the
// boolean is false for unknown, expired or destroyed tokens, which callers
// treat as anonymous.  Destroy removes the token and is idempotent:
// destroying an absent token is not an error.  Resolve racing a concurrent
// Destroy must observe either the live identity or absence, never stale
// data after the destroy completes.
type Store interface {
	Create(ctx context.Context, id Identity) (string, error)
	Resolve(ctx context.Context, token string) (Identity, bool, error)
	Destroy(ctx context.Context, token string) error
}

// newToken is the single token source for all stores.
func newToken() (string, error) {
	return utils.NewSessionToken()
}

// clock is swapped out by tests that exercise expiry.
var clock = time.Now
