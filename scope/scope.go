// Package scope centralizes role-based query scoping. Every list and
// aggregate query goes through a Scope instead of branching on role
// per-endpoint, so scoping rules are applied uniformly.
package scope

import (
	"fmt"

	"github.com/imudaynigam/finance-tracker-techbridge/models"
)

// Scope decides whether a query is restricted to one owner's records.
// Read-only means "read everything": a read-only caller sees all
// transactions system-wide, not just their own.
type Scope struct {
	CallerID string
	Role     string
	OwnerID  string // empty when the query is unscoped
}

// ForCaller builds the scope for a caller. user and admin roles are
// owner-scoped on regular endpoints; admin-only endpoints bypass scoping via
// middleware instead.
func ForCaller(callerID, role string) Scope {
	s := Scope{CallerID: callerID, Role: role}
	if role != models.RoleReadOnly {
		s.OwnerID = callerID
	}
	return s
}

// Scoped reports whether the scope restricts results to one owner.
func (s Scope) Scoped() bool {
	return s.OwnerID != ""
}

// ReadOnly reports whether the caller holds the read-only role. Analytics
// handlers use this to proactively invalidate that identity's cached
// user-scoped entries before serving, guarding against stale scope leakage
// from a prior role assignment.
func (s Scope) ReadOnly() bool {
	return s.Role == models.RoleReadOnly
}

// Predicate renders the SQL owner filter for a transactions query aliased as
// t, with the owner value bound at the given placeholder position. It returns
// the clause and the arguments it consumes.
func (s Scope) Predicate(argPos int) (string, []interface{}) {
	if !s.Scoped() {
		return "", nil
	}
	return fmt.Sprintf("t.user_id = $%d", argPos), []interface{}{s.OwnerID}
}
