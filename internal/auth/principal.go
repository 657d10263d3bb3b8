package auth

import "farmer-market/internal/domain"

// Principal is the verified identity carried by a session.
type Principal struct {
	UserID   uint64
	Role     domain.Role
	Name     string
	Provider string
}

// Has is the capability check used by every role-gated route.
func (p Principal) Has(role domain.Role) bool {
	return p.Role != "" && p.Role == role
}

// Stored reports whether the principal is backed by a users row.
func (p Principal) Stored() bool {
	return p.Provider == ProviderStore
}
