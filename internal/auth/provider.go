package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"farmer-market/internal/domain"
	"farmer-market/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	ProviderStore     = "store"
	ProviderDeveloper = "developer"
)

var (
	ErrNoMatch       = errors.New("credentials not recognised")
	ErrPrincipalGone = errors.New("principal no longer valid")
)

// Provider is one authentication strategy. Authenticate returns ErrNoMatch
// when the credentials are not for this provider, so a Chain can fall through.
type Provider interface {
	Name() string
	Authenticate(ctx context.Context, identifier, password string, role domain.Role) (Principal, error)
	Resolve(ctx context.Context, c *Claims) (Principal, error)
}

// DeveloperProvider is a single privileged admin that has no users row.
type DeveloperProvider struct {
	email    string
	password string
}

const developerName = "Developer Admin"

func NewDeveloperProvider(email, password string) *DeveloperProvider {
	return &DeveloperProvider{email: strings.ToLower(strings.TrimSpace(email)), password: password}
}

func (d *DeveloperProvider) Name() string { return ProviderDeveloper }

func (d *DeveloperProvider) principal() Principal {
	return Principal{UserID: 0, Role: domain.RoleAdmin, Name: developerName, Provider: ProviderDeveloper}
}

func (d *DeveloperProvider) Authenticate(_ context.Context, identifier, password string, role domain.Role) (Principal, error) {
	if role != domain.RoleAdmin || d.email == "" || d.password == "" {
		return Principal{}, ErrNoMatch
	}
	okEmail := subtle.ConstantTimeCompare([]byte(identifier), []byte(d.email)) == 1
	okPass := subtle.ConstantTimeCompare([]byte(password), []byte(d.password)) == 1
	if !okEmail || !okPass {
		return Principal{}, ErrNoMatch
	}
	return d.principal(), nil
}

// Resolve never touches storage.
func (d *DeveloperProvider) Resolve(_ context.Context, c *Claims) (Principal, error) {
	if c.UserID != 0 || domain.Role(c.Role) != domain.RoleAdmin {
		return Principal{}, ErrPrincipalGone
	}
	return d.principal(), nil
}

// StoreProvider authenticates against the users table.
type StoreProvider struct {
	users repository.UserRepository
}

func NewStoreProvider(users repository.UserRepository) *StoreProvider {
	return &StoreProvider{users: users}
}

func (s *StoreProvider) Name() string { return ProviderStore }

func (s *StoreProvider) Authenticate(ctx context.Context, identifier, password string, role domain.Role) (Principal, error) {
	var (
		u   *domain.User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = s.users.FindByEmail(ctx, role, identifier)
	} else {
		u, err = s.users.FindByPhone(ctx, role, identifier)
	}
	if err != nil {
		return Principal{}, err
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Principal{}, ErrNoMatch
	}
	return Principal{UserID: u.ID, Role: u.Role, Name: u.Name, Provider: ProviderStore}, nil
}

// Resolve re-reads the row so a deleted user loses access immediately.
func (s *StoreProvider) Resolve(ctx context.Context, c *Claims) (Principal, error) {
	if c.UserID == 0 {
		return Principal{}, ErrPrincipalGone
	}
	u, err := s.users.FindByID(ctx, c.UserID)
	if err != nil {
		return Principal{}, err
	}
	if u == nil || string(u.Role) != c.Role {
		return Principal{}, ErrPrincipalGone
	}
	return Principal{UserID: u.ID, Role: u.Role, Name: u.Name, Provider: ProviderStore}, nil
}

// Chain tries providers in order.
type Chain struct {
	providers []Provider
	byName    map[string]Provider
}

func NewChain(providers ...Provider) *Chain {
	c := &Chain{providers: providers, byName: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		c.byName[p.Name()] = p
	}
	return c
}

func (c *Chain) Authenticate(ctx context.Context, identifier, password string, role domain.Role) (Principal, error) {
	for _, p := range c.providers {
		pr, err := p.Authenticate(ctx, identifier, password, role)
		if errors.Is(err, ErrNoMatch) {
			continue
		}
		return pr, err
	}
	return Principal{}, ErrNoMatch
}

func (c *Chain) Resolve(ctx context.Context, claims *Claims) (Principal, error) {
	p, ok := c.byName[claims.Provider]
	if !ok {
		return Principal{}, ErrPrincipalGone
	}
	return p.Resolve(ctx, claims)
}
