package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"farmer-market/internal/auth"
	"farmer-market/internal/domain"
	"farmer-market/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	users  repository.UserRepository
	chain  *auth.Chain
	tokens *auth.TokenCodec
}

func NewAuthService(users repository.UserRepository, chain *auth.Chain, tokens *auth.TokenCodec) *AuthService {
	return &AuthService{users: users, chain: chain, tokens: tokens}
}

// Register creates a farmer or buyer account. Admin rows are only ever seeded.
func (s *AuthService) Register(ctx context.Context, role domain.Role, name, email, phone, password string) (*domain.User, error) {
	if role != domain.RoleFarmer && role != domain.RoleBuyer {
		return nil, ErrInvalidRole
	}
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)
	if name == "" || password == "" {
		return nil, ErrMissingFields
	}

	if email != "" {
		n, err := s.users.CountByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Role: role, Name: name, Phone: phone, PasswordHash: string(hash)}
	if email != "" {
		u.Email = &email
	}
	if err := s.users.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, identifier, password string, role domain.Role) (auth.Principal, error) {
	if !role.Valid() {
		return auth.Principal{}, ErrInvalidRole
	}
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return auth.Principal{}, ErrInvalidCredentials
	}

	p, err := s.chain.Authenticate(ctx, identifier, password, role)
	if errors.Is(err, auth.ErrNoMatch) {
		return auth.Principal{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Printf("login lookup failed for role %s: %v", role, err)
		return auth.Principal{}, err
	}
	return p, nil
}

func (s *AuthService) IssueSession(p auth.Principal) (string, error) {
	return s.tokens.Issue(p)
}

// ResolveSession verifies a session token and re-checks the principal with
// the provider that issued it.
func (s *AuthService) ResolveSession(ctx context.Context, raw string) (auth.Principal, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return auth.Principal{}, err
	}
	return s.chain.Resolve(ctx, claims)
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}
