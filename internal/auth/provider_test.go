package auth

import (
	"context"
	"errors"
	"testing"

	"farmer-market/internal/domain"
	"farmer-market/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashed(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func TestDeveloperProvider(t *testing.T) {
	d := NewDeveloperProvider(" Developer@Dev.com ", "pw")
	ctx := context.Background()

	p, err := d.Authenticate(ctx, "developer@dev.com", "pw", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: 0, Role: domain.RoleAdmin, Name: "Developer Admin", Provider: ProviderDeveloper}, p)

	_, err = d.Authenticate(ctx, "developer@dev.com", "pw", domain.RoleFarmer)
	assert.ErrorIs(t, err, ErrNoMatch)
	_, err = d.Authenticate(ctx, "developer@dev.com", "nope", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = NewDeveloperProvider("", "").Authenticate(ctx, "", "", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = d.Resolve(ctx, &Claims{UserID: 5, Role: "admin", Provider: ProviderDeveloper})
	assert.ErrorIs(t, err, ErrPrincipalGone)
}

func TestStoreProvider_Authenticate(t *testing.T) {
	email := "asha@farm.in"
	user := &domain.User{ID: 3, Role: domain.RoleFarmer, Name: "Asha", Email: &email, Phone: "999", PasswordHash: hashed(t, "pw")}

	tests := []struct {
		name       string
		identifier string
		password   string
		setupMocks func(*mocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:       "email lookup",
			identifier: email,
			password:   "pw",
			setupMocks: func(m *mocks.MockUserRepository) {
				m.On("FindByEmail", mock.Anything, domain.RoleFarmer, email).Return(user, nil)
			},
		},
		{
			name:       "phone lookup",
			identifier: "999",
			password:   "pw",
			setupMocks: func(m *mocks.MockUserRepository) {
				m.On("FindByPhone", mock.Anything, domain.RoleFarmer, "999").Return(user, nil)
			},
		},
		{
			name:       "bad password",
			identifier: "999",
			password:   "x",
			setupMocks: func(m *mocks.MockUserRepository) {
				m.On("FindByPhone", mock.Anything, domain.RoleFarmer, "999").Return(user, nil)
			},
			wantErr: ErrNoMatch,
		},
		{
			name:       "no such user",
			identifier: "nobody@x.com",
			password:   "pw",
			setupMocks: func(m *mocks.MockUserRepository) {
				m.On("FindByEmail", mock.Anything, domain.RoleFarmer, "nobody@x.com").Return(nil, nil)
			},
			wantErr: ErrNoMatch,
		},
		{
			name:       "storage error surfaces",
			identifier: "nobody@x.com",
			password:   "pw",
			setupMocks: func(m *mocks.MockUserRepository) {
				m.On("FindByEmail", mock.Anything, domain.RoleFarmer, "nobody@x.com").Return(nil, errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.MockUserRepository)
			tt.setupMocks(users)

			p, err := NewStoreProvider(users).Authenticate(context.Background(), tt.identifier, tt.password, domain.RoleFarmer)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint64(3), p.UserID)
				assert.True(t, p.Stored())
			}
			users.AssertExpectations(t)
		})
	}
}

func TestStoreProvider_Resolve(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("FindByID", mock.Anything, uint64(3)).Return(&domain.User{ID: 3, Role: domain.RoleFarmer, Name: "Asha"}, nil)
	users.On("FindByID", mock.Anything, uint64(4)).Return(nil, nil)
	s := NewStoreProvider(users)
	ctx := context.Background()

	p, err := s.Resolve(ctx, &Claims{UserID: 3, Role: "farmer", Provider: ProviderStore})
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)

	_, err = s.Resolve(ctx, &Claims{UserID: 3, Role: "admin", Provider: ProviderStore})
	assert.ErrorIs(t, err, ErrPrincipalGone)

	_, err = s.Resolve(ctx, &Claims{UserID: 4, Role: "buyer", Provider: ProviderStore})
	assert.ErrorIs(t, err, ErrPrincipalGone)

	_, err = s.Resolve(ctx, &Claims{UserID: 0, Role: "admin", Provider: ProviderStore})
	assert.ErrorIs(t, err, ErrPrincipalGone)
}

func TestChain(t *testing.T) {
	users := new(mocks.MockUserRepository)
	adminHash := hashed(t, "rootpw")
	users.On("FindByEmail", mock.Anything, domain.RoleAdmin, "root@x.com").Return(&domain.User{ID: 1, Role: domain.RoleAdmin, Name: "Admin", PasswordHash: adminHash}, nil)

	chain := NewChain(NewDeveloperProvider("dev@x.com", "devpw"), NewStoreProvider(users))
	ctx := context.Background()

	dev, err := chain.Authenticate(ctx, "dev@x.com", "devpw", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, ProviderDeveloper, dev.Provider)

	// falls through to the store for seeded admin rows
	root, err := chain.Authenticate(ctx, "root@x.com", "rootpw", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, ProviderStore, root.Provider)
	assert.Equal(t, uint64(1), root.UserID)

	got, err := chain.Resolve(ctx, &Claims{UserID: 0, Role: "admin", Provider: ProviderDeveloper})
	require.NoError(t, err)
	assert.Equal(t, dev, got)

	_, err = chain.Resolve(ctx, &Claims{UserID: 0, Role: "admin", Provider: "ldap"})
	assert.ErrorIs(t, err, ErrPrincipalGone)
}
