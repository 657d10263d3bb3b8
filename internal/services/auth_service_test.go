package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"farmer-market/internal/auth"
	"farmer-market/internal/domain"
	"farmer-market/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		role          domain.Role
		userName      string
		email         string
		password      string
		setupMocks    func(*mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:          "admin cannot self register",
			role:          domain.RoleAdmin,
			userName:      "Root",
			password:      "x",
			setupMocks:    func(*mocks.MockUserRepository) {},
			expectedError: ErrInvalidRole,
		},
		{
			name:          "missing name",
			role:          domain.RoleFarmer,
			userName:      "   ",
			password:      "x",
			setupMocks:    func(*mocks.MockUserRepository) {},
			expectedError: ErrMissingFields,
		},
		{
			name:          "missing password",
			role:          domain.RoleBuyer,
			userName:      "B",
			setupMocks:    func(*mocks.MockUserRepository) {},
			expectedError: ErrMissingFields,
		},
		{
			name:     "email taken",
			role:     domain.RoleBuyer,
			userName: "B",
			email:    " Taken@Example.com ",
			password: "x",
			setupMocks: func(m *mocks.MockUserRepository) {
				m.On("CountByEmail", mock.Anything, "taken@example.com").Return(int64(1), nil)
			},
			expectedError: ErrDuplicateEmail,
		},
		{
			name:     "email taken concurrently",
			role:     domain.RoleBuyer,
			userName: "B",
			email:    "race@example.com",
			password: "x",
			setupMocks: func(m *mocks.MockUserRepository) {
				m.On("CountByEmail", mock.Anything, "race@example.com").Return(int64(0), nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: ErrDuplicateEmail,
		},
		{
			name:     "repository error",
			role:     domain.RoleFarmer,
			userName: "F",
			password: "x",
			setupMocks: func(m *mocks.MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(errors.New("disk full"))
			},
			expectedError: errors.New("disk full"),
		},
		{
			name:     "successful registration",
			role:     domain.RoleFarmer,
			userName: "  Asha ",
			email:    "Asha@Farm.IN",
			password: "secret",
			setupMocks: func(m *mocks.MockUserRepository) {
				m.On("CountByEmail", mock.Anything, "asha@farm.in").Return(int64(0), nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.User).ID = 7
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.MockUserRepository)
			tt.setupMocks(users)
			svc := NewAuthService(users, auth.NewChain(auth.NewStoreProvider(users)), auth.NewTokenCodec("k", time.Hour))

			u, err := svc.Register(context.Background(), tt.role, tt.userName, tt.email, "", tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, u)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint64(7), u.ID)
				assert.Equal(t, "Asha", u.Name)
				assert.Equal(t, "asha@farm.in", u.EmailOrEmpty())
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterWithoutEmailStoresNull(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	a, err := s.auth.Register(ctx, domain.RoleFarmer, "A", "", "111", "pw")
	require.NoError(t, err)
	b, err := s.auth.Register(ctx, domain.RoleBuyer, "B", "  ", "222", "pw")
	require.NoError(t, err)

	assert.Nil(t, a.Email)
	assert.Nil(t, b.Email)
}

func TestAuthService_EmailUniqueAcrossRoles(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	_, err := s.auth.Register(ctx, domain.RoleFarmer, "A", "same@x.com", "", "pw")
	require.NoError(t, err)
	_, err = s.auth.Register(ctx, domain.RoleBuyer, "B", "SAME@x.com", "", "pw")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, int64(1), s.count(t, &domain.User{}, ""))
}

func TestAuthService_Login(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()
	_, err := s.auth.Register(ctx, domain.RoleFarmer, "Ravi", "ravi@farm.in", "9876543210", "pw")
	require.NoError(t, err)

	tests := []struct {
		name       string
		identifier string
		password   string
		role       domain.Role
		wantErr    error
		wantName   string
	}{
		{name: "by email, case folded", identifier: " RAVI@farm.in ", password: "pw", role: domain.RoleFarmer, wantName: "Ravi"},
		{name: "by phone", identifier: "9876543210", password: "pw", role: domain.RoleFarmer, wantName: "Ravi"},
		{name: "wrong password", identifier: "ravi@farm.in", password: "nope", role: domain.RoleFarmer, wantErr: ErrInvalidCredentials},
		{name: "wrong role", identifier: "ravi@farm.in", password: "pw", role: domain.RoleBuyer, wantErr: ErrInvalidCredentials},
		{name: "unknown user", identifier: "ghost@x.com", password: "pw", role: domain.RoleFarmer, wantErr: ErrInvalidCredentials},
		{name: "developer admin", identifier: testDevEmail, password: testDevPassword, role: domain.RoleAdmin, wantName: "Developer Admin"},
		{name: "developer credentials only work for admin", identifier: testDevEmail, password: testDevPassword, role: domain.RoleBuyer, wantErr: ErrInvalidCredentials},
		{name: "unknown role", identifier: "ravi@farm.in", password: "pw", role: "owner", wantErr: ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := s.auth.Login(ctx, tt.identifier, tt.password, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name)
			assert.True(t, p.Has(tt.role))
		})
	}
}

func TestAuthService_SessionRoundTrip(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()
	buyer := s.register(t, domain.RoleBuyer, "Bina", "bina@x.com")

	raw, err := s.auth.IssueSession(buyer)
	require.NoError(t, err)

	got, err := s.auth.ResolveSession(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, buyer, got)
	assert.False(t, got.Has(domain.RoleAdmin))

	// deleting the row revokes the session
	require.NoError(t, s.admin.DeleteUser(ctx, buyer.UserID))
	_, err = s.auth.ResolveSession(ctx, raw)
	assert.ErrorIs(t, err, auth.ErrPrincipalGone)
}

func TestAuthService_DeveloperSessionNeedsNoRow(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	dev, err := s.auth.Login(ctx, testDevEmail, testDevPassword, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), dev.UserID)
	assert.False(t, dev.Stored())

	raw, err := s.auth.IssueSession(dev)
	require.NoError(t, err)
	got, err := s.auth.ResolveSession(ctx, raw)
	require.NoError(t, err)
	assert.True(t, got.Has(domain.RoleAdmin))
	assert.Equal(t, int64(0), s.count(t, &domain.User{}, ""))
}

func TestAuthService_ResolveRejectsTamperedToken(t *testing.T) {
	s := newStack(t, nil)
	_, err := s.auth.ResolveSession(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
