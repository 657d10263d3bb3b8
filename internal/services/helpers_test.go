package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"farmer-market/internal/auth"
	"farmer-market/internal/domain"
	"farmer-market/internal/infra/database"
	"farmer-market/internal/repository/gormrepo"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testDevEmail    = "developer@dev.com"
	testDevPassword = "devpass"
)

// stack is the full service graph over a throwaway sqlite file.
type stack struct {
	db      *gorm.DB
	auth    *AuthService
	catalog *CatalogService
	search  *SearchService
	cart    *CartService
	reviews *ReviewService
	notes   *NotificationService
	admin   *AdminService
}

func newStack(t *testing.T, images ImageStore) *stack {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	users := gormrepo.NewUserRepository(db)
	products := gormrepo.NewProductRepository(db)
	chain := auth.NewChain(auth.NewDeveloperProvider(testDevEmail, testDevPassword), auth.NewStoreProvider(users))

	cart := NewCartService(gormrepo.NewCartRepository(db), products, nil, nil)
	t.Cleanup(cart.Wait)

	return &stack{
		db:      db,
		auth:    NewAuthService(users, chain, auth.NewTokenCodec("test-secret", time.Hour)),
		catalog: NewCatalogService(products, images, nil),
		search:  NewSearchService(products, nil),
		cart:    cart,
		reviews: NewReviewService(gormrepo.NewReviewRepository(db), products, nil),
		notes:   NewNotificationService(gormrepo.NewNotificationRepository(db)),
		admin:   NewAdminService(users, products, nil),
	}
}

func (s *stack) register(t *testing.T, role domain.Role, name, email string) auth.Principal {
	t.Helper()
	ctx := context.Background()
	_, err := s.auth.Register(ctx, role, name, email, "", "secret")
	require.NoError(t, err)
	p, err := s.auth.Login(ctx, email, "secret", role)
	require.NoError(t, err)
	return p
}

func (s *stack) list(t *testing.T, farmer auth.Principal, name, desc string, price float64) *domain.Product {
	t.Helper()
	p, err := s.catalog.Add(context.Background(), farmer, ProductInput{Name: name, Description: desc, Price: price})
	require.NoError(t, err)
	return p
}

func (s *stack) count(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	q := s.db.Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
