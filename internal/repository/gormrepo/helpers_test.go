package gormrepo

import (
	"context"
	"path/filepath"
	"testing"

	"farmer-market/internal/domain"
	"farmer-market/internal/infra/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role domain.Role, name, email string) *domain.User {
	t.Helper()
	u := &domain.User{Role: role, Name: name, Phone: "", PasswordHash: "x"}
	if email != "" {
		u.Email = &email
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, db *gorm.DB, farmerID uint64, name, desc string, price float64) *domain.Product {
	t.Helper()
	p := &domain.Product{FarmerID: farmerID, Name: name, Description: desc, Price: price}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}

func seedReview(t *testing.T, db *gorm.DB, productID, buyerID uint64, rating int) {
	t.Helper()
	require.NoError(t, NewReviewRepository(db).Create(context.Background(), &domain.Review{
		ProductID: productID, BuyerID: buyerID, Rating: rating,
	}))
}

func markSold(t *testing.T, db *gorm.DB, id uint64) {
	t.Helper()
	require.NoError(t, db.Model(&domain.Product{}).Where("id = ?", id).Update("sold", true).Error)
}
