package database

import (
	"log"
	"strings"
	"time"

	"farmer-market/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates a store-backed admin row when credentials are configured.
// Nothing happens when either value is empty or the email already exists.
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		log.Println("skip seeding admin: ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	if err := db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := domain.User{
		Role:         domain.RoleAdmin,
		Name:         "Admin",
		Email:        &email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	return db.Create(&admin).Error
}
