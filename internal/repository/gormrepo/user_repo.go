package gormrepo

import (
	"context"
	"errors"
	"log"

	"farmer-market/internal/domain"
	"farmer-market/internal/repository"

	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		log.Printf("user create error: %v", err)
		return err
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepo) FindByEmail(ctx context.Context, role domain.Role, email string) (*domain.User, error) {
	return r.first(r.db.WithContext(ctx).Where("role = ? AND email = ?", role, email))
}

func (r *userRepo) FindByPhone(ctx context.Context, role domain.Role, phone string) (*domain.User, error) {
	return r.first(r.db.WithContext(ctx).Where("role = ? AND phone = ?", role, phone))
}

func (r *userRepo) first(q *gorm.DB) (*domain.User, error) {
	var u domain.User
	if err := q.Order("id").First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("user lookup error: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) CountByEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&n).Error
	return n, err
}

func (r *userRepo) ListNonAdmin(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := r.db.WithContext(ctx).
		Where("role <> ?", domain.RoleAdmin).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *userRepo) DeleteNonAdmin(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND role <> ?", id, domain.RoleAdmin).
		Delete(&domain.User{})
	return res.RowsAffected, res.Error
}
