package gormrepo

import (
	"context"
	"errors"
	"log"

	"farmer-market/internal/domain"
	"farmer-market/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		log.Printf("product create error: %v", err)
		return err
	}
	if p.ID == 0 {
		return errors.New("failed to assign product ID")
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("product FindByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) ListByFarmer(ctx context.Context, farmerID uint64) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *productRepo) listings(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.*, u.name AS farmer_name").
		Joins("JOIN users u ON p.farmer_id = u.id")
}

func (r *productRepo) ListAvailable(ctx context.Context) ([]domain.ProductListing, error) {
	var out []domain.ProductListing
	err := r.listings(ctx).
		Where("p.sold = ?", false).
		Order("p.created_at DESC, p.id DESC").
		Scan(&out).Error
	return out, err
}

func (r *productRepo) ListAll(ctx context.Context) ([]domain.ProductListing, error) {
	var out []domain.ProductListing
	err := r.listings(ctx).
		Order("p.created_at DESC, p.id DESC").
		Scan(&out).Error
	return out, err
}

func (r *productRepo) DeleteOwned(ctx context.Context, farmerID, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND farmer_id = ?", id, farmerID).
		Delete(&domain.Product{})
	return res.RowsAffected, res.Error
}

func (r *productRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	return res.RowsAffected, res.Error
}

func (r *productRepo) Suggest(ctx context.Context, term string, limit int) ([]domain.Suggestion, error) {
	out := []domain.Suggestion{}
	err := r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.name AS name, COUNT(r.id) AS review_count, COALESCE(AVG(r.rating), 0) AS avg_rating").
		Joins("LEFT JOIN reviews r ON p.id = r.product_id").
		Where("p.sold = ? AND LOWER(p.name) LIKE ?", false, likePattern(term)).
		Group("p.name").
		Order("avg_rating DESC, review_count DESC, p.name").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		log.Printf("suggest error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Search(ctx context.Context, term string) ([]domain.ProductListing, error) {
	pattern := likePattern(term)
	out := []domain.ProductListing{}
	err := r.listings(ctx).
		Joins("LEFT JOIN reviews r ON p.id = r.product_id").
		Where("p.sold = ? AND (LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ?)", false, pattern, pattern).
		Group("p.id, u.name").
		Order("COALESCE(AVG(r.rating), 0) DESC, p.created_at DESC, p.id DESC").
		Scan(&out).Error
	if err != nil {
		log.Printf("search error: %v", err)
		return nil, err
	}
	return out, nil
}

func likePattern(term string) string {
	return "%" + term + "%"
}
