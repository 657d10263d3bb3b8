package gormrepo

import (
	"context"
	"errors"
	"log"

	"farmer-market/internal/domain"
	"farmer-market/internal/repository"

	"gorm.io/gorm"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) Exists(ctx context.Context, buyerID, productID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.CartItem{}).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		Count(&n).Error
	return n > 0, err
}

// Add inserts the entry; a concurrent duplicate is absorbed by the
// (buyer_id, product_id) unique index.
func (r *cartRepo) Add(ctx context.Context, item *domain.CartItem) error {
	err := r.db.WithContext(ctx).Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	if err != nil {
		log.Printf("cart add error: %v", err)
	}
	return err
}

func (r *cartRepo) Remove(ctx context.Context, buyerID, cartID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND buyer_id = ?", cartID, buyerID).
		Delete(&domain.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *cartRepo) ListLines(ctx context.Context, buyerID uint64) ([]domain.CartLine, error) {
	var out []domain.CartLine
	err := r.db.WithContext(ctx).
		Table("cart_items AS c").
		Select("c.id AS cart_id, p.*, u.name AS farmer_name").
		Joins("JOIN products p ON c.product_id = p.id").
		Joins("JOIN users u ON p.farmer_id = u.id").
		Where("c.buyer_id = ?", buyerID).
		Order("c.id").
		Scan(&out).Error
	return out, err
}

func (r *cartRepo) Count(ctx context.Context, buyerID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.CartItem{}).Where("buyer_id = ?", buyerID).Count(&n).Error
	return n, err
}

type checkoutRow struct {
	CartID    uint64
	ProductID uint64
	FarmerID  uint64
}

var errNothingPlaced = errors.New("nothing placed")

func (r *cartRepo) Checkout(ctx context.Context, buyerID uint64, notes repository.NoteBuilder) ([]domain.Order, error) {
	var placed []domain.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []checkoutRow
		if err := tx.Table("cart_items AS c").
			Select("c.id AS cart_id, p.id AS product_id, p.farmer_id AS farmer_id").
			Joins("JOIN products p ON c.product_id = p.id").
			Where("c.buyer_id = ? AND p.sold = ?", buyerID, false).
			Order("c.id").
			Scan(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return errNothingPlaced
		}

		for _, row := range rows {
			// Claim the product; a concurrent checkout that got there
			// first leaves zero rows affected and the entry is dropped.
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND sold = ?", row.ProductID, false).
				Update("sold", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != 1 {
				continue
			}

			order := domain.Order{
				ProductID: row.ProductID,
				BuyerID:   buyerID,
				FarmerID:  row.FarmerID,
				Status:    domain.StatusPlacedCOD,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			if notes != nil {
				if ns := notes(order); len(ns) > 0 {
					if err := tx.Create(&ns).Error; err != nil {
						return err
					}
				}
			}
			placed = append(placed, order)
		}

		if len(placed) == 0 {
			return errNothingPlaced
		}
		return tx.Where("buyer_id = ?", buyerID).Delete(&domain.CartItem{}).Error
	})

	if errors.Is(err, errNothingPlaced) {
		return nil, nil
	}
	if err != nil {
		log.Printf("checkout error (buyer %d): %v", buyerID, err)
		return nil, err
	}

	log.Printf("checkout placed %d orders for buyer %d", len(placed), buyerID)
	return placed, nil
}
