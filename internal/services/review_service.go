package services

import (
	"context"
	"strings"

	"farmer-market/internal/domain"
	"farmer-market/internal/repository"
)

type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	cache    SuggestCache
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, cache SuggestCache) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, cache: cache}
}

// Submit records a rating for any existing product; purchase is not required.
func (s *ReviewService) Submit(ctx context.Context, buyerID, productID uint64, rating int, text string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	r := &domain.Review{ProductID: productID, BuyerID: buyerID, Rating: rating, Text: strings.TrimSpace(text)}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}

	// ratings feed suggestion ordering
	invalidateCatalog(ctx, s.cache)
	return r, nil
}
