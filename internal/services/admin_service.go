package services

import (
	"context"
	"log"

	"farmer-market/internal/domain"
	"farmer-market/internal/repository"

	"golang.org/x/sync/errgroup"
)

type AdminOverview struct {
	Users    []domain.User
	Products []domain.ProductListing
}

type AdminService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	cache    SuggestCache
}

func NewAdminService(users repository.UserRepository, products repository.ProductRepository, cache SuggestCache) *AdminService {
	return &AdminService{users: users, products: products, cache: cache}
}

func (s *AdminService) Overview(ctx context.Context) (*AdminOverview, error) {
	var out AdminOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.users.ListNonAdmin(gctx)
		out.Users = users
		return err
	})
	g.Go(func() error {
		products, err := s.products.ListAll(gctx)
		out.Products = products
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a farmer or buyer. Admin rows and the developer
// principal (id 0) are refused; an unknown id is a no-op.
func (s *AdminService) DeleteUser(ctx context.Context, id uint64) error {
	if id == 0 {
		return ErrAdminProtected
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	if u.Role == domain.RoleAdmin {
		return ErrAdminProtected
	}

	n, err := s.users.DeleteNonAdmin(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("admin removed user %d (%s)", id, u.Role)
		invalidateCatalog(ctx, s.cache)
	}
	return nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id uint64) error {
	n, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		invalidateCatalog(ctx, s.cache)
	}
	return nil
}
