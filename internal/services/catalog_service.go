package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"mime/multipart"
	"strings"

	"farmer-market/internal/auth"
	"farmer-market/internal/domain"
	"farmer-market/internal/infra/uploads"
	"farmer-market/internal/repository"
)

// ImageStore persists product pictures and returns the stored file name.
type ImageStore interface {
	SaveFile(fh *multipart.FileHeader) (string, error)
	SaveDataURL(data string) (string, error)
	Remove(name string) error
}

type ProductInput struct {
	Name        string
	Description string
	Phone       string
	Price       float64
	Image       *multipart.FileHeader
	// CameraImage is a data URL from the in-browser camera.
	CameraImage string
}

type CatalogService struct {
	products repository.ProductRepository
	images   ImageStore
	cache    SuggestCache
}

func NewCatalogService(products repository.ProductRepository, images ImageStore, cache SuggestCache) *CatalogService {
	return &CatalogService{products: products, images: images, cache: cache}
}

func (s *CatalogService) Add(ctx context.Context, farmer auth.Principal, in ProductInput) (*domain.Product, error) {
	if !farmer.Has(domain.RoleFarmer) {
		return nil, ErrInvalidRole
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrMissingFields
	}
	if in.Price <= 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return nil, ErrInvalidPrice
	}

	image, err := s.saveImage(in)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		FarmerID:    farmer.UserID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Phone:       strings.TrimSpace(in.Phone),
	}
	if image != "" {
		p.ImageFilename = &image
	}
	if err := s.products.Create(ctx, p); err != nil {
		if image != "" {
			if rmErr := s.images.Remove(image); rmErr != nil {
				log.Printf("failed to remove orphaned image %s: %v", image, rmErr)
			}
		}
		return nil, err
	}

	invalidateCatalog(ctx, s.cache)
	return p, nil
}

// saveImage stores at most one picture. A camera capture replaces an
// uploaded file when both are sent.
func (s *CatalogService) saveImage(in ProductInput) (string, error) {
	var (
		name string
		err  error
	)
	switch {
	case strings.TrimSpace(in.CameraImage) != "":
		name, err = s.images.SaveDataURL(in.CameraImage)
	case in.Image != nil && in.Image.Filename != "":
		name, err = s.images.SaveFile(in.Image)
	default:
		return "", nil
	}
	if errors.Is(err, uploads.ErrInvalidImage) {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return name, err
}

func (s *CatalogService) ListOwn(ctx context.Context, farmerID uint64) ([]domain.Product, error) {
	return s.products.ListByFarmer(ctx, farmerID)
}

func (s *CatalogService) ListAvailable(ctx context.Context) ([]domain.ProductListing, error) {
	return s.products.ListAvailable(ctx)
}

// Delete removes the product only when farmerID owns it; anything else is a no-op.
func (s *CatalogService) Delete(ctx context.Context, farmerID, productID uint64) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || p.FarmerID != farmerID {
		return nil
	}
	n, err := s.products.DeleteOwned(ctx, farmerID, productID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.removeImage(p)
		invalidateCatalog(ctx, s.cache)
	}
	return nil
}

func (s *CatalogService) removeImage(p *domain.Product) {
	if p.Image() == "" {
		return
	}
	if err := s.images.Remove(p.Image()); err != nil {
		log.Printf("failed to remove image for product %d: %v", p.ID, err)
	}
}
