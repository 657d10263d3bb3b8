package repository

import (
	"context"

	"farmer-market/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByEmail(ctx context.Context, role domain.Role, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, role domain.Role, phone string) (*domain.User, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	ListNonAdmin(ctx context.Context) ([]domain.User, error)
	// DeleteNonAdmin never removes admin rows; it reports how many rows went.
	DeleteNonAdmin(ctx context.Context, id uint64) (int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	ListByFarmer(ctx context.Context, farmerID uint64) ([]domain.Product, error)
	ListAvailable(ctx context.Context) ([]domain.ProductListing, error)
	ListAll(ctx context.Context) ([]domain.ProductListing, error)
	DeleteOwned(ctx context.Context, farmerID, id uint64) (int64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
	Suggest(ctx context.Context, term string, limit int) ([]domain.Suggestion, error)
	Search(ctx context.Context, term string) ([]domain.ProductListing, error)
}

// NoteBuilder returns the notifications emitted for one placed order.
type NoteBuilder func(o domain.Order) []domain.Notification

type CartRepository interface {
	Exists(ctx context.Context, buyerID, productID uint64) (bool, error)
	Add(ctx context.Context, item *domain.CartItem) error
	Remove(ctx context.Context, buyerID, cartID uint64) (int64, error)
	ListLines(ctx context.Context, buyerID uint64) ([]domain.CartLine, error)
	Count(ctx context.Context, buyerID uint64) (int64, error)
	// Checkout turns the buyer's cart into orders atomically. It returns
	// (nil, nil) when no cart entry references an unsold product, and in
	// that case nothing is written.
	Checkout(ctx context.Context, buyerID uint64, notes NoteBuilder) ([]domain.Order, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListRecent(ctx context.Context, userID uint64, limit int) ([]domain.Notification, error)
}
