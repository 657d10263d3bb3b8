package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"farmer-market/internal/domain"
	"farmer-market/internal/infra/events"
	"farmer-market/internal/repository"

	"github.com/google/uuid"
)

type CartService struct {
	cart      repository.CartRepository
	products  repository.ProductRepository
	publisher events.Publisher
	cache     SuggestCache

	inflight sync.WaitGroup
}

func NewCartService(cart repository.CartRepository, products repository.ProductRepository, pub events.Publisher, cache SuggestCache) *CartService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &CartService{cart: cart, products: products, publisher: pub, cache: cache}
}

// Add puts an unsold product in the buyer's cart. Adding the same product
// twice is a no-op.
func (s *CartService) Add(ctx context.Context, buyerID, productID uint64) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || p.Sold {
		return ErrUnavailable
	}

	exists, err := s.cart.Exists(ctx, buyerID, productID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.cart.Add(ctx, &domain.CartItem{BuyerID: buyerID, ProductID: productID})
}

func (s *CartService) Remove(ctx context.Context, buyerID, cartID uint64) error {
	_, err := s.cart.Remove(ctx, buyerID, cartID)
	return err
}

func (s *CartService) List(ctx context.Context, buyerID uint64) ([]domain.CartLine, error) {
	return s.cart.ListLines(ctx, buyerID)
}

func (s *CartService) Count(ctx context.Context, buyerID uint64) (int64, error) {
	return s.cart.Count(ctx, buyerID)
}

// Checkout places one cash-on-delivery order per unsold product in the cart,
// notifies both parties and empties the cart, all in one transaction.
func (s *CartService) Checkout(ctx context.Context, buyerID uint64) ([]domain.Order, error) {
	orders, err := s.cart.Checkout(ctx, buyerID, checkoutNotes)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrEmptyCart
	}

	invalidateCatalog(ctx, s.cache)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.publishOrdersPlaced(context.Background(), orders)
	}()

	return orders, nil
}

func checkoutNotes(o domain.Order) []domain.Notification {
	return []domain.Notification{
		{UserID: o.FarmerID, Message: fmt.Sprintf("Your product #%d was ordered (Cash on Delivery).", o.ProductID)},
		{UserID: o.BuyerID, Message: fmt.Sprintf("Order placed for product #%d (COD).", o.ProductID)},
	}
}

func (s *CartService) publishOrdersPlaced(ctx context.Context, orders []domain.Order) {
	for _, o := range orders {
		evt := domain.OrderPlacedEvent{
			EventID:   uuid.NewString(),
			OrderID:   o.ID,
			ProductID: o.ProductID,
			BuyerID:   o.BuyerID,
			FarmerID:  o.FarmerID,
			Status:    string(o.Status),
			CreatedAt: o.CreatedAt,
		}
		if evt.CreatedAt.IsZero() {
			evt.CreatedAt = time.Now().UTC()
		}

		if err := s.publisher.Publish(ctx, events.TopicOrderPlaced, evt); err != nil {
			log.Printf("Failed to publish %s for order %d: %v", events.TopicOrderPlaced, o.ID, err)
		}
	}
}

// Wait blocks until every pending order event has been handed to the publisher.
func (s *CartService) Wait() {
	s.inflight.Wait()
}
