package domain

import "time"

type CartItem struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	BuyerID   uint64    `json:"buyerId" gorm:"not null;uniqueIndex:idx_cart_buyer_product"`
	ProductID uint64    `json:"productId" gorm:"not null;uniqueIndex:idx_cart_buyer_product"`
	AddedAt   time.Time `json:"addedAt" gorm:"autoCreateTime"`
}

// CartLine is what the cart page renders: the entry plus its product.
type CartLine struct {
	CartID uint64 `json:"cartId"`
	ProductListing
}
