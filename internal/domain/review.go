package domain

import "time"

type Review struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uint64    `json:"productId" gorm:"not null;index"`
	BuyerID   uint64    `json:"buyerId" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
