package domain

import (
	"strconv"
	"time"
)

type OrderStatus string

const StatusPlacedCOD OrderStatus = "placed_cod"

type Order struct {
	ID        uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uint64      `json:"productId" gorm:"not null;index"`
	BuyerID   uint64      `json:"buyerId" gorm:"not null;index"`
	FarmerID  uint64      `json:"farmerId" gorm:"not null;index"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(32);not null"`
	CreatedAt time.Time   `json:"createdAt" gorm:"autoCreateTime"`
}

type OrderPlacedEvent struct {
	EventID   string    `json:"eventId"`
	OrderID   uint64    `json:"orderId"`
	ProductID uint64    `json:"productId"`
	BuyerID   uint64    `json:"buyerId"`
	FarmerID  uint64    `json:"farmerId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// PartitionKey keeps all events of one order on one partition.
func (e OrderPlacedEvent) PartitionKey() []byte {
	return []byte(strconv.FormatUint(e.OrderID, 10))
}
