package domain

import "time"

type Product struct {
	ID            uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	FarmerID      uint64    `json:"farmerId" gorm:"not null;index"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description"`
	Price         float64   `json:"price" gorm:"not null"`
	Phone         string    `json:"phone" gorm:"type:varchar(32)"`
	ImageFilename *string   `json:"imageFilename" gorm:"type:varchar(255)"`
	Sold          bool      `json:"sold" gorm:"not null;default:false;index"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// ProductListing is a product row joined with the owning farmer's name.
type ProductListing struct {
	Product
	FarmerName string `json:"farmerName"`
}

func (p Product) Image() string {
	if p.ImageFilename == nil {
		return ""
	}
	return *p.ImageFilename
}
