package domain

import "time"

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleBuyer  Role = "buyer"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Role         Role      `json:"role" gorm:"type:varchar(16);not null;index"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Email        *string   `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Phone        string    `json:"phone" gorm:"type:varchar(32);index"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// EmailOrEmpty is used by templates, which cannot dereference.
func (u User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
