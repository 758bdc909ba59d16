package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Price       float64        `gorm:"not null" json:"price"`
	Image       string         `json:"image"`
	Stock       int            `gorm:"default:0" json:"stock"`
	Description string         `json:"description"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Category    Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ToCartItem snapshots the product into the cookie cart shape with quantity 1.
func (p *Product) ToCartItem() CartItem {
	return CartItem{
		ID:       p.ID.String(),
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Slug:     p.Slug,
		Stock:    p.Stock,
		Quantity: 1,
	}
}
