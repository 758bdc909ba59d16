package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeFixed   CouponType = "fixed"
)

type Coupon struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code      string         `gorm:"uniqueIndex;not null" json:"code"`
	Type      CouponType     `gorm:"not null" json:"type"`
	Value     float64        `gorm:"not null" json:"value"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Usable reports whether the coupon can be applied right now.
func (c *Coupon) Usable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return false
	}
	return true
}

// Discount returns the discount amount for the given subtotal. The result is
// clamped so a fixed coupon never discounts more than the subtotal itself.
func (c *Coupon) Discount(subtotal float64) float64 {
	var d float64
	switch c.Type {
	case CouponTypePercent:
		d = subtotal * c.Value / 100
	case CouponTypeFixed:
		d = c.Value
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}
