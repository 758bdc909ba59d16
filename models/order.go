package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusRejected OrderStatus = "rejected"
)

// Order is the durable record written once the payment gateway resolves a
// checkout. The reference matches the external_reference sent to the gateway.
type Order struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Reference     string         `gorm:"uniqueIndex;not null" json:"reference"`
	CustomerEmail string         `gorm:"not null;index" json:"customer_email"`
	CustomerName  string         `json:"customer_name"`
	Status        OrderStatus    `gorm:"default:pending" json:"status"`
	Subtotal      float64        `gorm:"not null" json:"subtotal"`
	Shipping      float64        `gorm:"default:0" json:"shipping"`
	Discount      float64        `gorm:"default:0" json:"discount"`
	Total         float64        `gorm:"not null" json:"total"`
	PaymentID     int64          `json:"payment_id"`
	Items         []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// OrderItem snapshots one cart line at checkout time.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   string    `gorm:"not null" json:"product_id"`
	ProductName string    `json:"product_name"`
	Image       string    `json:"image"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"not null" json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
