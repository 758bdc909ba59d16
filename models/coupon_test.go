package models

import (
	"testing"
	"time"
)

func TestCouponUsable(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name   string
		coupon Coupon
		want   bool
	}{
		{"active without expiry", Coupon{IsActive: true}, true},
		{"inactive", Coupon{IsActive: false}, false},
		{"active not yet expired", Coupon{IsActive: true, ExpiresAt: &future}, true},
		{"active but expired", Coupon{IsActive: true, ExpiresAt: &past}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coupon.Usable(now); got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCouponDiscount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   Coupon
		subtotal float64
		want     float64
	}{
		{"percent", Coupon{Type: CouponTypePercent, Value: 10}, 200, 20},
		{"fixed", Coupon{Type: CouponTypeFixed, Value: 15}, 200, 15},
		{"fixed clamped to subtotal", Coupon{Type: CouponTypeFixed, Value: 50}, 30, 30},
		{"percent of zero subtotal", Coupon{Type: CouponTypePercent, Value: 10}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coupon.Discount(tt.subtotal); got != tt.want {
				t.Errorf("Discount(%v) = %v, want %v", tt.subtotal, got, tt.want)
			}
		})
	}
}
