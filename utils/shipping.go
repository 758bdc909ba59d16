package utils

// Shipping is a flat step function of the subtotal: orders at or above the
// free-shipping threshold ship for free, everything else pays the flat rate.
// Rates are in BRL.
const (
	FreeShippingThreshold = 100.0
	FlatShippingRate      = 40.0
)

func CalculateShipping(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingRate
}
