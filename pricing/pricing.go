// Package pricing computes order amounts. Amounts are always derived from
// the subtotal, so applying a coupon twice gives the same result.
package pricing

import (
	"errors"
	"math"

	"github.com/treenow/treenowbackend/models"
)

const (
	// CouponDiscount10 is the only accepted code. Matching is case-sensitive.
	CouponDiscount10 = "DISCOUNT10"
	discountRate     = 0.10

	// Tolerance is the largest accepted difference between a client-side
	// total and the computed one.
	Tolerance = 0.01
)

var ErrInvalidCoupon = errors.New("invalid coupon code")

type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	FinalAmount float64 `json:"finalAmount"`
}

func Subtotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return Round(total)
}

// Apply prices subtotal with an optional coupon. An empty code means no
// coupon; any other code, padded variants of a valid one included, is
// rejected with ErrInvalidCoupon.
func Apply(subtotal float64, code string) (Quote, error) {
	subtotal = Round(subtotal)
	q := Quote{Subtotal: subtotal, FinalAmount: subtotal}

	switch code {
	case "":
		return q, nil
	case CouponDiscount10:
		q.Discount = Round(subtotal * discountRate)
		q.FinalAmount = Round(subtotal - q.Discount)
		return q, nil
	default:
		return q, ErrInvalidCoupon
	}
}

// Matches reports whether a client-side total agrees with q.
func (q Quote) Matches(total float64) bool {
	return math.Abs(q.FinalAmount-total) <= Tolerance
}

func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
