package client

import (
	"context"
	"fmt"
	"time"

	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/models"
)

const defaultLocateTimeout = 5 * time.Second

// Geolocator reports the device position. Implementations may fail at any
// time, e.g. when the user denies access.
type Geolocator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

type CheckoutOptions struct {
	// CartOwner defaults to the logged-in user on the server.
	CartOwner     string
	BuyNow        *dto.BuyNowDTO
	Coupon        string
	PaymentMethod models.PaymentMethod

	Geolocator    Geolocator
	LocateTimeout time.Duration
}

// PlaceOrder checks out and, for cart orders, clears the cart afterwards.
// The delivery location is attached when the geolocator answers in time;
// otherwise the order goes through without it. When only the cart clearing
// fails, the order is returned together with the error.
func (c *Client) PlaceOrder(ctx context.Context, opts CheckoutOptions) (*models.Order, error) {
	req := dto.CheckoutDTO{
		CartOwner:     opts.CartOwner,
		BuyNow:        opts.BuyNow,
		Coupon:        opts.Coupon,
		PaymentMethod: string(opts.PaymentMethod),
	}
	if opts.Geolocator != nil {
		req.DeliveryLocation = locate(ctx, opts.Geolocator, opts.LocateTimeout)
	}

	order, err := c.Checkout(ctx, req)
	if err != nil {
		return nil, err
	}

	if opts.BuyNow != nil {
		return order, nil
	}
	owner := opts.CartOwner
	if owner == "" {
		me, err := c.Profile(ctx)
		if err != nil {
			return order, fmt.Errorf("order placed but cart not cleared: %w", err)
		}
		owner = me.ID.Hex()
	}
	if err := c.ClearCart(ctx, owner); err != nil {
		return order, fmt.Errorf("order placed but cart not cleared: %w", err)
	}
	return order, nil
}

func locate(ctx context.Context, g Geolocator, timeout time.Duration) string {
	if timeout <= 0 {
		timeout = defaultLocateTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pos, err := g.Locate(ctx)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%.6f,%.6f", pos.Latitude, pos.Longitude)
}
