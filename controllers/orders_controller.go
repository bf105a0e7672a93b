package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/middleware"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/pricing"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	orderNotFound   = "Order not found"
	orderDateLayout = "2006-01-02"
)

func quote(subtotal float64, coupon string) (pricing.Quote, error) {
	q, err := pricing.Apply(subtotal, coupon)
	if errors.Is(err, pricing.ErrInvalidCoupon) {
		return q, utils.ValidationError("Invalid coupon code")
	}
	return q, err
}

// POST /api/coupons/apply
func ApplyCoupon() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ApplyCouponDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		q, err := quote(body.Subtotal, body.Code)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, q)
	}
}

type orderRequest struct {
	items            []models.CartItem
	coupon           string
	paymentMethod    models.PaymentMethod
	deliveryLocation string
	clientTotal      *float64
}

// placeOrder prices the items on the server and persists a Pending order.
func placeOrder(ctx context.Context, orders store.OrderStore, user *models.User, req orderRequest) (*models.Order, error) {
	if len(req.items) == 0 {
		return nil, utils.ValidationError("Cart is empty")
	}
	q, err := quote(pricing.Subtotal(req.items), req.coupon)
	if err != nil {
		return nil, err
	}
	if req.clientTotal != nil && !q.Matches(*req.clientTotal) {
		return nil, utils.ValidationError("totalAmount does not match the order total")
	}

	order := models.Order{
		User:             user.ID,
		Items:            req.items,
		Subtotal:         q.Subtotal,
		Discount:         q.Discount,
		Coupon:           req.coupon,
		TotalAmount:      q.FinalAmount,
		PaymentMethod:    req.paymentMethod,
		Status:           models.OrderStatusPending,
		OrderDate:        time.Now().UTC().Format(orderDateLayout),
		DeliveryLocation: strings.TrimSpace(req.deliveryLocation),
	}
	if err := orders.Create(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /api/orders
func CreateOrder(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		var body dto.CreateOrderDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		items := make([]models.CartItem, 0, len(body.Items))
		for _, it := range body.Items {
			productID, _ := utils.ParseObjectID(it.ProductID)
			items = append(items, models.CartItem{
				ProductID: productID,
				Name:      it.Name,
				Price:     it.Price,
				Image:     it.Image,
				Quantity:  it.Quantity,
			})
		}

		order, err := placeOrder(c.Request.Context(), orders, user, orderRequest{
			items:            items,
			coupon:           body.Coupon,
			paymentMethod:    models.PaymentMethod(body.PaymentMethod),
			deliveryLocation: body.DeliveryLocation,
			clientTotal:      body.TotalAmount,
		})
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
	}
}

// POST /api/orders/checkout orders a single buy-now product or a whole cart.
// The cart is left as is; clients clear it once the order is confirmed.
func Checkout(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		var body dto.CheckoutDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		ctx := c.Request.Context()

		var items []models.CartItem
		if body.BuyNow != nil {
			productID, _ := utils.ParseObjectID(body.BuyNow.ProductID)
			items = []models.CartItem{{
				ProductID: productID,
				Name:      body.BuyNow.Name,
				Price:     body.BuyNow.Price,
				Image:     body.BuyNow.Image,
				Quantity:  1,
			}}
		} else {
			owner := strings.TrimSpace(body.CartOwner)
			if owner == "" {
				owner = user.ID.Hex()
			}
			cart, err := s.Carts.Get(ctx, owner)
			if err != nil {
				utils.RespondError(c, err, "")
				return
			}
			items = cart.Products
		}

		order, err := placeOrder(ctx, s.Orders, user, orderRequest{
			items:            items,
			coupon:           body.Coupon,
			paymentMethod:    models.PaymentMethod(body.PaymentMethod),
			deliveryLocation: body.DeliveryLocation,
		})
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
	}
}

// GET /api/orders/myorders
func GetMyOrders(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		list, err := orders.ListByUser(c.Request.Context(), user.ID)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /api/orders (admin) populates each order's user.
func GetOrders(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		list, err := s.Orders.List(ctx)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}

		users := make(map[bson.ObjectID]*models.UserSummary)
		out := make([]models.AdminOrderView, 0, len(list))
		for _, o := range list {
			summary, seen := users[o.User]
			if !seen {
				u, err := s.Users.GetByID(ctx, o.User)
				switch {
				case err == nil:
					sum := u.Summary()
					summary = &sum
				case !errors.Is(err, store.ErrNotFound):
					utils.RespondError(c, err, "")
					return
				}
				users[o.User] = summary
			}
			out = append(out, models.AdminOrderView{Order: o, User: summary})
		}
		c.JSON(http.StatusOK, out)
	}
}

// PUT /api/orders/:id
func UpdateOrder(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", orderNotFound)
		if !ok {
			return
		}
		var body dto.UpdateOrderDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		upd := models.OrderUpdate{ExpectedVersion: body.Version}
		if body.Status != nil {
			status := models.OrderStatus(*body.Status)
			upd.Status = &status
		}
		switch {
		case body.Action != nil:
			upd.Action = body.Action
		case body.ActionMessage != nil:
			upd.Action = body.ActionMessage
		}

		order, err := orders.Update(c.Request.Context(), id, upd)
		if err != nil {
			utils.RespondError(c, err, orderNotFound)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /api/orders/:id
func DeleteOrder(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", orderNotFound)
		if !ok {
			return
		}
		if err := orders.Delete(c.Request.Context(), id); err != nil {
			utils.RespondError(c, err, orderNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
