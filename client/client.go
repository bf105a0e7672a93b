// Package client is a typed Go client for the Treenow API together with the
// client-side state a storefront keeps between sessions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/pricing"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("treenow: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Register(ctx context.Context, in dto.RegisterDTO) error {
	return c.do(ctx, http.MethodPost, "/api/users/register", in, nil)
}

// Login stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", dto.LoginDTO{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*models.UserSummary, error) {
	var out models.UserSummary
	if err := c.do(ctx, http.MethodGet, "/api/users/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Trees(ctx context.Context) ([]models.Tree, error) {
	var out []models.Tree
	if err := c.do(ctx, http.MethodGet, "/api/trees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Locations(ctx context.Context) ([]models.LocationSummary, error) {
	var out []models.LocationSummary
	if err := c.do(ctx, http.MethodGet, "/api/locations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchLocations(ctx context.Context, query string) ([]models.LocationSummary, error) {
	var out []models.LocationSummary
	if err := c.do(ctx, http.MethodGet, "/api/locations/search/"+url.PathEscape(query), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type LocationTrees struct {
	Location struct {
		District string         `json:"district"`
		City     string         `json:"city"`
		State    string         `json:"state"`
		Climate  models.Climate `json:"climate"`
	} `json:"location"`
	Trees []models.Tree `json:"trees"`
}

func (c *Client) LocationTrees(ctx context.Context, locationID string) (*LocationTrees, error) {
	var out LocationTrees
	if err := c.do(ctx, http.MethodGet, "/api/locations/"+url.PathEscape(locationID)+"/trees", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type NearbyTrees struct {
	Coordinates models.Coordinates   `json:"coordinates"`
	RadiusKm    float64              `json:"radius"`
	TreesFound  int                  `json:"treesFound"`
	Trees       []models.LocatedTree `json:"trees"`
}

// NearbyTrees looks up trees around a point. radius is in meters; zero
// leaves the choice to the server.
func (c *Client) NearbyTrees(ctx context.Context, at models.Coordinates, radius float64) (*NearbyTrees, error) {
	body := dto.NearbyTreesDTO{Latitude: &at.Latitude, Longitude: &at.Longitude, Radius: radius}
	var out NearbyTrees
	if err := c.do(ctx, http.MethodPost, "/api/locations/nearby-trees", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DiseasesByTree(ctx context.Context, treeID string) ([]models.DiseaseView, error) {
	var out []models.DiseaseView
	if err := c.do(ctx, http.MethodGet, "/api/diseases?tree="+url.QueryEscape(treeID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type Cart struct {
	UserID   string            `json:"userId"`
	Products []models.CartItem `json:"products"`
	Total    float64           `json:"total"`
}

func (c *Client) AddToCart(ctx context.Context, owner string, item models.CartItem) (*Cart, error) {
	body := dto.AddToCartDTO{
		UserID:    owner,
		ProductID: item.ProductID.Hex(),
		Name:      item.Name,
		Price:     item.Price,
		Image:     item.Image,
	}
	var out struct {
		Cart Cart `json:"cart"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/cart/add", body, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) Cart(ctx context.Context, owner string) (*Cart, error) {
	var out Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart/"+url.PathEscape(owner), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearCart(ctx context.Context, owner string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(owner), nil, nil)
}

func (c *Client) ApplyCoupon(ctx context.Context, subtotal float64, code string) (*pricing.Quote, error) {
	var out pricing.Quote
	if err := c.do(ctx, http.MethodPost, "/api/coupons/apply", dto.ApplyCouponDTO{Subtotal: subtotal, Code: code}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Checkout(ctx context.Context, in dto.CheckoutDTO) (*models.Order, error) {
	var out struct {
		Order models.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders/checkout", in, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/myorders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
