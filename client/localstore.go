package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/pricing"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type localState struct {
	OwnerID string            `json:"ownerId"`
	Token   string            `json:"token,omitempty"`
	Cart    []models.CartItem `json:"cart"`
}

// LocalStore persists the session token and a guest cart in a JSON file.
// The server stays authoritative; nothing here is validated against the
// catalog.
type LocalStore struct {
	mu    sync.Mutex
	path  string
	state localState
}

// OpenLocalStore loads path, starting empty when the file does not exist.
func OpenLocalStore(path string) (*LocalStore, error) {
	s := &LocalStore{path: path}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(raw, &s.state); err != nil {
			return nil, fmt.Errorf("local store %s: %w", path, err)
		}
	}
	if s.state.OwnerID == "" {
		if err := s.update(func(st *localState) { st.OwnerID = uuid.NewString() }); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// OwnerID identifies this device's cart before a user logs in.
func (s *LocalStore) OwnerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.OwnerID
}

func (s *LocalStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *LocalStore) SetToken(token string) error {
	return s.update(func(st *localState) { st.Token = token })
}

func (s *LocalStore) ClearToken() error {
	return s.SetToken("")
}

func (s *LocalStore) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem{}, s.state.Cart...)
}

// AddToCart bumps the quantity of an existing line or appends item with
// quantity 1.
func (s *LocalStore) AddToCart(item models.CartItem) error {
	return s.update(func(st *localState) {
		for i := range st.Cart {
			if st.Cart[i].ProductID == item.ProductID {
				st.Cart[i].Quantity++
				return
			}
		}
		item.Quantity = 1
		st.Cart = append(st.Cart, item)
	})
}

// SetQuantity changes the quantity of a line. Quantities below 1 and
// unknown products leave the cart untouched.
func (s *LocalStore) SetQuantity(productID bson.ObjectID, quantity int) error {
	if quantity < 1 {
		return nil
	}
	return s.update(func(st *localState) {
		for i := range st.Cart {
			if st.Cart[i].ProductID == productID {
				st.Cart[i].Quantity = quantity
				return
			}
		}
	})
}

func (s *LocalStore) RemoveFromCart(productID bson.ObjectID) error {
	return s.update(func(st *localState) {
		kept := make([]models.CartItem, 0, len(st.Cart))
		for _, item := range st.Cart {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		st.Cart = kept
	})
}

func (s *LocalStore) ClearCart() error {
	return s.update(func(st *localState) { st.Cart = nil })
}

func (s *LocalStore) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Subtotal(s.state.Cart)
}

// update applies fn to a copy of the state and keeps it only once the copy
// is on disk.
func (s *LocalStore) update(fn func(*localState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Cart = append([]models.CartItem(nil), s.state.Cart...)
	fn(&next)
	if err := s.write(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// write goes through a temp file so a crash never leaves a torn file.
func (s *LocalStore) write(state localState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".treenow-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
