package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/treenow/treenowbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// NewMemory returns a Store kept entirely in process memory. Every
// collection guards its state with its own mutex, so each operation is
// atomic the same way a single-document Mongo update is.
func NewMemory() *Store {
	return &Store{
		Users:     newMemUsers(),
		Trees:     newMemCatalog[models.Tree](),
		Bonsai:    newMemCatalog[models.Bonsai](),
		Products:  newMemCatalog[models.Product](),
		Diseases:  newMemCatalog[models.Disease](),
		Blogs:     newMemCatalog[models.Blog](),
		Locations: &memLocations{memCatalog: newMemCatalog[models.Location]()},
		Links:     &memLinks{},
		Carts:     &memCarts{carts: map[string]*models.Cart{}},
		Orders:    &memOrders{},
	}
}

type memCatalog[T any, PT Document[T]] struct {
	mu    sync.RWMutex
	items map[bson.ObjectID]T
	order []bson.ObjectID
}

func newMemCatalog[T any, PT Document[T]]() *memCatalog[T, PT] {
	return &memCatalog[T, PT]{items: map[bson.ObjectID]T{}}
}

func (s *memCatalog[T, PT]) List(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out, nil
}

func (s *memCatalog[T, PT]) Get(ctx context.Context, id bson.ObjectID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *memCatalog[T, PT]) GetMany(ctx context.Context, ids []bson.ObjectID) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *memCatalog[T, PT]) Create(ctx context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := bson.NewObjectID()
	PT(item).SetID(id)
	s.items[id] = *item
	s.order = append(s.order, id)
	return nil
}

func (s *memCatalog[T, PT]) Replace(ctx context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := PT(item).GetID()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	s.items[id] = *item
	return nil
}

func (s *memCatalog[T, PT]) Delete(ctx context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type memLocations struct {
	*memCatalog[models.Location, *models.Location]
}

func (s *memLocations) Create(ctx context.Context, l *models.Location) error {
	l.SyncGeo()
	return s.memCatalog.Create(ctx, l)
}

func (s *memLocations) Replace(ctx context.Context, l *models.Location) error {
	l.SyncGeo()
	return s.memCatalog.Replace(ctx, l)
}

func (s *memLocations) Search(ctx context.Context, query string) ([]models.Location, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := make([]models.Location, 0)
	for _, l := range all {
		if strings.Contains(strings.ToLower(l.District), q) ||
			strings.Contains(strings.ToLower(l.City), q) ||
			strings.Contains(strings.ToLower(l.State), q) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *memLocations) Near(ctx context.Context, c models.Coordinates, radius float64) ([]models.Location, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	type hit struct {
		loc  models.Location
		dist float64
	}
	hits := make([]hit, 0)
	for _, l := range all {
		if l.Coordinates == nil {
			continue
		}
		if d := DistanceMeters(c, *l.Coordinates); d <= radius {
			hits = append(hits, hit{loc: l, dist: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	out := make([]models.Location, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.loc)
	}
	return out, nil
}

type memUsers struct {
	mu      sync.RWMutex
	byID    map[bson.ObjectID]models.User
	byEmail map[string]bson.ObjectID
	order   []bson.ObjectID
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[bson.ObjectID]models.User{}, byEmail: map[string]bson.ObjectID{}}
}

func (s *memUsers) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(u)
}

func (s *memUsers) insertLocked(u *models.User) error {
	if _, exists := s.byEmail[u.Email]; exists {
		return ErrDuplicate
	}
	now := time.Now().UTC()
	u.ID = bson.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.byID[u.ID] = *u
	s.byEmail[u.Email] = u.ID
	s.order = append(s.order, u.ID)
	return nil
}

func (s *memUsers) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.byID[id]
	return &u, nil
}

func (s *memUsers) List(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *memUsers) EnsureAdmin(ctx context.Context, u *models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return false, nil
	}
	u.IsAdmin = true
	if err := s.insertLocked(u); err != nil {
		return false, err
	}
	return true, nil
}

type memLinks struct {
	mu    sync.RWMutex
	links []models.Link
}

func (s *memLinks) Replace(ctx context.Context, kind models.LinkKind, ownerID bson.ObjectID, targets []bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(func(l models.Link) bool { return l.Kind == kind && l.OwnerID == ownerID })
	for i, t := range dedupeIDs(targets) {
		s.links = append(s.links, models.Link{
			ID:       bson.NewObjectID(),
			Kind:     kind,
			OwnerID:  ownerID,
			TargetID: t,
			Position: i,
		})
	}
	return nil
}

func (s *memLinks) Targets(ctx context.Context, kind models.LinkKind, ownerID bson.ObjectID) ([]bson.ObjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Link, 0)
	for _, l := range s.links {
		if l.Kind == kind && l.OwnerID == ownerID {
			matched = append(matched, l)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Position < matched[j].Position })

	ids := make([]bson.ObjectID, 0, len(matched))
	for _, l := range matched {
		ids = append(ids, l.TargetID)
	}
	return ids, nil
}

func (s *memLinks) Owners(ctx context.Context, kind models.LinkKind, targetID bson.ObjectID) ([]bson.ObjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]bson.ObjectID, 0)
	for _, l := range s.links {
		if l.Kind == kind && l.TargetID == targetID {
			ids = append(ids, l.OwnerID)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })
	return ids, nil
}

func (s *memLinks) DeleteOwner(ctx context.Context, kind models.LinkKind, ownerID bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(func(l models.Link) bool { return l.Kind == kind && l.OwnerID == ownerID })
	return nil
}

func (s *memLinks) DeleteTarget(ctx context.Context, kind models.LinkKind, targetID bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(func(l models.Link) bool { return l.Kind == kind && l.TargetID == targetID })
	return nil
}

func (s *memLinks) removeLocked(match func(models.Link) bool) {
	kept := s.links[:0]
	for _, l := range s.links {
		if !match(l) {
			kept = append(kept, l)
		}
	}
	s.links = kept
}

type memCarts struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

func (s *memCarts) Get(ctx context.Context, owner string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart, ok := s.carts[owner]; ok {
		return cloneCart(cart), nil
	}
	return &models.Cart{UserID: owner, Products: []models.CartItem{}}, nil
}

func (s *memCarts) AddItem(ctx context.Context, owner string, item models.CartItem) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[owner]
	if !ok {
		cart = &models.Cart{ID: bson.NewObjectID(), UserID: owner, Products: []models.CartItem{}}
		s.carts[owner] = cart
	}
	cart.UpdatedAt = time.Now().UTC()
	for i := range cart.Products {
		if cart.Products[i].ProductID == item.ProductID {
			cart.Products[i].Quantity++
			return cloneCart(cart), nil
		}
	}
	item.Quantity = 1
	cart.Products = append(cart.Products, item)
	return cloneCart(cart), nil
}

func (s *memCarts) SetQuantity(ctx context.Context, owner string, productID bson.ObjectID, quantity int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[owner]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range cart.Products {
		if cart.Products[i].ProductID == productID {
			cart.Products[i].Quantity = quantity
			cart.UpdatedAt = time.Now().UTC()
			return cloneCart(cart), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memCarts) RemoveItem(ctx context.Context, owner string, productID bson.ObjectID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[owner]
	if !ok {
		return &models.Cart{UserID: owner, Products: []models.CartItem{}}, nil
	}
	kept := make([]models.CartItem, 0, len(cart.Products))
	for _, p := range cart.Products {
		if p.ProductID != productID {
			kept = append(kept, p)
		}
	}
	cart.Products = kept
	cart.UpdatedAt = time.Now().UTC()
	return cloneCart(cart), nil
}

func (s *memCarts) Clear(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart, ok := s.carts[owner]; ok {
		cart.Products = []models.CartItem{}
		cart.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func cloneCart(c *models.Cart) *models.Cart {
	out := *c
	out.Products = append([]models.CartItem{}, c.Products...)
	return &out
}

type memOrders struct {
	mu     sync.RWMutex
	orders []models.Order
}

func (s *memOrders) Create(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	o.ID = bson.NewObjectID()
	o.Version = 1
	o.CreatedAt = now
	o.UpdatedAt = now
	s.orders = append(s.orders, cloneOrder(*o))
	return nil
}

func (s *memOrders) Get(ctx context.Context, id bson.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			out := cloneOrder(o)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memOrders) ListByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error) {
	return s.filter(func(o models.Order) bool { return o.User == userID }), nil
}

func (s *memOrders) List(ctx context.Context) ([]models.Order, error) {
	return s.filter(func(models.Order) bool { return true }), nil
}

// filter returns matches newest first, like the Mongo sort.
func (s *memOrders) filter(match func(models.Order) bool) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0)
	for i := len(s.orders) - 1; i >= 0; i-- {
		if match(s.orders[i]) {
			out = append(out, cloneOrder(s.orders[i]))
		}
	}
	return out
}

func (s *memOrders) Update(ctx context.Context, id bson.ObjectID, upd models.OrderUpdate) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		o := &s.orders[i]
		if o.ID != id {
			continue
		}
		if upd.ExpectedVersion != nil && *upd.ExpectedVersion != o.Version {
			return nil, ErrVersionConflict
		}
		if upd.Status != nil {
			o.Status = *upd.Status
		}
		if upd.Action != nil {
			o.Action = *upd.Action
		}
		o.Version++
		o.UpdatedAt = time.Now().UTC()
		out := cloneOrder(*o)
		return &out, nil
	}
	return nil, ErrNotFound
}

func (s *memOrders) Delete(ctx context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.CartItem{}, o.Items...)
	return o
}
