// Package store holds the persistence layer for the catalog, carts, orders
// and users. Handlers only see the interfaces below; the MongoDB
// implementation backs production and the in-memory one backs tests and
// database-less local runs.
package store

import (
	"context"
	"errors"

	"github.com/treenow/treenowbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrDuplicate       = errors.New("duplicate key")
	ErrVersionConflict = errors.New("version conflict")
)

// Document is satisfied by pointers to the catalog models.
type Document[T any] interface {
	*T
	GetID() bson.ObjectID
	SetID(bson.ObjectID)
}

// Catalog is the generic CRUD surface shared by every catalog collection.
type Catalog[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id bson.ObjectID) (*T, error)
	// GetMany returns the documents in the order of ids, skipping ids that
	// do not resolve.
	GetMany(ctx context.Context, ids []bson.ObjectID) ([]T, error)
	Create(ctx context.Context, item *T) error
	Replace(ctx context.Context, item *T) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// EnsureAdmin inserts u as an admin unless a user with its email exists.
	EnsureAdmin(ctx context.Context, u *models.User) (bool, error)
}

type LocationStore interface {
	Catalog[models.Location]
	// Search matches query as a case-insensitive substring of district,
	// city or state.
	Search(ctx context.Context, query string) ([]models.Location, error)
	// Near returns locations within radius meters of c, nearest first.
	Near(ctx context.Context, c models.Coordinates, radius float64) ([]models.Location, error)
}

type LinkStore interface {
	// Replace sets the full, ordered target list of an owner.
	Replace(ctx context.Context, kind models.LinkKind, ownerID bson.ObjectID, targets []bson.ObjectID) error
	Targets(ctx context.Context, kind models.LinkKind, ownerID bson.ObjectID) ([]bson.ObjectID, error)
	Owners(ctx context.Context, kind models.LinkKind, targetID bson.ObjectID) ([]bson.ObjectID, error)
	DeleteOwner(ctx context.Context, kind models.LinkKind, ownerID bson.ObjectID) error
	DeleteTarget(ctx context.Context, kind models.LinkKind, targetID bson.ObjectID) error
}

// CartStore mutates carts with single atomic updates so concurrent adds
// never lose an increment.
type CartStore interface {
	// Get returns an empty cart when the owner has none.
	Get(ctx context.Context, owner string) (*models.Cart, error)
	// AddItem increments the line for item.ProductID or appends it with
	// quantity 1.
	AddItem(ctx context.Context, owner string, item models.CartItem) (*models.Cart, error)
	SetQuantity(ctx context.Context, owner string, productID bson.ObjectID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, owner string, productID bson.ObjectID) (*models.Cart, error)
	Clear(ctx context.Context, owner string) error
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id bson.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	// Update applies upd and bumps the version. With ExpectedVersion set it
	// fails with ErrVersionConflict when the stored version differs.
	Update(ctx context.Context, id bson.ObjectID, upd models.OrderUpdate) (*models.Order, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

type Store struct {
	Users     UserStore
	Trees     Catalog[models.Tree]
	Bonsai    Catalog[models.Bonsai]
	Products  Catalog[models.Product]
	Diseases  Catalog[models.Disease]
	Blogs     Catalog[models.Blog]
	Locations LocationStore
	Links     LinkStore
	Carts     CartStore
	Orders    OrderStore
}

// Collection names shared by the Mongo implementation and index bootstrap.
const (
	UsersCollection     = "users"
	TreesCollection     = "trees"
	BonsaiCollection    = "bonsais"
	ProductsCollection  = "products"
	DiseasesCollection  = "diseases"
	BlogsCollection     = "blogs"
	LocationsCollection = "locations"
	LinksCollection     = "links"
	CartsCollection     = "carts"
	OrdersCollection    = "orders"
)
