// Package shop holds the per-user shopping state container: cart and
// selection, favorites, checkout draft, order history, and the session
// bootstrap that keeps them synchronized with the remote store gateway.
package shop

import (
	"context"
	"sync"

	"tokokita/internal/domain"
)

// Narrow gateway contracts, declared here where they are consumed. The
// sqlite repos satisfy them; tests swap in in-memory fakes.

type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	Insert(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
}

type CartStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
	Upsert(ctx context.Context, userID string, line domain.CartLine) error
	SetQuantity(ctx context.Context, userID, productID string, qty int) error
	Delete(ctx context.Context, userID, productID string) error
}

type FavoriteStore interface {
	ListProductIDs(ctx context.Context, userID string) ([]string, error)
	Insert(ctx context.Context, userID, productID string) error
	Delete(ctx context.Context, userID, productID string) error
}

type OrderStore interface {
	Place(ctx context.Context, userID string, o domain.Order, clearProductIDs []string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type ProfileStore interface {
	Get(ctx context.Context, userID string) (domain.Profile, error)
	Upsert(ctx context.Context, userID, fullName, address string) error
}

type AuthStore interface {
	SignIn(ctx context.Context, email, password, sid string) (*domain.User, error)
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context, sid string) error
	SessionUser(ctx context.Context, sid string) (*domain.User, error)
}

type BlobStore interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Gateway bundles the remote store surfaces the container talks to.
type Gateway struct {
	Products  ProductStore
	Cart      CartStore
	Favorites FavoriteStore
	Orders    OrderStore
	Profiles  ProfileStore
	Auth      AuthStore
	Blobs     BlobStore
}

// Store is the state container for one signed-in session. All state
// lives behind one mutex; the HTTP layer is concurrent, so the mutex
// stands in for the original single consumer thread. Remote writes for
// cart lines and favorites are applied locally first and pushed through
// the per-key write queue; on remote failure the queue applies the
// compensating patch instead of leaving state diverged.
type Store struct {
	gw  Gateway
	sid string

	mu        sync.Mutex
	user      *domain.User
	profile   *domain.Profile
	isAdmin   bool
	catalog   []domain.Product
	cart      []domain.CartLine
	selected  map[string]struct{}
	favorites []domain.Product
	orders    []domain.Order
	draft     checkoutDraft

	writer *writer
}

func New(gw Gateway, sid string) *Store {
	s := &Store{
		gw:       gw,
		sid:      sid,
		selected: make(map[string]struct{}),
	}
	s.writer = newWriter()
	return s
}

// SID returns the session id this container is bound to.
func (s *Store) SID() string { return s.sid }

func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Profile() *domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAdmin
}

// Flush waits for every queued remote write to settle. Used by checkout,
// shutdown, and tests.
func (s *Store) Flush() { s.writer.Flush() }

// userID returns the signed-in user id; callers must hold s.mu.
func (s *Store) userID() (string, error) {
	if s.user == nil {
		return "", &ValidationError{Field: "session", Reason: "sign in required"}
	}
	return s.user.ID, nil
}
