package cart

import (
	"sync"

	"github.com/MarceliJankowski/pizza-project/internal/shared/apperr"
)

// Store holds the live carts, one per browser session. Carts only exist
// for the process lifetime; cross-session persistence is out of scope.
//
// Cart and its lines are single-threaded by contract, so the store
// serializes all access per cart: handlers reach a cart only through
// With/Create, never by holding a *Cart across requests.
type Store struct {
	cfg Config

	mu    sync.Mutex
	carts map[string]*cartEntry
}

type cartEntry struct {
	mu   sync.Mutex
	cart *Cart
}

func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg, carts: make(map[string]*cartEntry)}
}

// Create makes a fresh cart and returns its id.
func (s *Store) Create() string {
	c := New(s.cfg)

	s.mu.Lock()
	s.carts[c.ID()] = &cartEntry{cart: c}
	s.mu.Unlock()
	return c.ID()
}

// With runs fn with exclusive access to the cart. Everything fn does,
// including widget notifications and total recomputation, completes
// before With returns.
func (s *Store) With(id string, fn func(*Cart) error) error {
	s.mu.Lock()
	e, ok := s.carts[id]
	s.mu.Unlock()
	if !ok {
		return apperr.NotFoundErr("cart not found")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.cart)
}

// Has reports whether a cart id is live.
func (s *Store) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.carts[id]
	return ok
}

// Drop forgets a cart (after successful order submission).
func (s *Store) Drop(id string) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}
