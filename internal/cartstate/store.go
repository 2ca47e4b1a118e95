package cartstate

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/model"
)

// Syncer mirrors cart mutations to the remote API for authenticated
// sessions.
type Syncer interface {
	Fetch(ctx context.Context) ([]Line, error)
	AddOrUpdate(ctx context.Context, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, productID uuid.UUID) error
	Clear(ctx context.Context) error
}

// Storage persists a guest cart between sessions, standing in for browser
// local storage.
type Storage interface {
	Load() ([]Line, error)
	Save(items []Line) error
}

// Store holds cart state and owns the effect boundary. The in-memory state
// updates unconditionally on every mutation; the remote mirror is best
// effort and errors are logged, never rolled back.
type Store struct {
	mu      sync.Mutex
	state   State
	syncer  Syncer
	storage Storage
	authed  bool
}

// NewStore builds a Store and hydrates guest state from storage.
func NewStore(syncer Syncer, storage Storage) *Store {
	s := &Store{
		state:   NewState(nil),
		syncer:  syncer,
		storage: storage,
	}
	if storage != nil {
		if items, err := storage.Load(); err != nil {
			log.Printf("cart: load saved cart: %v", err)
		} else if items != nil {
			s.state = NewState(items)
		}
	}
	return s
}

// State returns the current cart state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Login switches to the authenticated session: the server-side cart replaces
// any local-only cart, with no merge.
func (s *Store) Login(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authed = true

	var items []Line
	if s.syncer != nil {
		var err error
		if items, err = s.syncer.Fetch(ctx); err != nil {
			log.Printf("cart: load server cart: %v", err)
			items = nil
		}
	}
	s.state = NewState(items)
}

// Logout switches back to a guest session backed by local storage.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authed = false

	var items []Line
	if s.storage != nil {
		var err error
		if items, err = s.storage.Load(); err != nil {
			log.Printf("cart: load saved cart: %v", err)
			items = nil
		}
	}
	s.state = NewState(items)
}

// AddToCart increments the quantity for the product (inserting if absent)
// and mirrors the resulting quantity.
func (s *Store) AddToCart(ctx context.Context, product *model.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, AddToCart{Product: product, Quantity: quantity})

	if product == nil {
		return
	}
	s.mirror(func() error {
		// send the post-reduction quantity so the server overwrite lands
		// on the summed value
		return s.syncer.AddOrUpdate(ctx, product.ID, s.quantityOf(product.ID))
	})
}

// UpdateQuantity overwrites the line's quantity; <= 0 removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, UpdateQuantity{ProductID: productID, Quantity: quantity})

	s.mirror(func() error {
		return s.syncer.AddOrUpdate(ctx, productID, quantity)
	})
}

// RemoveFromCart drops the line for the product.
func (s *Store) RemoveFromCart(ctx context.Context, productID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, RemoveFromCart{ProductID: productID})

	s.mirror(func() error {
		return s.syncer.Remove(ctx, productID)
	})
}

// ClearCart drops every line.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, ClearCart{})

	s.mirror(func() error {
		return s.syncer.Clear(ctx)
	})
}

// mirror runs the remote sync for authenticated sessions or saves the whole
// line list for guests. Failures are logged and dropped.
func (s *Store) mirror(remote func() error) {
	if s.authed {
		if s.syncer == nil {
			return
		}
		if err := remote(); err != nil {
			log.Printf("cart: sync: %v", err)
		}
		return
	}
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(s.state.Items); err != nil {
		log.Printf("cart: save cart: %v", err)
	}
}

func (s *Store) quantityOf(productID uuid.UUID) int {
	for _, line := range s.state.Items {
		if lineProductID(line) == productID {
			return line.Quantity
		}
	}
	return 0
}
