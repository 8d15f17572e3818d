package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"

	d "github.com/fjod/go_storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Store holds the product list fetched once from the repository. A failed
// fetch is never retried on its own; Reload is the manual retry.
type Store struct {
	repo RepoInterface

	mu       sync.RWMutex
	state    State
	products []d.Product
	byID     map[int64]int
	lastErr  error

	group singleflight.Group
}

func NewStore(repo RepoInterface) *Store {
	return &Store{repo: repo, state: StateLoading}
}

// Load fetches all products. Concurrent calls share one query.
func (s *Store) Load(ctx context.Context) error {
	_, err, _ := s.group.Do("load", func() (interface{}, error) {
		s.mu.Lock()
		s.state = StateLoading
		s.mu.Unlock()

		products, err := s.repo.GetAllProducts(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			log.Printf("catalog load failed: %v", err)
			s.state = StateFailed
			s.lastErr = err
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}

		s.products = products
		s.byID = make(map[int64]int, len(products))
		for i, p := range products {
			s.byID[p.ID] = i
		}
		s.state = StateReady
		s.lastErr = nil
		log.Printf("catalog loaded: %d products", len(products))
		return nil, nil
	})
	return err
}

// Reload is the manual retry after a failed load.
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) ready() error {
	switch s.state {
	case StateReady:
		return nil
	case StateFailed:
		return ErrCatalogUnavailable
	default:
		return ErrCatalogLoading
	}
}

// Products returns a copy of the catalog in price order.
func (s *Store) Products() ([]d.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	out := make([]d.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *Store) Product(id int64) (d.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.ready(); err != nil {
		return d.Product{}, err
	}
	i, ok := s.byID[id]
	if !ok {
		return d.Product{}, ErrProductNotFound
	}
	return s.products[i], nil
}
