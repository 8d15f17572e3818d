package http

import (
	"context"
	"sync"

	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	d "github.com/fjod/go_storefront/internal/domain"
)

// MockCatalog implements CatalogService for testing
type MockCatalog struct {
	mu        sync.Mutex
	Items     []d.Product
	Err       error
	ReloadErr error
	Reloads   int
}

func (m *MockCatalog) Products() ([]d.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]d.Product, len(m.Items))
	copy(out, m.Items)
	return out, nil
}

func (m *MockCatalog) Product(id int64) (d.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return d.Product{}, m.Err
	}
	for _, p := range m.Items {
		if p.ID == id {
			return p, nil
		}
	}
	return d.Product{}, catalog.ErrProductNotFound
}

func (m *MockCatalog) Reload(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reloads++
	if m.ReloadErr != nil {
		return m.ReloadErr
	}
	m.Err = nil
	return nil
}

// MockGateway implements checkout.Gateway for testing
type MockGateway struct {
	Handle *checkout.Handle
	Err    error
	Opened []checkout.OrderDescriptor
}

func (m *MockGateway) Open(_ context.Context, desc checkout.OrderDescriptor) (*checkout.Handle, error) {
	m.Opened = append(m.Opened, desc)
	return m.Handle, m.Err
}

// MockRecorder implements recorder.Recorder for testing
type MockRecorder struct {
	mu      sync.Mutex
	Records []d.OrderRecord
}

func (m *MockRecorder) Record(_ context.Context, order *d.OrderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, *order)
	return nil
}

func (m *MockRecorder) recorded() []d.OrderRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]d.OrderRecord(nil), m.Records...)
}
