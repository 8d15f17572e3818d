package service

import (
	"context"
	"errors"
	"sync"

	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	d "github.com/fjod/go_storefront/internal/domain"
)

// MockCatalog implements CatalogReader for testing
type MockCatalog struct {
	Items []d.Product
	Err   error
}

func (m *MockCatalog) Products() ([]d.Product, error) {
	return m.Items, m.Err
}

func (m *MockCatalog) Product(id int64) (d.Product, error) {
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
	Err     error
	block   chan struct{}
}

func (m *MockRecorder) Record(ctx context.Context, order *d.OrderRecord) error {
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, *order)
	return m.Err
}

func (m *MockRecorder) recorded() []d.OrderRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]d.OrderRecord(nil), m.Records...)
}

var errWebhookDown = errors.New("webhook down")
