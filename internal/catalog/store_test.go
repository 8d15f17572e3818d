package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mu       sync.Mutex
	products []d.Product
	err      error
	delay    time.Duration
	calls    atomic.Int32
}

func (m *mockRepo) GetAllProducts(ctx context.Context) ([]d.Product, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products, m.err
}

func (m *mockRepo) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func TestStore_LoadingBeforeFirstFetch(t *testing.T) {
	store := NewStore(&mockRepo{})

	assert.Equal(t, StateLoading, store.State())
	_, err := store.Products()
	assert.ErrorIs(t, err, ErrCatalogLoading)
}

func TestStore_Load(t *testing.T) {
	repo := &mockRepo{products: sampleProducts()}
	store := NewStore(repo)

	require.NoError(t, store.Load(context.Background()))

	assert.Equal(t, StateReady, store.State())
	products, err := store.Products()
	require.NoError(t, err)
	assert.Len(t, products, 6)

	p, err := store.Product(4)
	require.NoError(t, err)
	assert.Equal(t, "Xbox Game Pass", p.Name)

	_, err = store.Product(99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestStore_ProductsReturnsCopy(t *testing.T) {
	store := NewStore(&mockRepo{products: sampleProducts()})
	require.NoError(t, store.Load(context.Background()))

	products, _ := store.Products()
	products[0].Name = "changed"

	again, _ := store.Products()
	assert.Equal(t, "Spotify Premium", again[0].Name)
}

func TestStore_FailureThenManualReload(t *testing.T) {
	repo := &mockRepo{products: sampleProducts(), err: errors.New("connection refused")}
	store := NewStore(repo)

	err := store.Load(context.Background())

	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Equal(t, StateFailed, store.State())
	assert.EqualError(t, store.LastError(), "connection refused")
	_, err = store.Products()
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Equal(t, int32(1), repo.calls.Load(), "failed load is not retried on its own")

	repo.setErr(nil)
	require.NoError(t, store.Reload(context.Background()))

	assert.Equal(t, StateReady, store.State())
	assert.NoError(t, store.LastError())
}

func TestStore_ConcurrentLoadsShareQuery(t *testing.T) {
	repo := &mockRepo{products: sampleProducts(), delay: 50 * time.Millisecond}
	store := NewStore(repo)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Load(context.Background()))
		}()
	}
	wg.Wait()

	assert.Less(t, repo.calls.Load(), int32(10))
	assert.Equal(t, StateReady, store.State())
}
