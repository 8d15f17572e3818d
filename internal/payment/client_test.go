package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fjod/go_storefront/internal/checkout"
	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderJSON = `{"id":"order_9A33XWu170gUtm","entity":"order","amount":119700,"amount_paid":0,"currency":"INR","receipt":"rcpt-1","status":"created","created_at":1767225600}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "rzp_test_key", "secret", time.Second)
	require.NoError(t, err)
	return c
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := NewClient("", "", "secret", time.Second)
	assert.ErrorIs(t, err, ErrCredentialsMissing)

	_, err = NewClient("", "key", "", time.Second)
	assert.ErrorIs(t, err, ErrCredentialsMissing)
}

func TestCreateOrder_Success(t *testing.T) {
	var got OrderRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(orderJSON))
	})

	order, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 119700, Currency: "INR", Receipt: "rcpt-1", PaymentCapture: true})

	require.NoError(t, err)
	assert.Equal(t, OrderRequest{Amount: 119700, Currency: "INR", Receipt: "rcpt-1", PaymentCapture: true}, got)
	assert.Equal(t, "order_9A33XWu170gUtm", order.ID)
	assert.Equal(t, int64(119700), order.Amount)
	assert.JSONEq(t, orderJSON, string(order.Raw))
	assert.Equal(t, "rzp_test_key", c.KeyID())
}

func TestCreateOrder_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Order amount less than minimum amount allowed"}}`))
	})

	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 1, Currency: "INR", Receipt: "r"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "BAD_REQUEST_ERROR", apiErr.Code)
	assert.EqualError(t, err, "Razorpay API error: Order amount less than minimum amount allowed")
}

func TestCreateOrder_APIErrorWithoutDescription(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR", Receipt: "r"})

	assert.EqualError(t, err, "Razorpay API error: Unknown error")
}

func TestCreateOrder_BreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	for i := 0; i < 5; i++ {
		_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR", Receipt: "r"})
		require.Error(t, err)
	}

	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR", Receipt: "r"})

	assert.ErrorIs(t, err, ErrProviderDown)
	assert.Equal(t, int32(5), calls.Load())
}

func TestCreateOrder_ClientErrorsDoNotOpenBreaker(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	for i := 0; i < 7; i++ {
		_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR", Receipt: "r"})
		assert.NotErrorIs(t, err, ErrProviderDown)
	}
	assert.Equal(t, int32(7), calls.Load())
}

type fakeCreator struct {
	got   OrderRequest
	order *Order
	err   error
}

func (f *fakeCreator) CreateOrder(_ context.Context, req OrderRequest) (*Order, error) {
	f.got = req
	return f.order, f.err
}

func TestWidgetGateway_Open(t *testing.T) {
	creator := &fakeCreator{order: &Order{ID: "order_1"}}
	g := NewWidgetGateway(creator, "rzp_live_key")

	h, err := g.Open(context.Background(), checkout.OrderDescriptor{Amount: 119700, Currency: d.CurrencyINR, Receipt: "rcpt-7"})

	require.NoError(t, err)
	assert.Equal(t, &checkout.Handle{Key: "rzp_live_key", OrderID: "order_1"}, h)
	assert.Equal(t, OrderRequest{Amount: 119700, Currency: "INR", Receipt: "rcpt-7", PaymentCapture: true}, creator.got)
}

func TestWidgetGateway_OpenError(t *testing.T) {
	g := NewWidgetGateway(&fakeCreator{err: &APIError{StatusCode: 400}}, "k")

	_, err := g.Open(context.Background(), checkout.OrderDescriptor{Amount: 1})

	assert.ErrorContains(t, err, "Razorpay API error: Unknown error")
}

func TestSandboxGateway_Open(t *testing.T) {
	h, err := SandboxGateway{}.Open(context.Background(), checkout.OrderDescriptor{Amount: 100})

	require.NoError(t, err)
	assert.Equal(t, SandboxKey, h.Key)
	assert.Contains(t, h.OrderID, "order_sandbox_")

	_, err = SandboxGateway{}.Open(context.Background(), checkout.OrderDescriptor{})
	assert.Error(t, err)
}
