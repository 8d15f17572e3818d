package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/pkg/circuitbreaker"
)

const DefaultBaseURL = "https://api.razorpay.com"

type OrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture bool   `json:"payment_capture"`
}

// Order is the provider order. Raw keeps the body exactly as received.
type Order struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`

	Raw json.RawMessage `json:"-"`
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

// Client talks to the Razorpay Orders API.
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
	breaker   *circuitbreaker.Breaker[*Order]
}

func NewClient(baseURL, keyID, keySecret string, timeout time.Duration) (*Client, error) {
	if keyID == "" || keySecret == "" {
		return nil, ErrCredentialsMissing
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cfg := circuitbreaker.DefaultConfig("razorpay-orders")
	cfg.IsSuccessful = func(err error) bool {
		var apiErr *APIError
		return err == nil || (errors.As(err, &apiErr) && apiErr.clientSide())
	}

	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		http:      &http.Client{Timeout: timeout},
		breaker:   circuitbreaker.New[*Order](cfg),
	}, nil
}

func (c *Client) KeyID() string {
	return c.keyID
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	order, err := c.breaker.Execute(func() (*Order, error) {
		return c.createOrder(ctx, req)
	})
	if circuitbreaker.IsOpen(err) {
		return nil, fmt.Errorf("%w: %v", ErrProviderDown, err)
	}
	return order, err
}

func (c *Client) createOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call orders api: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read orders api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp.StatusCode, data)
	}

	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	order.Raw = data
	return &order, nil
}

func decodeAPIError(status int, data []byte) *APIError {
	var body struct {
		Error struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	}
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Code = body.Error.Code
		apiErr.Description = body.Error.Description
	}
	return apiErr
}
