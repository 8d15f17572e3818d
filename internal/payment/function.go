package payment

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	msgMissingFields  = "Missing required fields"
	msgCreateFailed   = "Failed to create order"
	msgInvalidRequest = "Invalid request body"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
}

type CreateOrderRequestDTO struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	PaymentID string `json:"payment_id"`
}

type functionError struct {
	Error string `json:"error"`
}

// OrderFunction is the order-creation endpoint: it creates a provider order and
// stamps the matching payments row.
type OrderFunction struct {
	orders   OrderCreator
	payments PaymentUpdater
	timeout  time.Duration
	now      func() time.Time
}

// NewOrderFunction accepts a nil orders when no credentials are configured;
// every request is then answered with a credentials error.
func NewOrderFunction(orders OrderCreator, payments PaymentUpdater, timeout time.Duration) *OrderFunction {
	return &OrderFunction{
		orders:   orders,
		payments: payments,
		timeout:  timeout,
		now:      time.Now,
	}
}

func (f *OrderFunction) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(corsMiddleware)

	r.Options("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/", f.CreateOrder)
	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range corsHeaders {
			w.Header().Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}

// POST /
func (f *OrderFunction) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), f.timeout)
	defer cancel()

	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFunctionError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	if req.Amount <= 0 || req.Currency == "" || req.Receipt == "" || req.PaymentID == "" {
		writeFunctionError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	if f.orders == nil {
		log.Printf("Error creating order: %v", ErrCredentialsMissing)
		writeFunctionError(w, http.StatusInternalServerError, ErrCredentialsMissing.Error())
		return
	}

	order, err := f.orders.CreateOrder(ctx, OrderRequest{
		Amount:         req.Amount,
		Currency:       req.Currency,
		Receipt:        req.Receipt,
		PaymentCapture: true,
	})
	if err != nil {
		log.Printf("Error creating order: %v", err)
		msg := err.Error()
		if msg == "" {
			msg = msgCreateFailed
		}
		writeFunctionError(w, http.StatusInternalServerError, msg)
		return
	}

	// the order exists at the provider, a failed stamp does not fail the call
	if f.payments != nil {
		if err := f.payments.AttachOrder(ctx, req.PaymentID, order.ID, f.now()); err != nil {
			log.Printf("Error updating payment record %s: %v", req.PaymentID, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if len(order.Raw) > 0 {
		_, _ = w.Write(order.Raw)
		return
	}
	if err := json.NewEncoder(w).Encode(order); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeFunctionError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(functionError{Error: message}); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
