package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/go_storefront/internal/session"
	"github.com/go-chi/chi/v5"
)

type CartService interface {
	GetSession(ctx context.Context, id string) (*session.Session, error)
	EndSession(ctx context.Context, id string) error
	AddToCart(ctx context.Context, id string, productID int64) (*session.Session, error)
	RemoveFromCart(ctx context.Context, id string, productID int64) (*session.Session, error)
	UpdateQuantity(ctx context.Context, id string, productID int64, quantity int) (*session.Session, error)
	SetCurrency(ctx context.Context, id, currency string) (*session.Session, error)
	OpenPanel(ctx context.Context, id string) (*session.Session, error)
	ClosePanel(ctx context.Context, id string) (*session.Session, error)
}

type CartHandler struct {
	cart    CartService
	timeout time.Duration
}

func NewCartHandler(cart CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		timeout: timeout,
	}
}

func (h *CartHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess, err := h.cart.GetSession(ctx, getSessionID(r.Context()))
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSessionResponse(sess))
}

// EndSession forgets the visitor's cart and checkout and expires the cookie.
func (h *CartHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.cart.EndSession(ctx, getSessionID(r.Context())); err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CurrencyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess, err := h.cart.SetCurrency(ctx, getSessionID(r.Context()), req.Currency)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess, err := h.cart.GetSession(ctx, getSessionID(r.Context()))
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newCartResponse(sess))
}

func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, h.cart.OpenPanel)
}

func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, h.cart.ClosePanel)
}

func (h *CartHandler) panel(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (*session.Session, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess, err := fn(ctx, getSessionID(r.Context()))
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	// Parse request body
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	sess, err := h.cart.AddToCart(ctx, getSessionID(r.Context()), req.ProductID)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newCartResponse(sess))
}

// UpdateQuantity leaves the line unchanged for quantities below 1.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess, err := h.cart.UpdateQuantity(ctx, getSessionID(r.Context()), productID, req.Quantity)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newCartResponse(sess))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	sess, err := h.cart.RemoveFromCart(ctx, getSessionID(r.Context()), productID)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newCartResponse(sess))
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}
