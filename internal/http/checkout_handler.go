package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/checkout"
	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/service"
	"github.com/fjod/go_storefront/internal/session"
)

type CheckoutService interface {
	ProceedToCheckout(ctx context.Context, id string) (*session.Session, error)
	UpdateContactField(ctx context.Context, id, field, value string) (*session.Session, error)
	SubmitContact(ctx context.Context, id string, form d.ContactPatch) (*session.Session, *service.WidgetLaunch, error)
	ConfirmPayment(ctx context.Context, id string, result checkout.PaymentResult) (*session.Session, error)
	FailPayment(ctx context.Context, id string, failure checkout.PaymentFailure) (*session.Session, error)
	RetryCheckout(ctx context.Context, id string) (*session.Session, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(checkout CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

func (h *CheckoutHandler) Proceed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess, err := h.checkout.ProceedToCheckout(ctx, getSessionID(r.Context()))
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSessionResponse(sess))
}

// UpdateContactField stores one edited form field and clears its error.
func (h *CheckoutHandler) UpdateContactField(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ContactFieldRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess, err := h.checkout.UpdateContactField(ctx, getSessionID(r.Context()), req.Field, req.Value)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSessionResponse(sess))
}

// SubmitContact validates the form, keeping stored values for fields the body
// leaves out, and returns what the client needs to open
// the payment widget. When the widget could not be prepared the session is in
// error and no widget is returned.
func (h *CheckoutHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req d.ContactPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess, launch, err := h.checkout.SubmitContact(ctx, getSessionID(r.Context()), req)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, &ContactSubmitResponse{
		Session: newSessionResponse(sess),
		Widget:  launch,
	})
}

func (h *CheckoutHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req PaymentSuccessDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaymentID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "razorpay_payment_id is required")
		return
	}

	sess, err := h.checkout.ConfirmPayment(ctx, getSessionID(r.Context()), checkout.PaymentResult{
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		Signature: req.Signature,
	})
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSessionResponse(sess))
}

// PaymentFailure accepts an empty body for a widget that failed without details.
func (h *CheckoutHandler) PaymentFailure(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req PaymentFailureDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess, err := h.checkout.FailPayment(ctx, getSessionID(r.Context()), checkout.PaymentFailure{
		Code:        req.Error.Code,
		Description: req.Error.Description,
		Reason:      req.Error.Reason,
		OrderID:     req.Error.Metadata.OrderID,
		PaymentID:   req.Error.Metadata.PaymentID,
	})
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (h *CheckoutHandler) Retry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess, err := h.checkout.RetryCheckout(ctx, getSessionID(r.Context()))
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSessionResponse(sess))
}
