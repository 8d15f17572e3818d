package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/service"
	"github.com/fjod/go_storefront/pkg/logger"
)

type ErrorResponse struct {
	Error   string        `json:"error"`
	Code    string        `json:"code,omitempty"`
	Details string        `json:"details,omitempty"`
	Fields  d.FieldErrors `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}

// handleServiceError converts storefront errors to HTTP status codes.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "please correct the highlighted fields",
			Code:   "validation_failed",
			Fields: verr.Fields,
		})
		return
	}

	var httpStatus int
	var code string
	message := err.Error()

	switch {
	case errors.Is(err, service.ErrInvalidSessionID):
		httpStatus = http.StatusBadRequest
		code = "invalid_session"
	case errors.Is(err, catalog.ErrProductNotFound):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		httpStatus = http.StatusServiceUnavailable
		code = "catalog_unavailable"
		message = "Failed to load products"
	case errors.Is(err, catalog.ErrCatalogLoading):
		httpStatus = http.StatusServiceUnavailable
		code = "catalog_loading"
	case errors.Is(err, d.ErrUnsupportedCurrency):
		httpStatus = http.StatusBadRequest
		code = "unsupported_currency"
	case errors.Is(err, checkout.ErrUnknownField):
		httpStatus = http.StatusBadRequest
		code = "unknown_field"
	case errors.Is(err, checkout.ErrEmptyCart):
		httpStatus = http.StatusConflict
		code = "empty_cart"
	case errors.Is(err, service.ErrCheckoutInProgress):
		httpStatus = http.StatusConflict
		code = "checkout_in_progress"
	case errors.Is(err, checkout.ErrPaymentMismatch):
		httpStatus = http.StatusConflict
		code = "payment_mismatch"
	case errors.Is(err, checkout.ErrIllegalTransition):
		httpStatus = http.StatusConflict
		code = "illegal_transition"
	case errors.Is(err, context.DeadlineExceeded):
		httpStatus = http.StatusGatewayTimeout
		code = "timeout"
	default:
		logger.Printf(ctx, "request failed: %v", err)
		httpStatus = http.StatusInternalServerError
		code = "internal_error"
		message = "internal server error"
	}

	respondError(w, httpStatus, code, message)
}
