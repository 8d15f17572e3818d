package checkout

import (
	"errors"
	"sort"
	"strings"

	d "github.com/fjod/go_storefront/internal/domain"
)

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrIllegalTransition = errors.New("illegal transition of checkout status")
	ErrPaymentMismatch   = errors.New("payment result does not match the pending order")
	ErrUnknownField      = errors.New("unknown contact field")
)

// ValidationError carries field scoped contact errors. It never represents a
// global failure of the checkout.
type ValidationError struct {
	Fields d.FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "contact validation failed: " + strings.Join(parts, "; ")
}
