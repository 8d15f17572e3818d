package checkout

import (
	"strings"
	"time"

	d "github.com/fjod/go_storefront/internal/domain"
)

// AutoResetAfter is how long the success screen stays before the machine
// returns to selecting on its own.
const AutoResetAfter = 8 * time.Second

// Checkout is the state of one checkout attempt. It holds no SDK types so it
// can be stored as plain JSON with the rest of the session.
type Checkout struct {
	Status          d.CheckoutStatus `json:"status"`
	Contact         d.ContactInfo    `json:"contact"`
	FieldErrors     d.FieldErrors    `json:"field_errors,omitempty"`
	Message         string           `json:"message,omitempty"`
	Receipt         string           `json:"receipt,omitempty"`
	ProviderOrderID string           `json:"provider_order_id,omitempty"`
	PaymentID       string           `json:"payment_id,omitempty"`
	CompletedAt     time.Time        `json:"completed_at,omitempty"`
}

func New() Checkout {
	return Checkout{Status: d.CheckoutStatusSelecting}
}

func (c *Checkout) transition(to d.CheckoutStatus) error {
	from := c.Status
	if from == "" {
		from = d.CheckoutStatusSelecting
	}
	if !d.CanTransitionTo(from, to) {
		return ErrIllegalTransition
	}
	c.Status = to
	return nil
}

func (c *Checkout) reset() {
	*c = New()
}

// Proceed moves from selecting to collecting contact details.
func (c *Checkout) Proceed(cartEmpty bool) error {
	if c.Status != d.CheckoutStatusSelecting && c.Status != "" {
		return ErrIllegalTransition
	}
	if cartEmpty {
		return ErrEmptyCart
	}
	return c.transition(d.CheckoutStatusCollectingContact)
}

// UpdateContactField stores a single edited field and clears only that
// field's error.
func (c *Checkout) UpdateContactField(field, value string) error {
	if c.Status != d.CheckoutStatusCollectingContact {
		return ErrIllegalTransition
	}
	contact, ok := c.Contact.WithField(field, value)
	if !ok {
		return ErrUnknownField
	}
	c.Contact = contact
	delete(c.FieldErrors, field)
	return nil
}

// SubmitContact validates the form. On failure the machine stays in
// collecting-contact and a *ValidationError is returned; on success it moves
// to processing.
func (c *Checkout) SubmitContact(info d.ContactInfo) error {
	if c.Status != d.CheckoutStatusCollectingContact {
		return ErrIllegalTransition
	}
	c.Contact = info.Normalize()

	if errs := c.Contact.Validate(); errs != nil {
		c.FieldErrors = errs
		return &ValidationError{Fields: errs}
	}

	c.FieldErrors = nil
	return c.transition(d.CheckoutStatusProcessing)
}

// Opened records the provider order the widget was opened for.
func (c *Checkout) Opened(receipt string, h *Handle) error {
	if c.Status != d.CheckoutStatusProcessing {
		return ErrIllegalTransition
	}
	c.Receipt = receipt
	c.ProviderOrderID = h.OrderID
	return nil
}

// Succeed is the on-success continuation of the payment widget.
func (c *Checkout) Succeed(result PaymentResult, now time.Time) error {
	if c.Status != d.CheckoutStatusProcessing {
		return ErrIllegalTransition
	}
	if c.ProviderOrderID != "" && result.OrderID != "" && result.OrderID != c.ProviderOrderID {
		return ErrPaymentMismatch
	}
	if err := c.transition(d.CheckoutStatusSuccess); err != nil {
		return err
	}
	c.PaymentID = result.PaymentID
	c.CompletedAt = now
	c.Message = ""
	return nil
}

// Fail is the on-failure continuation of the payment widget. It is also used
// when the widget could not be opened at all.
func (c *Checkout) Fail(failure PaymentFailure) error {
	if c.Status != d.CheckoutStatusProcessing {
		return ErrIllegalTransition
	}
	if err := c.transition(d.CheckoutStatusError); err != nil {
		return err
	}
	c.Message = strings.TrimSpace(failure.Message())
	if c.Message == "" {
		c.Message = DefaultFailureMessage
	}
	return nil
}

// Retry returns from error to selecting.
func (c *Checkout) Retry() error {
	if c.Status != d.CheckoutStatusError {
		return ErrIllegalTransition
	}
	if err := c.transition(d.CheckoutStatusSelecting); err != nil {
		return err
	}
	c.reset()
	return nil
}

// Close is called when the cart panel is closed. Before processing every
// in-progress value is discarded; during processing nothing changes because
// the payment belongs to the widget.
func (c *Checkout) Close() {
	switch c.Status {
	case "", d.CheckoutStatusSelecting, d.CheckoutStatusCollectingContact, d.CheckoutStatusSuccess:
		c.reset()
	}
}

// Reopen resets a finished attempt whenever the cart panel is opened again.
func (c *Checkout) Reopen() {
	if c.Status.IsSettled() || c.Status == "" {
		c.reset()
	}
}

// Expire applies the success auto timeout. It reports whether a reset happened.
func (c *Checkout) Expire(now time.Time) bool {
	if c.Status != d.CheckoutStatusSuccess {
		return false
	}
	if now.Sub(c.CompletedAt) < AutoResetAfter {
		return false
	}
	c.reset()
	return true
}
