package checkout

import (
	"context"
	"fmt"

	d "github.com/fjod/go_storefront/internal/domain"
)

const DefaultFailureMessage = "Payment failed. Please try again."

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// OrderDescriptor is what the hosted payment widget needs to open.
type OrderDescriptor struct {
	Amount      int64      `json:"amount"`
	Currency    d.Currency `json:"currency"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Receipt     string     `json:"receipt"`
	Prefill     Prefill    `json:"prefill"`
}

// Handle identifies the provider order the widget was opened for.
type Handle struct {
	Key     string `json:"key"`
	OrderID string `json:"order_id"`
}

// Gateway hands an order to the external payment widget. Results come back
// later through Checkout.Succeed and Checkout.Fail.
type Gateway interface {
	Open(ctx context.Context, desc OrderDescriptor) (*Handle, error)
}

type PaymentResult struct {
	PaymentID string
	OrderID   string
	Signature string
}

type PaymentFailure struct {
	Code        string
	Description string
	Reason      string
	OrderID     string
	PaymentID   string
}

// Message is the text shown to the buyer.
func (f PaymentFailure) Message() string {
	if f.Description != "" {
		return f.Description
	}
	return DefaultFailureMessage
}

// NewDescriptor converts the cart total into minor units without going
// through float multiplication.
func NewDescriptor(cart *d.Cart, currency d.Currency, contact d.ContactInfo, merchant, receipt string) (*OrderDescriptor, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	amount, err := cart.TotalMinor(currency)
	if err != nil {
		return nil, fmt.Errorf("failed to convert cart total: %w", err)
	}

	description := fmt.Sprintf("%d subscription", cart.Count())
	if cart.Count() != 1 {
		description += "s"
	}

	return &OrderDescriptor{
		Amount:      amount,
		Currency:    currency,
		Name:        merchant,
		Description: description,
		Receipt:     receipt,
		Prefill: Prefill{
			Name:    contact.FullName,
			Email:   contact.Email,
			Contact: contact.PhoneNumber,
		},
	}, nil
}
