package service

import (
	"context"

	"github.com/fjod/go_storefront/internal/checkout"
	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/session"
	"github.com/fjod/go_storefront/pkg/logger"
)

// WidgetLaunch is everything the client needs to open the payment widget.
type WidgetLaunch struct {
	Key        string                   `json:"key"`
	OrderID    string                   `json:"order_id"`
	Descriptor checkout.OrderDescriptor `json:"descriptor"`
}

func (s *Storefront) ProceedToCheckout(ctx context.Context, id string) (*session.Session, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		return sess.Checkout.Proceed(sess.Cart.IsEmpty())
	})
}

func (s *Storefront) UpdateContactField(ctx context.Context, id, field, value string) (*session.Session, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		return sess.Checkout.UpdateContactField(field, value)
	})
}

// SubmitContact merges the form over the stored contact, validates it and,
// when it passes, opens a provider order for the cart. Fields absent from the
// form keep the values set through UpdateContactField. A gateway failure moves the checkout to error and is not
// returned; the session carries the message.
func (s *Storefront) SubmitContact(ctx context.Context, id string, form d.ContactPatch) (*session.Session, *WidgetLaunch, error) {
	var launch *WidgetLaunch
	sess, err := s.mutate(ctx, id, func(sess *session.Session) error {
		if err := sess.Checkout.SubmitContact(form.Merge(sess.Checkout.Contact)); err != nil {
			return err
		}

		receipt := s.newReceipt()
		desc, err := checkout.NewDescriptor(&sess.Cart, sess.Currency, sess.Checkout.Contact, s.merchant, receipt)
		if err != nil {
			logger.Printf(ctx, "session %s: cannot build order descriptor: %v", sess.ID, err)
			return sess.Checkout.Fail(checkout.PaymentFailure{})
		}

		handle, err := s.gateway.Open(ctx, *desc)
		if err != nil {
			logger.Printf(ctx, "session %s: payment widget could not be opened: %v", sess.ID, err)
			return sess.Checkout.Fail(checkout.PaymentFailure{})
		}

		if err := sess.Checkout.Opened(receipt, handle); err != nil {
			return err
		}
		launch = &WidgetLaunch{Key: handle.Key, OrderID: handle.OrderID, Descriptor: *desc}
		return nil
	})
	return sess, launch, err
}
