package service

import (
	"context"

	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/session"
)

func cartEditable(sess *session.Session) error {
	if sess.Checkout.Status == d.CheckoutStatusProcessing {
		return ErrCheckoutInProgress
	}
	return nil
}

func (s *Storefront) AddToCart(ctx context.Context, id string, productID int64) (*session.Session, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		if err := cartEditable(sess); err != nil {
			return err
		}
		p, err := s.catalog.Product(productID)
		if err != nil {
			return err
		}
		sess.Cart.AddToCart(p)
		return nil
	})
}

func (s *Storefront) RemoveFromCart(ctx context.Context, id string, productID int64) (*session.Session, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		if err := cartEditable(sess); err != nil {
			return err
		}
		sess.Cart.RemoveFromCart(productID)
		return nil
	})
}

// UpdateQuantity ignores quantities below 1.
func (s *Storefront) UpdateQuantity(ctx context.Context, id string, productID int64, quantity int) (*session.Session, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		if err := cartEditable(sess); err != nil {
			return err
		}
		sess.Cart.UpdateQuantity(productID, quantity)
		return nil
	})
}

// SetCurrency switches the display currency. Prices are not converted.
func (s *Storefront) SetCurrency(ctx context.Context, id, currency string) (*session.Session, error) {
	cur, err := d.ParseCurrency(currency)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(sess *session.Session) error {
		if err := cartEditable(sess); err != nil {
			return err
		}
		sess.Currency = cur
		return nil
	})
}

func (s *Storefront) OpenPanel(ctx context.Context, id string) (*session.Session, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		sess.PanelOpen = true
		sess.Checkout.Reopen()
		return nil
	})
}

func (s *Storefront) ClosePanel(ctx context.Context, id string) (*session.Session, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		sess.PanelOpen = false
		sess.Checkout.Close()
		return nil
	})
}
