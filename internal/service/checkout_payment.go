package service

import (
	"context"
	"time"

	"github.com/fjod/go_storefront/internal/checkout"
	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/session"
	"github.com/fjod/go_storefront/pkg/logger"
)

// ConfirmPayment is the on-success continuation. The cart is snapshotted and
// cleared and the session saved before the order record is dispatched.
func (s *Storefront) ConfirmPayment(ctx context.Context, id string, result checkout.PaymentResult) (*session.Session, error) {
	var record *d.OrderRecord
	sess, err := s.mutate(ctx, id, func(sess *session.Session) error {
		snapshot := sess.Cart.Snapshot()
		now := s.now()
		if err := sess.Checkout.Succeed(result, now); err != nil {
			return err
		}

		orderID := result.OrderID
		if orderID == "" {
			orderID = sess.Checkout.ProviderOrderID
		}
		record = d.NewOrderRecord(orderID, result.PaymentID, sess.Checkout.Contact, snapshot, sess.Currency, now)
		sess.Cart.Clear()
		return nil
	})
	if err != nil {
		return sess, err
	}

	s.dispatchRecord(ctx, record)
	return sess, nil
}

// FailPayment is the on-failure continuation.
func (s *Storefront) FailPayment(ctx context.Context, id string, failure checkout.PaymentFailure) (*session.Session, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		if failure.OrderID != "" && sess.Checkout.ProviderOrderID != "" && failure.OrderID != sess.Checkout.ProviderOrderID {
			return checkout.ErrPaymentMismatch
		}
		return sess.Checkout.Fail(failure)
	})
}

func (s *Storefront) RetryCheckout(ctx context.Context, id string) (*session.Session, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		return sess.Checkout.Retry()
	})
}

func (s *Storefront) dispatchRecord(ctx context.Context, record *d.OrderRecord) {
	if record == nil {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.recordTimeout)
		defer cancel()

		start := time.Now()
		err := s.recorder.Record(recCtx, record)
		s.metrics.OrderRecorded(err)
		if err != nil {
			logger.Printf(recCtx, "failed to record order %s: %v", record.OrderID, err)
			return
		}
		logger.Printf(recCtx, "order %s recorded in %s", record.OrderID, time.Since(start))
	}()
}
