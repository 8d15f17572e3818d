package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	c "github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/checkout"
	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/metrics"
	"github.com/fjod/go_storefront/internal/recorder"
	"github.com/fjod/go_storefront/internal/session"
	"golang.org/x/sync/singleflight"
)

type CatalogReader interface {
	Products() ([]d.Product, error)
	Product(id int64) (d.Product, error)
}

type Options struct {
	Merchant      string
	RecordTimeout time.Duration
}

// Storefront is the only writer of session state. Every command loads the
// session, applies one change and saves it while holding that session's lock.
type Storefront struct {
	catalog  CatalogReader
	sessions c.SessionCache
	gateway  checkout.Gateway
	recorder recorder.Recorder
	metrics  *metrics.Metrics

	merchant      string
	recordTimeout time.Duration
	now           func() time.Time
	newReceipt    func() string

	locks    *keyedMutex
	reads    singleflight.Group
	inflight sync.WaitGroup
}

func NewStorefront(catalog CatalogReader, sessions c.SessionCache, gateway checkout.Gateway, rec recorder.Recorder, m *metrics.Metrics, opts Options) *Storefront {
	if rec == nil {
		rec = recorder.Noop{}
	}
	if opts.RecordTimeout <= 0 {
		opts.RecordTimeout = 10 * time.Second
	}
	return &Storefront{
		catalog:       catalog,
		sessions:      sessions,
		gateway:       gateway,
		recorder:      rec,
		metrics:       m,
		merchant:      opts.Merchant,
		recordTimeout: opts.RecordTimeout,
		now:           time.Now,
		newReceipt:    func() string { return "rcpt_" + session.NewID() },
		locks:         newKeyedMutex(),
	}
}

// GetSession returns the current state of a visitor. Unknown ids yield a
// fresh session that is not stored until the first command.
func (s *Storefront) GetSession(ctx context.Context, id string) (*session.Session, error) {
	if !session.ValidID(id) {
		return nil, ErrInvalidSessionID
	}
	v, err, _ := s.reads.Do(id, func() (interface{}, error) {
		sess, _, err := s.load(ctx, id)
		return sess, err
	})
	if err != nil {
		return nil, err
	}
	// callers of one flight share the value
	view := *v.(*session.Session)
	view.Cart = d.Cart{Items: v.(*session.Session).Cart.Snapshot()}
	return &view, nil
}

// load reports fresh when the id had no stored session.
func (s *Storefront) load(ctx context.Context, id string) (sess *session.Session, fresh bool, err error) {
	sess, err = s.sessions.Get(ctx, id)
	if errors.Is(err, c.ErrCacheMiss) {
		return session.New(id, s.now()), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session: %w", err)
	}
	if sess.Checkout.Expire(s.now()) {
		s.metrics.Transition(d.CheckoutStatusSelecting.String())
	}
	return sess, false, nil
}

// mutate runs fn on the session under its lock and saves the result even when
// fn fails, so field errors and failure messages are kept. A session that
// did not exist yet is only stored once a command succeeds on it.
func (s *Storefront) mutate(ctx context.Context, id string, fn func(sess *session.Session) error) (*session.Session, error) {
	if !session.ValidID(id) {
		return nil, ErrInvalidSessionID
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, fresh, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	before := sess.Checkout.Status
	fnErr := fn(sess)
	if after := sess.Checkout.Status; after != before {
		s.metrics.Transition(after.String())
	}

	if fnErr != nil && fresh {
		return sess, fnErr
	}

	sess.Touch(s.now())
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, fnErr
}

// EndSession drops the stored state of a visitor. It is refused while a
// payment is open so the widget continuation still finds its order.
func (s *Storefront) EndSession(ctx context.Context, id string) error {
	if !session.ValidID(id) {
		return ErrInvalidSessionID
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, fresh, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if fresh {
		return nil
	}
	if err := cartEditable(sess); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Wait blocks until every dispatched order record has finished.
func (s *Storefront) Wait() {
	s.inflight.Wait()
}
