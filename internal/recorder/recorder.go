package recorder

import (
	"context"
	"errors"

	d "github.com/fjod/go_storefront/internal/domain"
)

// Recorder appends one paid order to the audit sink. Calls are best effort:
// callers log a failure and move on, nothing is retried.
type Recorder interface {
	Record(ctx context.Context, order *d.OrderRecord) error
}

var ErrRecordRejected = errors.New("order record rejected by sink")

// Noop is used when no sink is configured.
type Noop struct{}

func (Noop) Record(context.Context, *d.OrderRecord) error {
	return nil
}
