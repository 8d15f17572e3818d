package payment

import (
	"context"
	"fmt"

	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/google/uuid"
)

// WidgetGateway creates a provider order for the hosted checkout widget and
// hands back the key and order id the widget is opened with.
type WidgetGateway struct {
	orders OrderCreator
	keyID  string
}

func NewWidgetGateway(orders OrderCreator, keyID string) *WidgetGateway {
	return &WidgetGateway{orders: orders, keyID: keyID}
}

func (g *WidgetGateway) Open(ctx context.Context, desc checkout.OrderDescriptor) (*checkout.Handle, error) {
	order, err := g.orders.CreateOrder(ctx, OrderRequest{
		Amount:         desc.Amount,
		Currency:       desc.Currency.String(),
		Receipt:        desc.Receipt,
		PaymentCapture: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create provider order: %w", err)
	}
	return &checkout.Handle{Key: g.keyID, OrderID: order.ID}, nil
}

const SandboxKey = "rzp_test_sandbox"

// SandboxGateway opens a widget without talking to the provider. It is used
// when no API credentials are configured.
type SandboxGateway struct{}

func (SandboxGateway) Open(_ context.Context, desc checkout.OrderDescriptor) (*checkout.Handle, error) {
	if desc.Amount <= 0 {
		return nil, fmt.Errorf("sandbox order needs a positive amount, got %d", desc.Amount)
	}
	return &checkout.Handle{Key: SandboxKey, OrderID: "order_sandbox_" + uuid.NewString()}, nil
}
