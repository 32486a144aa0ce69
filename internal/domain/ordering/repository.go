package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository reads finalized orders and persists metadata updates.
// Order creation itself belongs to the surrounding commerce flow.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// UpdateMetadata persists the order's metadata field.
	UpdateMetadata(ctx context.Context, order *Order) error
}

// OrderCreatedHook is invoked after an order is finalized. The provisioning
// flow implements it; the commerce flow calls it. Explicit composition
// instead of overriding an order service by inheritance.
type OrderCreatedHook interface {
	OrderCreated(ctx context.Context, orderID uuid.UUID) error
}

// OrderCreatedHookFunc adapts a plain function to OrderCreatedHook.
type OrderCreatedHookFunc func(ctx context.Context, orderID uuid.UUID) error

// OrderCreated implements OrderCreatedHook.
func (f OrderCreatedHookFunc) OrderCreated(ctx context.Context, orderID uuid.UUID) error {
	return f(ctx, orderID)
}
