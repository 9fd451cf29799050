package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/sync"
)

// eventHandler decodes a raw payload and runs the matching service action
type eventHandler func(ctx context.Context, session *sync.ShopSession, payload []byte) Result

// Dispatcher routes a parsed webhook topic to its handler. The table is
// built once from the closed topic set; an unknown topic is acknowledged
// as unhandled rather than erroring, so the source store never retries it.
type Dispatcher struct {
	handlers map[sync.EventKind]eventHandler
	logger   *zap.Logger
}

// NewDispatcher creates a Dispatcher over the product and order services
func NewDispatcher(products *ProductService, orders *OrderService, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{logger: logger}

	d.handlers = map[sync.EventKind]eventHandler{
		sync.EventProductCreated: productHandler(products.HandleProductCreated),
		sync.EventProductUpdated: productHandler(products.HandleProductUpdated),
		sync.EventProductDeleted: productHandler(products.HandleProductDeleted),
		sync.EventOrderCreated:   orderHandler(orders.HandleOrderCreated),
		sync.EventOrderUpdated:   orderHandler(orders.HandleOrderUpdated),
		sync.EventOrderDeleted:   orderHandler(orders.HandleOrderDeleted),
	}

	return d
}

// productHandler adapts a product action into an eventHandler with payload
// decoding and validation at the boundary.
func productHandler(action func(context.Context, *sync.ShopSession, *sync.WooProduct) Result) eventHandler {
	return func(ctx context.Context, session *sync.ShopSession, payload []byte) Result {
		var product sync.WooProduct
		if err := json.Unmarshal(payload, &product); err != nil {
			return Failed("Invalid product payload", err.Error())
		}
		if err := product.Validate(); err != nil {
			return Failed("Invalid product payload", err.Error())
		}
		return action(ctx, session, &product)
	}
}

// orderHandler adapts an order action into an eventHandler
func orderHandler(action func(context.Context, *sync.ShopSession, *sync.WooOrder) Result) eventHandler {
	return func(ctx context.Context, session *sync.ShopSession, payload []byte) Result {
		var order sync.WooOrder
		if err := json.Unmarshal(payload, &order); err != nil {
			return Failed("Invalid order payload", err.Error())
		}
		if err := order.Validate(); err != nil {
			return Failed("Invalid order payload", err.Error())
		}
		return action(ctx, session, &order)
	}
}

// Dispatch runs the handler for a topic. A panicking handler is contained
// and reported as a failed result.
func (d *Dispatcher) Dispatch(ctx context.Context, session *sync.ShopSession, kind sync.EventKind, payload []byte) (result Result) {
	handler, ok := d.handlers[kind]
	if !ok {
		d.logger.Info("Unhandled webhook topic", zap.String("topic", kind.String()))
		return Skipped("Unhandled event")
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Webhook handler panicked",
				zap.String("topic", kind.String()),
				zap.Any("panic", r))
			result = Failed("Internal handler error", fmt.Sprint(r))
		}
	}()

	return handler(ctx, session, payload)
}
