package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// OrderService handles order ingestion and queries
type OrderService struct {
	orders fulfillment.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new order application service
func NewOrderService(orders fulfillment.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

// Ingest records an order arriving from a storefront. The payload snapshot
// is stored verbatim; fulfillment state lives alongside it, never inside it.
func (s *OrderService) Ingest(ctx context.Context, caller shared.CallerContext, input IngestInput) (*OrderView, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if !caller.CanActOn(input.StoreID) {
		return nil, shared.ErrForbidden
	}

	order, err := fulfillment.NewOrder(caller.TenantID, input.StoreID, input.ExternalRef, input.TotalAmount, input.Payload)
	if err != nil {
		return nil, err
	}
	order.SetUpdatedBy(caller.CallerID)

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order ingested",
		zap.String("tenant_id", caller.TenantID.String()),
		zap.String("store_id", input.StoreID.String()),
		zap.String("external_ref", input.ExternalRef),
	)
	view := NewOrderView(order)
	return &view, nil
}

// Get returns one order the caller is authorized to see
func (s *OrderService) Get(ctx context.Context, caller shared.CallerContext, orderID uuid.UUID) (*OrderView, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, caller.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.CanActOn(order.StoreID) {
		return nil, shared.ErrForbidden
	}
	view := NewOrderView(order)
	return &view, nil
}

// ListByStore returns a page of the store's orders
func (s *OrderService) ListByStore(ctx context.Context, caller shared.CallerContext, storeID uuid.UUID, filter shared.Filter) ([]OrderView, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if !caller.CanActOn(storeID) {
		return nil, shared.ErrForbidden
	}
	orders, err := s.orders.FindByStore(ctx, caller.TenantID, storeID, filter)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, NewOrderView(&orders[i]))
	}
	return views, nil
}

// ListByStatus returns a page of the tenant's orders in a given status,
// filtered down to the stores the caller may act on
func (s *OrderService) ListByStatus(ctx context.Context, caller shared.CallerContext, status fulfillment.OrderStatus, filter shared.Filter) ([]OrderView, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(status))
	}
	orders, err := s.orders.FindByStatus(ctx, caller.TenantID, status, filter)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		if caller.CanActOn(orders[i].StoreID) {
			views = append(views, NewOrderView(&orders[i]))
		}
	}
	return views, nil
}
