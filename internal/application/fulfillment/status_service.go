package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
	"github.com/khallark/studio-sub002/internal/domain/integration"
	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// StatusService drives the order lifecycle. Transitions with external
// effects invoke the collaborator before persisting, so a failed courier or
// storefront call never leaves a committed state change behind.
type StatusService struct {
	orders     fulfillment.OrderRepository
	units      warehouse.StockUnitRepository
	courier    integration.CourierGateway
	storefront integration.StorefrontGateway
	logger     *zap.Logger
}

// NewStatusService creates a new status application service
func NewStatusService(
	orders fulfillment.OrderRepository,
	units warehouse.StockUnitRepository,
	courier integration.CourierGateway,
	storefront integration.StorefrontGateway,
	logger *zap.Logger,
) *StatusService {
	return &StatusService{
		orders:     orders,
		units:      units,
		courier:    courier,
		storefront: storefront,
		logger:     logger,
	}
}

// load fetches the order and checks the caller may act on its store
func (s *StatusService) load(ctx context.Context, caller shared.CallerContext, orderID uuid.UUID) (*fulfillment.Order, error) {
	order, err := s.orders.FindByID(ctx, caller.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.CanActOn(order.StoreID) {
		return nil, shared.ErrForbidden
	}
	return order, nil
}

// Transition moves one order along a declared forward edge
func (s *StatusService) Transition(ctx context.Context, caller shared.CallerContext, orderID uuid.UUID, target fulfillment.OrderStatus, remarks string) (*OrderView, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	order, err := s.load(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.applyTransition(ctx, order, target, remarks, caller); err != nil {
		return nil, err
	}
	view := NewOrderView(order)
	return &view, nil
}

// Revert undoes one order's current status along its declared revert edge
func (s *StatusService) Revert(ctx context.Context, caller shared.CallerContext, orderID uuid.UUID, remarks string) (*OrderView, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	order, err := s.load(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Revert(remarks, caller.CallerID); err != nil {
		return nil, err
	}
	if err := s.orders.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	view := NewOrderView(order)
	return &view, nil
}

// AssignAWB books a forward shipment with the courier network and moves the
// order to ReadyToDispatch
func (s *StatusService) AssignAWB(ctx context.Context, caller shared.CallerContext, orderID uuid.UUID, courierCode string) (*OrderView, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	order, err := s.load(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.applyAssignAWB(ctx, order, courierCode, caller); err != nil {
		return nil, err
	}
	view := NewOrderView(order)
	return &view, nil
}

// BookReturn books a reverse shipment and moves the order to DTORequested
func (s *StatusService) BookReturn(ctx context.Context, caller shared.CallerContext, orderID uuid.UUID, courierCode string) (*OrderView, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	order, err := s.load(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.applyBookReturn(ctx, order, courierCode, caller); err != nil {
		return nil, err
	}
	view := NewOrderView(order)
	return &view, nil
}

// applyTransition performs the transition on an already-loaded, already
// authorized order. Dispatch notifies the storefront before committing;
// cancellation releases the order's stock reservation after committing.
// Targets whose edges must carry a booked shipment are rejected here: those
// commits happen only through AssignAWB and BookReturn.
func (s *StatusService) applyTransition(ctx context.Context, order *fulfillment.Order, target fulfillment.OrderStatus, remarks string, caller shared.CallerContext) error {
	switch target {
	case fulfillment.StatusReadyToDispatch:
		return shared.NewDomainError("INVALID_TRANSITION",
			"ReadyToDispatch requires a booked shipment; use the assign-awb operation")
	case fulfillment.StatusDTORequested:
		return shared.NewDomainError("INVALID_TRANSITION",
			"DTORequested requires a booked return; use the book-return operation")
	}

	if target == fulfillment.StatusDispatched {
		// Validate the edge before spending the external call
		if !order.CustomStatus.CanTransitionTo(target) {
			return &fulfillment.InvalidTransitionError{From: order.CustomStatus, To: target}
		}
		if err := s.storefront.NotifyStatus(ctx, order.TenantID, order.StoreID, order.ExternalRef, target.String()); err != nil {
			return err
		}
	}

	if err := order.TransitionTo(target, remarks, caller.CallerID); err != nil {
		return err
	}
	if target == fulfillment.StatusCancelled && order.PickComplete {
		order.ClearPick(caller.CallerID)
	}
	if err := s.orders.SaveWithLock(ctx, order); err != nil {
		return err
	}

	if target == fulfillment.StatusCancelled {
		released, err := s.units.ReleaseByOrder(ctx, order.TenantID, order.ID, caller.CallerID)
		if err != nil {
			// Cancellation is committed; the reservation needs manual repair
			s.logger.Error("Failed to release stock for cancelled order",
				zap.String("order_id", order.ID.String()), zap.Error(err))
		} else if released > 0 {
			s.logger.Info("Released stock for cancelled order",
				zap.String("order_id", order.ID.String()),
				zap.Int64("released", released))
		}
	}
	return nil
}

// applyAssignAWB books the shipment first; the transition commits only on
// courier success
func (s *StatusService) applyAssignAWB(ctx context.Context, order *fulfillment.Order, courierCode string, caller shared.CallerContext) error {
	if !order.CustomStatus.CanTransitionTo(fulfillment.StatusReadyToDispatch) {
		return &fulfillment.InvalidTransitionError{From: order.CustomStatus, To: fulfillment.StatusReadyToDispatch}
	}

	shipment, err := s.courier.CreateShipment(ctx, integration.ShipmentRequest{
		TenantID:    order.TenantID,
		StoreID:     order.StoreID,
		OrderID:     order.ID,
		ExternalRef: order.ExternalRef,
		CourierCode: courierCode,
	})
	if err != nil {
		return err
	}

	if err := order.AssignAWB(shipment.AWB, shipment.Courier, caller.CallerID); err != nil {
		return err
	}
	return s.orders.SaveWithLock(ctx, order)
}

// applyBookReturn mirrors applyAssignAWB for the reverse shipment
func (s *StatusService) applyBookReturn(ctx context.Context, order *fulfillment.Order, courierCode string, caller shared.CallerContext) error {
	if !order.CustomStatus.CanTransitionTo(fulfillment.StatusDTORequested) {
		return &fulfillment.InvalidTransitionError{From: order.CustomStatus, To: fulfillment.StatusDTORequested}
	}

	shipment, err := s.courier.BookReturn(ctx, integration.ShipmentRequest{
		TenantID:    order.TenantID,
		StoreID:     order.StoreID,
		OrderID:     order.ID,
		ExternalRef: order.ExternalRef,
		CourierCode: courierCode,
	})
	if err != nil {
		return err
	}

	if err := order.BookReturn(shipment.AWB, shipment.Courier, caller.CallerID); err != nil {
		return err
	}
	return s.orders.SaveWithLock(ctx, order)
}
