package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khallark/studio-sub002/internal/domain/bulk"
	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// BulkService runs multi-store order operations. Input is partitioned by
// owning store and each partition runs as one concurrent sub-operation;
// within a partition orders are processed serially and the first failure
// aborts that partition without touching its siblings. The summary is
// returned only after every partition has settled.
type BulkService struct {
	orders fulfillment.OrderRepository
	status *StatusService
	logger *zap.Logger
}

// NewBulkService creates a new bulk application service
func NewBulkService(orders fulfillment.OrderRepository, status *StatusService, logger *zap.Logger) *BulkService {
	return &BulkService{orders: orders, status: status, logger: logger}
}

// loadOrders fetches the requested orders, rejecting the whole request if
// any identifier does not exist for the tenant
func (s *BulkService) loadOrders(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]fulfillment.Order, error) {
	if len(ids) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order ID list cannot be empty")
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Order ID cannot be empty")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	orders, err := s.orders.FindByIDs(ctx, tenantID, unique)
	if err != nil {
		return nil, err
	}
	if len(orders) != len(unique) {
		found := make(map[uuid.UUID]struct{}, len(orders))
		for i := range orders {
			found[orders[i].ID] = struct{}{}
		}
		missing := make([]uuid.UUID, 0)
		for _, id := range unique {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, &fulfillment.MissingOrdersError{IDs: missing}
	}
	return orders, nil
}

// fanOut partitions the orders by store and applies op to each order of an
// authorized partition serially
func (s *BulkService) fanOut(
	ctx context.Context,
	caller shared.CallerContext,
	orders []fulfillment.Order,
	op func(ctx context.Context, order *fulfillment.Order) error,
) *BulkResult {
	summary := bulk.FanOut(ctx, orders,
		func(o fulfillment.Order) uuid.UUID { return o.StoreID },
		func(ctx context.Context, storeID uuid.UUID, part []fulfillment.Order) (int, error) {
			if !caller.CanActOn(storeID) {
				return 0, shared.ErrForbidden
			}
			for i := range part {
				if err := op(ctx, &part[i]); err != nil {
					return i, err
				}
			}
			return len(part), nil
		},
	)
	return newBulkResult(summary)
}

// BulkUpdateStatus moves every order along the same forward edge
func (s *BulkService) BulkUpdateStatus(ctx context.Context, caller shared.CallerContext, input BulkStatusInput) (*BulkResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if !input.Target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(input.Target))
	}
	orders, err := s.loadOrders(ctx, caller.TenantID, input.OrderIDs)
	if err != nil {
		return nil, err
	}

	result := s.fanOut(ctx, caller, orders, func(ctx context.Context, order *fulfillment.Order) error {
		return s.status.applyTransition(ctx, order, input.Target, input.Remarks, caller)
	})

	s.logger.Info("Bulk status update settled",
		zap.String("tenant_id", caller.TenantID.String()),
		zap.String("target", input.Target.String()),
		zap.Int("processed", result.Processed),
		zap.Bool("all_succeeded", result.AllSucceeded),
	)
	return result, nil
}

// BulkAssignAWB books a forward shipment for every order and moves each to
// ReadyToDispatch. A courier failure aborts the failing store's partition.
func (s *BulkService) BulkAssignAWB(ctx context.Context, caller shared.CallerContext, input BulkShipmentInput) (*BulkResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	orders, err := s.loadOrders(ctx, caller.TenantID, input.OrderIDs)
	if err != nil {
		return nil, err
	}

	result := s.fanOut(ctx, caller, orders, func(ctx context.Context, order *fulfillment.Order) error {
		return s.status.applyAssignAWB(ctx, order, input.CourierCode, caller)
	})

	s.logger.Info("Bulk AWB assignment settled",
		zap.String("tenant_id", caller.TenantID.String()),
		zap.Int("processed", result.Processed),
		zap.Bool("all_succeeded", result.AllSucceeded),
	)
	return result, nil
}

// BulkDispatch marks every order Dispatched, notifying each owning
// storefront before the transition commits
func (s *BulkService) BulkDispatch(ctx context.Context, caller shared.CallerContext, input BulkOrderIDsInput) (*BulkResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	orders, err := s.loadOrders(ctx, caller.TenantID, input.OrderIDs)
	if err != nil {
		return nil, err
	}

	result := s.fanOut(ctx, caller, orders, func(ctx context.Context, order *fulfillment.Order) error {
		return s.status.applyTransition(ctx, order, fulfillment.StatusDispatched, "Dispatched", caller)
	})

	s.logger.Info("Bulk dispatch settled",
		zap.String("tenant_id", caller.TenantID.String()),
		zap.Int("processed", result.Processed),
		zap.Bool("all_succeeded", result.AllSucceeded),
	)
	return result, nil
}

// BulkBookReturn books a reverse shipment for every order and moves each to
// DTORequested
func (s *BulkService) BulkBookReturn(ctx context.Context, caller shared.CallerContext, input BulkShipmentInput) (*BulkResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	orders, err := s.loadOrders(ctx, caller.TenantID, input.OrderIDs)
	if err != nil {
		return nil, err
	}

	result := s.fanOut(ctx, caller, orders, func(ctx context.Context, order *fulfillment.Order) error {
		return s.status.applyBookReturn(ctx, order, input.CourierCode, caller)
	})

	s.logger.Info("Bulk return booking settled",
		zap.String("tenant_id", caller.TenantID.String()),
		zap.Int("processed", result.Processed),
		zap.Bool("all_succeeded", result.AllSucceeded),
	)
	return result, nil
}
