package integration

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// ProductMapping links a storefront product/variant reference to the
// business's internal stock-keeping identity. Allocation cannot proceed for
// a line item without one.
type ProductMapping struct {
	shared.TenantAggregateRoot
	StoreID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductRef string    `gorm:"size:100;not null;index"` // storefront product/variant reference
	ProductID  uuid.UUID `gorm:"type:uuid;not null"`      // internal stock-keeping identity
	IsActive   bool      `gorm:"not null;default:true"`
}

// NewProductMapping creates a new mapping
func NewProductMapping(tenantID, storeID uuid.UUID, productRef string, productID uuid.UUID) (*ProductMapping, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if productRef == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Product reference cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	return &ProductMapping{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		StoreID:             storeID,
		ProductRef:          productRef,
		ProductID:           productID,
		IsActive:            true,
	}, nil
}

// UnmappedProductError reports a line item whose storefront reference has
// no mapping to an internal stock-keeping identity
type UnmappedProductError struct {
	ProductRef string
}

// Error implements the error interface
func (e *UnmappedProductError) Error() string {
	return fmt.Sprintf("no stock-keeping identity mapped for product reference %q", e.ProductRef)
}

// DomainError converts to the shared error taxonomy
func (e *UnmappedProductError) DomainError() *shared.DomainError {
	return shared.NewDomainError("UNMAPPED_PRODUCT", e.Error())
}

// ProductMappingRepository resolves storefront references to internal
// stock-keeping identities
type ProductMappingRepository interface {
	// ResolveRefs returns a map from product reference to internal product
	// ID for every active mapping found. Absent refs are simply missing
	// from the map; callers decide whether that is an error.
	ResolveRefs(ctx context.Context, tenantID, storeID uuid.UUID, refs []string) (map[string]uuid.UUID, error)
	FindByStore(ctx context.Context, tenantID, storeID uuid.UUID) ([]ProductMapping, error)
	Save(ctx context.Context, mapping *ProductMapping) error
}
