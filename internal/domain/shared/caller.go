package shared

import (
	"github.com/google/uuid"
)

// CallerContext carries the verified caller identity and the storefronts
// that identity may act on. It is supplied by the identity collaborator at
// the operation boundary and passed explicitly into every core operation;
// nothing in the core reads identity from ambient state.
type CallerContext struct {
	CallerID         uuid.UUID
	TenantID         uuid.UUID
	AuthorizedStores []uuid.UUID
}

// NewCallerContext creates a caller context
func NewCallerContext(callerID, tenantID uuid.UUID, stores []uuid.UUID) CallerContext {
	return CallerContext{
		CallerID:         callerID,
		TenantID:         tenantID,
		AuthorizedStores: stores,
	}
}

// CanActOn reports whether the caller is authorized for the storefront
func (c CallerContext) CanActOn(storeID uuid.UUID) bool {
	for _, id := range c.AuthorizedStores {
		if id == storeID {
			return true
		}
	}
	return false
}

// Validate checks the context carries a caller and a tenant
func (c CallerContext) Validate() error {
	if c.CallerID == uuid.Nil {
		return ErrUnauthorized
	}
	if c.TenantID == uuid.Nil {
		return ErrUnauthorized
	}
	return nil
}
