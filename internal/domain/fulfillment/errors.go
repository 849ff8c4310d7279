package fulfillment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// MissingOrdersError reports order identifiers that do not exist for the
// tenant. Every missing identifier is listed, not just the first.
type MissingOrdersError struct {
	IDs []uuid.UUID
}

// Error implements the error interface
func (e *MissingOrdersError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("orders not found: %s", strings.Join(ids, ", "))
}

// DomainError converts to the shared error taxonomy
func (e *MissingOrdersError) DomainError() *shared.DomainError {
	return shared.NewDomainError("ORDERS_NOT_FOUND", e.Error())
}
