package warehouse

import (
	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// MaxPutAwayBatch caps the number of stock units one put-away request may
// move. The cap matches the atomic-commit size limit of the persistence
// backend; it is a platform constraint, not a business rule, and must be
// revisited if the storage backend changes.
const MaxPutAwayBatch = 500

// PutAwayService holds the pure put-away rules: input normalization and
// missing-unit detection. Fetching and the atomic relocation commit belong
// to the application layer, which controls the transaction boundary.
type PutAwayService struct{}

// NewPutAwayService creates a new put-away domain service
func NewPutAwayService() *PutAwayService {
	return &PutAwayService{}
}

// NormalizeUnitIDs deduplicates the requested ids preserving first-seen
// order and enforces the batch cap. The cap is checked after dedup so a
// request padded with duplicates is not rejected spuriously, but before any
// lookup so an oversized request touches no data.
func (s *PutAwayService) NormalizeUnitIDs(ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one stock unit ID is required")
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	deduped := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Stock unit ID cannot be empty")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}

	if len(deduped) > MaxPutAwayBatch {
		return nil, shared.NewDomainError("BATCH_TOO_LARGE",
			"A put-away request may not exceed 500 stock units")
	}
	return deduped, nil
}

// CheckUnitsPresent diffs the fetched units against the requested ids and
// reports every missing id at once, not just the first.
func (s *PutAwayService) CheckUnitsPresent(requested []uuid.UUID, found []StockUnit) error {
	if len(found) == len(requested) {
		return nil
	}

	present := make(map[uuid.UUID]struct{}, len(found))
	for i := range found {
		present[found[i].ID] = struct{}{}
	}

	missing := make([]uuid.UUID, 0, len(requested)-len(found))
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return &MissingUnitsError{IDs: missing}
}

// CheckUnitsMovable rejects the batch if any unit is reserved for an order.
// Reserved units stay where allocation found them until dispatched or
// released.
func (s *PutAwayService) CheckUnitsMovable(units []StockUnit) error {
	for i := range units {
		if units[i].IsReserved() {
			return shared.NewDomainError("UNIT_RESERVED",
				"Stock unit "+units[i].ID.String()+" is reserved for an order and cannot be moved")
		}
	}
	return nil
}
