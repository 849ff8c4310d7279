package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khallark/studio-sub002/internal/domain/integration"
)

// GormProductMappingRepository implements ProductMappingRepository using GORM
type GormProductMappingRepository struct {
	db *gorm.DB
}

// NewGormProductMappingRepository creates a new GormProductMappingRepository
func NewGormProductMappingRepository(db *gorm.DB) *GormProductMappingRepository {
	return &GormProductMappingRepository{db: db}
}

// ResolveRefs returns product reference to internal product ID for every
// active mapping found
func (r *GormProductMappingRepository) ResolveRefs(ctx context.Context, tenantID, storeID uuid.UUID, refs []string) (map[string]uuid.UUID, error) {
	resolved := make(map[string]uuid.UUID, len(refs))
	if len(refs) == 0 {
		return resolved, nil
	}

	var mappings []integration.ProductMapping
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND store_id = ? AND product_ref IN ? AND is_active = ?",
			tenantID, storeID, refs, true).
		Find(&mappings).Error; err != nil {
		return nil, err
	}

	for i := range mappings {
		resolved[mappings[i].ProductRef] = mappings[i].ProductID
	}
	return resolved, nil
}

// FindByStore returns every mapping of a store
func (r *GormProductMappingRepository) FindByStore(ctx context.Context, tenantID, storeID uuid.UUID) ([]integration.ProductMapping, error) {
	var mappings []integration.ProductMapping
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND store_id = ?", tenantID, storeID).
		Order("product_ref ASC").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// Save creates or updates a mapping
func (r *GormProductMappingRepository) Save(ctx context.Context, mapping *integration.ProductMapping) error {
	return r.db.WithContext(ctx).Save(mapping).Error
}

// Ensure GormProductMappingRepository implements ProductMappingRepository
var _ integration.ProductMappingRepository = (*GormProductMappingRepository)(nil)
