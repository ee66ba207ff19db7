package dao

import (
	"context"
	"fmt"
)

func init() {
	RegisterAccessor(&BusinessRID, &Business{})
}

// Business is the DAO for family micro-enterprise records.
type Business struct {
	Resource
}

// Init initializes the business DAO.
func (b *Business) Init(f Factory, rid *ResourceID) {
	b.Resource.Init(f, rid)
	b.SetNameKeys("businessName")
}

// ByFamily returns the businesses owned by a family.
func (b *Business) ByFamily(ctx context.Context, familyID string) ([]Record, error) {
	if familyID == "" {
		return nil, fmt.Errorf("family id cannot be empty")
	}
	return b.listWhere(ctx, "familyId", familyID)
}

// ByCategory returns businesses in the given trade category,
// e.g. "kuliner", "kerajinan", "jasa".
func (b *Business) ByCategory(ctx context.Context, category string) ([]Record, error) {
	if category == "" {
		return nil, fmt.Errorf("category cannot be empty")
	}
	return b.listWhere(ctx, "category", category)
}
