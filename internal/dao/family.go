package dao

import (
	"context"
	"fmt"
)

func init() {
	RegisterAccessor(&FamilyRID, &Family{})
}

// Family is the DAO for beneficiary families.
type Family struct {
	Resource
}

// Init initializes the family DAO.
func (f *Family) Init(fa Factory, rid *ResourceID) {
	f.Resource.Init(fa, rid)
	f.SetNameKeys("headName", "familyName")
}

// ByStatus returns families in the given assistance status.
func (f *Family) ByStatus(ctx context.Context, status string) ([]Record, error) {
	if status == "" {
		return nil, fmt.Errorf("status cannot be empty")
	}
	return f.listWhere(ctx, "status", status)
}

// ByVillage returns families registered in the given village.
func (f *Family) ByVillage(ctx context.Context, village string) ([]Record, error) {
	if village == "" {
		return nil, fmt.Errorf("village cannot be empty")
	}
	return f.listWhere(ctx, "village", village)
}
