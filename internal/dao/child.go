package dao

import (
	"context"
	"fmt"
)

func init() {
	RegisterAccessor(&ChildRID, &Child{})
}

// Child is the DAO for children under case management.
type Child struct {
	Resource
}

// Init initializes the child DAO.
func (c *Child) Init(f Factory, rid *ResourceID) {
	c.Resource.Init(f, rid)
	c.SetNameKeys("fullName", "nickname")
}

// ByFamily returns the children belonging to a family.
func (c *Child) ByFamily(ctx context.Context, familyID string) ([]Record, error) {
	if familyID == "" {
		return nil, fmt.Errorf("family id cannot be empty")
	}
	return c.listWhere(ctx, "familyId", familyID)
}

// BySchoolStatus returns children with the given school enrollment status.
func (c *Child) BySchoolStatus(ctx context.Context, status string) ([]Record, error) {
	if status == "" {
		return nil, fmt.Errorf("school status cannot be empty")
	}
	return c.listWhere(ctx, "schoolStatus", status)
}
