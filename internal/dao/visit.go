package dao

import (
	"context"
	"fmt"
)

func init() {
	RegisterAccessor(&VisitRID, &Visit{})
}

// Visit is the DAO for home visit logs.
type Visit struct {
	Resource
}

// Init initializes the visit DAO.
func (v *Visit) Init(f Factory, rid *ResourceID) {
	v.Resource.Init(f, rid)
	v.SetNameKeys("purpose", "visitorName")
}

// ByFamily returns the visit logs recorded for a family.
func (v *Visit) ByFamily(ctx context.Context, familyID string) ([]Record, error) {
	if familyID == "" {
		return nil, fmt.Errorf("family id cannot be empty")
	}
	return v.listWhere(ctx, "familyId", familyID)
}

// ByEmployee returns the visit logs recorded by an employee.
func (v *Visit) ByEmployee(ctx context.Context, employeeID string) ([]Record, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("employee id cannot be empty")
	}
	return v.listWhere(ctx, "employeeId", employeeID)
}
