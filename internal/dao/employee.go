package dao

import (
	"context"
	"fmt"
)

func init() {
	RegisterAccessor(&EmployeeRID, &Employee{})
}

// Employee is the DAO for field and office staff.
type Employee struct {
	Resource
}

// Init initializes the employee DAO.
func (e *Employee) Init(f Factory, rid *ResourceID) {
	e.Resource.Init(f, rid)
	e.SetNameKeys("fullName")
}

// ByPosition returns employees holding the given position.
func (e *Employee) ByPosition(ctx context.Context, position string) ([]Record, error) {
	if position == "" {
		return nil, fmt.Errorf("position cannot be empty")
	}
	return e.listWhere(ctx, "position", position)
}

// Active returns employees whose employment status is active.
func (e *Employee) Active(ctx context.Context) ([]Record, error) {
	return e.listWhere(ctx, "status", "aktif")
}
