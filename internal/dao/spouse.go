package dao

import (
	"context"
	"fmt"
)

func init() {
	RegisterAccessor(&SpouseRID, &Spouse{})
}

// Spouse is the DAO for employee spouse records.
type Spouse struct {
	Resource
}

// Init initializes the spouse DAO.
func (s *Spouse) Init(f Factory, rid *ResourceID) {
	s.Resource.Init(f, rid)
	s.SetNameKeys("fullName")
}

// ByEmployee returns the spouse records linked to an employee.
func (s *Spouse) ByEmployee(ctx context.Context, employeeID string) ([]Record, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("employee id cannot be empty")
	}
	return s.listWhere(ctx, "employeeId", employeeID)
}
