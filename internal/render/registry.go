package render

import (
	"fmt"

	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/model1"
)

// renderers maps resource IDs to their table renderers.
var renderers = map[string]model1.Renderer{
	dao.FamilyRID.String():   &Family{},
	dao.ChildRID.String():    &Child{},
	dao.GuardianRID.String(): &Guardian{},
	dao.EmployeeRID.String(): &Employee{},
	dao.SpouseRID.String():   &Spouse{},
	dao.BusinessRID.String(): &Business{},
	dao.GalleryRID.String():  &Gallery{},
	dao.VisitRID.String():    &Visit{},
	dao.DocumentRID.String(): &Document{},
}

// For returns the renderer for the given resource ID.
func For(rid *dao.ResourceID) (model1.Renderer, error) {
	if rid == nil {
		return nil, fmt.Errorf("resource id cannot be nil")
	}
	r, ok := renderers[rid.String()]
	if !ok {
		return nil, fmt.Errorf("no renderer for: %s", rid.String())
	}
	return r, nil
}
