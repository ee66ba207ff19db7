package render

import (
	"github.com/sigap/sigap/internal/model1"
)

// Spouse renders employee spouse records
type Spouse struct {
	Base
}

// Header returns the spouse table header
func (s *Spouse) Header() model1.Header {
	return model1.Header{
		{Name: "ID"},
		{Name: "NAME"},
		{Name: "EMPLOYEE"},
		{Name: "OCCUPATION"},
		{Name: "DEPENDENTS", Attrs: model1.Attrs{Numeric: true, Wide: true}},
		{Name: "PHONE", Attrs: model1.Attrs{Wide: true}},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a spouse record to a row
func (s *Spouse) Render(o any, row *model1.Row) error {
	rec, err := asRecord(o)
	if err != nil {
		return err
	}

	fields := rec.GetFields()
	row.ID = rec.GetID()
	row.Fields = model1.Fields{
		rec.GetID(),
		NA(rec.GetName()),
		Missing(strField(fields, "employeeId")),
		Missing(strField(fields, "occupation")),
		countField(fields, "dependents"),
		Missing(strField(fields, "phone")),
		ToAge(rec.GetCreatedAt()),
	}
	return nil
}
