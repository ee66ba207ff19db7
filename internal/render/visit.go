package render

import (
	"github.com/sigap/sigap/internal/model1"
)

// Visit renders home visit logs
type Visit struct {
	Base
}

// Header returns the visit table header
func (v *Visit) Header() model1.Header {
	return model1.Header{
		{Name: "ID"},
		{Name: "PURPOSE"},
		{Name: "FAMILY"},
		{Name: "EMPLOYEE"},
		{Name: "DATE"},
		{Name: "FOLLOW-UP", Attrs: model1.Attrs{Wide: true}},
		{Name: "NOTES", Attrs: model1.Attrs{Wide: true}},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a visit record to a row
func (v *Visit) Render(o any, row *model1.Row) error {
	rec, err := asRecord(o)
	if err != nil {
		return err
	}

	fields := rec.GetFields()
	row.ID = rec.GetID()
	row.Fields = model1.Fields{
		rec.GetID(),
		NA(rec.GetName()),
		Missing(strField(fields, "familyId")),
		Missing(strField(fields, "employeeId")),
		Missing(strField(fields, "visitDate")),
		YesNo(fields["needsFollowUp"]),
		Truncate(strField(fields, "notes"), 40),
		ToAge(rec.GetCreatedAt()),
	}
	return nil
}
