package render

import (
	"github.com/sigap/sigap/internal/model1"
)

// Guardian renders child guardians
type Guardian struct {
	Base
}

// Header returns the guardian table header
func (g *Guardian) Header() model1.Header {
	return model1.Header{
		{Name: "ID"},
		{Name: "NAME"},
		{Name: "NIK", Attrs: model1.Attrs{Wide: true}},
		{Name: "RELATION"},
		{Name: "CHILD"},
		{Name: "OCCUPATION", Attrs: model1.Attrs{Wide: true}},
		{Name: "PHONE"},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a guardian record to a row
func (g *Guardian) Render(o any, row *model1.Row) error {
	rec, err := asRecord(o)
	if err != nil {
		return err
	}

	fields := rec.GetFields()
	row.ID = rec.GetID()
	row.Fields = model1.Fields{
		rec.GetID(),
		NA(rec.GetName()),
		Missing(strField(fields, "nik")),
		Missing(strField(fields, "relation")),
		Missing(strField(fields, "childId")),
		Missing(strField(fields, "occupation")),
		Missing(strField(fields, "phone")),
		ToAge(rec.GetCreatedAt()),
	}
	return nil
}
