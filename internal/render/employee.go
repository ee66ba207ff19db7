package render

import (
	"github.com/derailed/tcell/v2"
	"github.com/sigap/sigap/internal/model1"
)

// Employee renders field and office staff
type Employee struct {
	Base
}

// Header returns the employee table header
func (e *Employee) Header() model1.Header {
	return model1.Header{
		{Name: "ID"},
		{Name: "NAME"},
		{Name: "NIP", Attrs: model1.Attrs{Wide: true}},
		{Name: "POSITION"},
		{Name: "GENDER", Attrs: model1.Attrs{Wide: true}},
		{Name: "PHONE", Attrs: model1.Attrs{Wide: true}},
		{Name: "EMAIL", Attrs: model1.Attrs{Wide: true}},
		{Name: "STATUS"},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders an employee record to a row
func (e *Employee) Render(o any, row *model1.Row) error {
	rec, err := asRecord(o)
	if err != nil {
		return err
	}

	fields := rec.GetFields()
	row.ID = rec.GetID()
	row.Fields = model1.Fields{
		rec.GetID(),
		NA(rec.GetName()),
		Missing(strField(fields, "nip")),
		Missing(strField(fields, "position")),
		Gender(strField(fields, "gender")),
		Missing(strField(fields, "phone")),
		Missing(strField(fields, "email")),
		NA(strField(fields, "status")),
		ToAge(rec.GetCreatedAt()),
	}
	return nil
}

// ColorerFunc colors employees by employment status
func (e *Employee) ColorerFunc() model1.ColorerFunc {
	return func(h model1.Header, re *model1.RowEvent) tcell.Color {
		idx, ok := h.IndexOf("STATUS", true)
		if !ok || idx >= len(re.Row.Fields) {
			return model1.DefaultColorer(h, re)
		}

		switch re.Row.Fields[idx] {
		case StatusActive:
			return model1.StdColor
		case StatusOnLeave:
			return model1.PendingColor
		case StatusInactive:
			return model1.KillColor
		default:
			return model1.DefaultColorer(h, re)
		}
	}
}
