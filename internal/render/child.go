package render

import (
	"github.com/derailed/tcell/v2"
	"github.com/sigap/sigap/internal/model1"
)

// Child renders children under case management
type Child struct {
	Base
}

// Header returns the child table header
func (c *Child) Header() model1.Header {
	return model1.Header{
		{Name: "ID"},
		{Name: "NAME"},
		{Name: "GENDER"},
		{Name: "BIRTH-DATE", Attrs: model1.Attrs{Wide: true}},
		{Name: "FAMILY"},
		{Name: "SCHOOL", Attrs: model1.Attrs{Wide: true}},
		{Name: "GRADE", Attrs: model1.Attrs{Wide: true}},
		{Name: "STATUS"},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a child record to a row
func (c *Child) Render(o any, row *model1.Row) error {
	rec, err := asRecord(o)
	if err != nil {
		return err
	}

	fields := rec.GetFields()
	row.ID = rec.GetID()
	row.Fields = model1.Fields{
		rec.GetID(),
		NA(rec.GetName()),
		Gender(strField(fields, "gender")),
		Missing(strField(fields, "birthDate")),
		Missing(strField(fields, "familyId")),
		Missing(strField(fields, "schoolName")),
		Missing(strField(fields, "grade")),
		NA(strField(fields, "schoolStatus")),
		ToAge(rec.GetCreatedAt()),
	}
	return nil
}

// ColorerFunc colors children by school status
func (c *Child) ColorerFunc() model1.ColorerFunc {
	return func(h model1.Header, re *model1.RowEvent) tcell.Color {
		idx, ok := h.IndexOf("STATUS", true)
		if !ok || idx >= len(re.Row.Fields) {
			return model1.DefaultColorer(h, re)
		}

		switch re.Row.Fields[idx] {
		case "sekolah":
			return model1.StdColor
		case "putus":
			return model1.ErrColor
		case "lulus":
			return model1.CompletedColor
		default:
			return model1.DefaultColorer(h, re)
		}
	}
}
