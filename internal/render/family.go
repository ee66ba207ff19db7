package render

import (
	"github.com/derailed/tcell/v2"
	"github.com/sigap/sigap/internal/model1"
)

// Family renders beneficiary families
type Family struct {
	Base
}

// Header returns the family table header
func (f *Family) Header() model1.Header {
	return model1.Header{
		{Name: "ID"},
		{Name: "HEAD"},
		{Name: "NIK", Attrs: model1.Attrs{Wide: true}},
		{Name: "VILLAGE"},
		{Name: "CHILDREN", Attrs: model1.Attrs{Numeric: true}},
		{Name: "INCOME", Attrs: model1.Attrs{Numeric: true, Export: ExportDigits}},
		{Name: "PHONE", Attrs: model1.Attrs{Wide: true}},
		{Name: "STATUS"},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a family record to a row
func (f *Family) Render(o any, row *model1.Row) error {
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
		Missing(strField(fields, "village")),
		countField(fields, "children"),
		FormatRupiah(fields["monthlyIncome"]),
		Missing(strField(fields, "phone")),
		NA(strField(fields, "status")),
		ToAge(rec.GetCreatedAt()),
	}
	return nil
}

// ColorerFunc colors families by assistance status
func (f *Family) ColorerFunc() model1.ColorerFunc {
	return statusColorer
}

// statusColorer colors rows by their STATUS column value.
func statusColorer(h model1.Header, re *model1.RowEvent) tcell.Color {
	statusIdx, ok := h.IndexOf("STATUS", true)
	if !ok || statusIdx >= len(re.Row.Fields) {
		return model1.DefaultColorer(h, re)
	}

	switch re.Row.Fields[statusIdx] {
	case StatusActive:
		return model1.StdColor
	case StatusGraduated:
		return model1.CompletedColor
	case StatusPending:
		return model1.PendingColor
	case StatusDropped, StatusInactive:
		return model1.KillColor
	default:
		return model1.DefaultColorer(h, re)
	}
}
