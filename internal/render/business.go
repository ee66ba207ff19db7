package render

import (
	"github.com/sigap/sigap/internal/model1"
)

// Business renders family micro-enterprises
type Business struct {
	Base
}

// Header returns the business table header
func (b *Business) Header() model1.Header {
	return model1.Header{
		{Name: "ID"},
		{Name: "NAME"},
		{Name: "CATEGORY"},
		{Name: "FAMILY"},
		{Name: "REVENUE", Attrs: model1.Attrs{Numeric: true, Export: ExportDigits}},
		{Name: "CAPITAL", Attrs: model1.Attrs{Numeric: true, Wide: true, Export: ExportDigits}},
		{Name: "STATUS"},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a business record to a row
func (b *Business) Render(o any, row *model1.Row) error {
	rec, err := asRecord(o)
	if err != nil {
		return err
	}

	fields := rec.GetFields()
	row.ID = rec.GetID()
	row.Fields = model1.Fields{
		rec.GetID(),
		NA(rec.GetName()),
		Missing(strField(fields, "category")),
		Missing(strField(fields, "familyId")),
		FormatRupiah(fields["monthlyRevenue"]),
		FormatRupiah(fields["startingCapital"]),
		NA(strField(fields, "status")),
		ToAge(rec.GetCreatedAt()),
	}
	return nil
}

// ColorerFunc colors businesses by operating status
func (b *Business) ColorerFunc() model1.ColorerFunc {
	return statusColorer
}
