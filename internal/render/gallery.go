package render

import (
	"github.com/sigap/sigap/internal/model1"
)

// Gallery renders program activity photos
type Gallery struct {
	Base
}

// Header returns the gallery table header
func (g *Gallery) Header() model1.Header {
	return model1.Header{
		{Name: "ID"},
		{Name: "TITLE"},
		{Name: "BUSINESS", Attrs: model1.Attrs{Wide: true}},
		{Name: "CAPTION", Attrs: model1.Attrs{Wide: true}},
		{Name: "FILE"},
		{Name: "SIZE", Attrs: model1.Attrs{Numeric: true}},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a gallery record to a row
func (g *Gallery) Render(o any, row *model1.Row) error {
	rec, err := asRecord(o)
	if err != nil {
		return err
	}

	fields := rec.GetFields()
	row.ID = rec.GetID()
	row.Fields = model1.Fields{
		rec.GetID(),
		NA(rec.GetName()),
		Missing(strField(fields, "businessId")),
		Truncate(strField(fields, "caption"), 40),
		Missing(strField(fields, "filename")),
		FormatSize(fields["fileSize"]),
		ToAge(rec.GetCreatedAt()),
	}
	return nil
}
