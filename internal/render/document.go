package render

import (
	"github.com/sigap/sigap/internal/model1"
)

// Document renders supporting documents
type Document struct {
	Base
}

// Header returns the document table header
func (d *Document) Header() model1.Header {
	return model1.Header{
		{Name: "ID"},
		{Name: "TITLE"},
		{Name: "OWNER"},
		{Name: "TYPE"},
		{Name: "FILE", Attrs: model1.Attrs{Wide: true}},
		{Name: "SIZE", Attrs: model1.Attrs{Numeric: true}},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a document record to a row
func (d *Document) Render(o any, row *model1.Row) error {
	rec, err := asRecord(o)
	if err != nil {
		return err
	}

	fields := rec.GetFields()
	row.ID = rec.GetID()
	row.Fields = model1.Fields{
		rec.GetID(),
		NA(rec.GetName()),
		Missing(strField(fields, "ownerId")),
		Missing(strField(fields, "docType")),
		Missing(strField(fields, "filename")),
		FormatSize(fields["fileSize"]),
		ToAge(rec.GetCreatedAt()),
	}
	return nil
}
