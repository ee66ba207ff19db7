package model1

// Row represents a collection of columns
type Row struct {
	ID     string
	Fields Fields
}

func NewRow(size int) Row {
	return Row{Fields: make([]string, size)}
}

func (r Row) Clone() Row {
	return Row{
		ID:     r.ID,
		Fields: r.Fields.Clone(),
	}
}
