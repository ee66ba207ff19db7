package render

import (
	"fmt"

	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/model1"
)

// Base provides a base renderer implementation
type Base struct{}

// ColorerFunc returns the default colorer
func (*Base) ColorerFunc() model1.ColorerFunc {
	return model1.DefaultColorer
}

// asRecord asserts the rendered object is a dao.Record.
func asRecord(o any) (dao.Record, error) {
	rec, ok := o.(dao.Record)
	if !ok {
		return nil, fmt.Errorf("expected dao.Record, got %T", o)
	}
	return rec, nil
}
