package model1

import "github.com/derailed/tcell/v2"

const NAValue = "n/a"

// ResEvent represents a row event type
type ResEvent int

const (
	EventUnchanged ResEvent = 1 << iota
	EventAdd
	EventUpdate
)

// ExportFunc transforms a cell value for spreadsheet export.
type ExportFunc func(string) string

// ColorerFunc represents a row colorer
type ColorerFunc func(h Header, re *RowEvent) tcell.Color

// Renderer converts one fetched record into a table row.
type Renderer interface {
	Render(o any, row *Row) error
	Header() Header
	ColorerFunc() ColorerFunc
}
