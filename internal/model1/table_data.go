package model1

import "sync"

// TableData tracks one fetched collection for tabular display.
type TableData struct {
	header    Header
	rowEvents *RowEvents
	source    string
	errMsg    string
	mx        sync.RWMutex
}

// NewTableData returns a new table.
func NewTableData() *TableData {
	return &TableData{
		rowEvents: NewRowEvents(10),
	}
}

// Header returns the table header.
func (t *TableData) Header() Header {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.header
}

// SetHeader sets the table header.
func (t *TableData) SetHeader(h Header) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.header = h
}

// RowEvents returns the row events.
func (t *TableData) RowEvents() *RowEvents {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents
}

// Source returns the data source label (server profile).
func (t *TableData) Source() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.source
}

// SetSource sets the data source label.
func (t *TableData) SetSource(src string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.source = src
}

// Empty returns true if no data is available.
func (t *TableData) Empty() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents.Empty()
}

// RowCount returns the number of rows.
func (t *TableData) RowCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents.Count()
}

// Clone returns a shallow copy of the table data.
func (t *TableData) Clone() *TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return &TableData{
		header:    t.header,
		rowEvents: t.rowEvents,
		source:    t.source,
		errMsg:    t.errMsg,
	}
}

// SetError sets an error message to display instead of data.
func (t *TableData) SetError(msg string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.errMsg = msg
}

// Error returns the error message, if any.
func (t *TableData) Error() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.errMsg
}

// HasError returns true if there's an error message.
func (t *TableData) HasError() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.errMsg != ""
}

// Filter returns a new TableData narrowed to the rows accepted by the given
// filter. The receiver is left untouched.
func (t *TableData) Filter(f Filter) *TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()

	out := NewTableData()
	out.SetHeader(t.header)
	out.SetSource(t.source)

	t.rowEvents.Range(func(_ int, re RowEvent) bool {
		if f.Match(t.header, re.Row) {
			out.RowEvents().Add(re)
		}
		return true
	})

	return out
}

// Sort orders the rows by the named column. Unknown columns leave the data
// unchanged.
func (t *TableData) Sort(colName string, ascending bool) {
	t.mx.Lock()
	defer t.mx.Unlock()

	col, ok := t.header.IndexOf(colName, true)
	if !ok {
		return
	}
	t.rowEvents.Sort(col, t.header.IsTimeCol(col), t.header.IsNumericCol(col), ascending)
}
