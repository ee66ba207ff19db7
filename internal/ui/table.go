package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/model1"
)

const (
	// TitleFmt formats the table title with resource, server, count and page.
	TitleFmt = " <%s>[%s][%d] %d/%d "

	// DefaultPageSize is the number of rows shown per page.
	DefaultPageSize = 25
)

// Table displays one record collection with filtering, sorting and paging.
type Table struct {
	*SelectTable

	resourceID  *dao.ResourceID
	actions     *KeyActions
	header      model1.Header
	sortColName string
	sortAsc     bool
	filterText  string
	colorerFn   model1.ColorerFunc
	page        int
	pageSize    int
	fullData    *model1.TableData
	isUpdating  bool
	mx          sync.RWMutex
}

// NewTable returns a new table instance.
func NewTable(rid *dao.ResourceID) *Table {
	return &Table{
		SelectTable: &SelectTable{
			Table: tview.NewTable(),
			marks: make(map[string]struct{}),
		},
		resourceID: rid,
		actions:    NewKeyActions(),
		page:       1,
		pageSize:   DefaultPageSize,
		sortAsc:    true,
	}
}

// Init initializes the table component.
func (t *Table) Init(ctx context.Context) error {
	t.SetFixed(1, 0)
	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetSelectable(true, false)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetBorderColor(tcell.ColorWhite)
	t.Select(1, 0)

	if t.resourceID != nil {
		t.SetTitle(fmt.Sprintf(" <%s>[-][0] ", t.resourceID.String()))
	}
	t.showNoData("Memuat data...")

	t.SetInputCapture(t.keyboard)
	t.bindKeys()
	return nil
}

// keyboard handles table keyboard input.
func (t *Table) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	key := evt.Key()
	row, col := t.GetSelection()
	rowCount := t.GetRowCount()

	if key == tcell.KeyRune {
		switch evt.Rune() {
		case 'j':
			if row < rowCount-1 {
				t.Select(row+1, col)
			}
			return nil
		case 'k':
			if row > 1 {
				t.Select(row-1, col)
			}
			return nil
		case 'g':
			if rowCount > 1 {
				t.Select(1, col)
			}
			return nil
		case 'G':
			if rowCount > 1 {
				t.Select(rowCount-1, col)
			}
			return nil
		}
	}

	switch key {
	case tcell.KeyDown:
		if row < rowCount-1 {
			t.Select(row+1, col)
		}
		return nil
	case tcell.KeyUp:
		if row > 1 {
			t.Select(row-1, col)
		}
		return nil
	case tcell.KeyHome:
		if rowCount > 1 {
			t.Select(1, col)
		}
		return nil
	case tcell.KeyEnd:
		if rowCount > 1 {
			t.Select(rowCount-1, col)
		}
		return nil
	case tcell.KeyPgDn:
		t.NextPage()
		return nil
	case tcell.KeyPgUp:
		t.PrevPage()
		return nil
	}

	actionKey := key
	if key == tcell.KeyRune {
		actionKey = tcell.Key(evt.Rune())
	}
	if action, ok := t.actions.Get(actionKey); ok {
		return action.Action(evt)
	}

	return evt
}

// bindKeys sets up common table key bindings. Filtering is driven from the
// app command bar via SetFilterText.
func (t *Table) bindKeys() {
	t.actions.Bulk(KeyMap{
		tcell.KeyCtrlS: NewKeyAction("Sort", t.sortHandler, true),
		KeySpace:       NewKeyAction("Mark", t.markHandler, false),
	})
}

// sortHandler cycles the sort column, flipping direction on wrap.
func (t *Table) sortHandler(*tcell.EventKey) *tcell.EventKey {
	t.mx.Lock()
	if len(t.header) == 0 {
		t.mx.Unlock()
		return nil
	}

	currentIdx := -1
	for i, col := range t.header {
		if col.Name == t.sortColName {
			currentIdx = i
			break
		}
	}

	nextIdx := (currentIdx + 1) % len(t.header)
	if nextIdx == 0 && currentIdx == len(t.header)-1 {
		t.sortAsc = !t.sortAsc
	}
	t.sortColName = t.header[nextIdx].Name
	t.mx.Unlock()

	t.applyFilter()
	return nil
}

// markHandler toggles the mark on the selected row.
func (t *Table) markHandler(*tcell.EventKey) *tcell.EventKey {
	t.ToggleMark()
	t.applyFilter()
	return nil
}

// SetModel sets the table data model.
func (t *Table) SetModel(m Tabular) {
	t.mx.Lock()
	defer t.mx.Unlock()

	if t.model != nil {
		t.model.RemoveListener(t)
	}
	t.model = m
	t.SelectTable.SetModel(m)
	if m != nil {
		m.AddListener(t)
	}
}

// ResourceID returns the resource identifier.
func (t *Table) ResourceID() *dao.ResourceID {
	return t.resourceID
}

// Actions returns the key actions.
func (t *Table) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings.
func (t *Table) Hints() MenuHints {
	return t.actions.Hints()
}

// FilterText returns the current filter expression.
func (t *Table) FilterText() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.filterText
}

// SetFilterText sets the filter expression and resets paging.
func (t *Table) SetFilterText(f string) {
	t.mx.Lock()
	t.filterText = f
	t.page = 1
	t.mx.Unlock()
	t.applyFilter()
}

// SetColorerFn sets the row colorer.
func (t *Table) SetColorerFn(fn model1.ColorerFunc) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.colorerFn = fn
}

// SetPageSize sets the number of rows per page.
func (t *Table) SetPageSize(n int) {
	if n <= 0 {
		n = DefaultPageSize
	}
	t.mx.Lock()
	t.pageSize = n
	t.page = 1
	t.mx.Unlock()
}

// Page returns the current page, 1-based.
func (t *Table) Page() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.page
}

// NextPage advances to the next page.
func (t *Table) NextPage() {
	t.mx.Lock()
	t.page++
	t.mx.Unlock()
	t.applyFilter()
}

// PrevPage steps back one page.
func (t *Table) PrevPage() {
	t.mx.Lock()
	if t.page > 1 {
		t.page--
	}
	t.mx.Unlock()
	t.applyFilter()
}

// ViewData returns the filtered, sorted table data (all pages).
func (t *Table) ViewData() *model1.TableData {
	t.mx.RLock()
	data := t.fullData
	filter := t.filterText
	sortCol, sortAsc := t.sortColName, t.sortAsc
	t.mx.RUnlock()

	if data == nil {
		return model1.NewTableData()
	}

	out := data.Filter(model1.ParseFilter(filter))
	if sortCol != "" {
		out.Sort(sortCol, sortAsc)
	}
	return out
}

// applyFilter re-renders from the full data through filter, sort and paging.
func (t *Table) applyFilter() {
	t.renderData(t.ViewData())
}

// renderData renders one page of the given data to the table.
func (t *Table) renderData(data *model1.TableData) {
	if data == nil || data.Empty() {
		t.showNoData("Tidak ada data")
		t.updateTitle()
		return
	}

	total := data.RowCount()
	t.mx.Lock()
	pages := (total + t.pageSize - 1) / t.pageSize
	if t.page > pages {
		t.page = pages
	}
	if t.page < 1 {
		t.page = 1
	}
	start := (t.page - 1) * t.pageSize
	end := start + t.pageSize
	if end > total {
		end = total
	}
	t.mx.Unlock()

	t.Clear()
	t.buildHeader(data.Header())

	rowIdx := 1
	data.RowEvents().Range(func(idx int, re model1.RowEvent) bool {
		if idx < start {
			return true
		}
		if idx >= end {
			return false
		}
		t.buildRow(re, data.Header(), rowIdx)
		rowIdx++
		return true
	})

	t.updateTitle()

	if t.GetRowCount() > 1 {
		t.Select(1, 0)
	}
}

// buildHeader builds the table header row.
func (t *Table) buildHeader(header model1.Header) {
	t.mx.Lock()
	t.header = header
	sortCol, sortAsc := t.sortColName, t.sortAsc
	t.mx.Unlock()

	col := 0
	for _, h := range header {
		if h.Hide {
			continue
		}
		cell := tview.NewTableCell(h.Name)
		cell.SetTextColor(tcell.ColorYellow)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(h.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)

		if h.Name == sortCol {
			marker := " ▲"
			if !sortAsc {
				marker = " ▼"
			}
			cell.SetText(h.Name + marker)
			cell.SetAttributes(tcell.AttrBold)
		}

		t.SetCell(0, col, cell)
		col++
	}
}

// buildRow builds a single data row.
func (t *Table) buildRow(re model1.RowEvent, header model1.Header, rowIdx int) {
	marked := t.IsMarked(re.Row.ID)

	t.mx.RLock()
	colorerFn := t.colorerFn
	t.mx.RUnlock()
	color := tcell.ColorWhite
	if colorerFn != nil {
		color = colorerFn(header, &re)
	}

	col := 0
	for i, field := range re.Row.Fields {
		if i >= len(header) {
			break
		}
		if header[i].Hide {
			continue
		}

		cell := tview.NewTableCell(field)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(header[i].Align)
		cell.SetExpansion(1)
		cell.SetTextColor(color)
		if marked {
			cell.SetAttributes(tcell.AttrDim | tcell.AttrUnderline)
		}

		if col == 0 {
			cell.SetReference(re.Row.ID)
		}

		t.SetCell(rowIdx, col, cell)
		col++
	}
}

// showNoData displays a message when there's no data.
func (t *Table) showNoData(msg string) {
	t.Clear()
	cell := tview.NewTableCell(msg)
	cell.SetTextColor(tcell.ColorGray)
	cell.SetAlign(tview.AlignCenter)
	cell.SetSelectable(false)
	t.SetCell(0, 0, cell)
}

// updateTitle refreshes the border title with source, count and paging.
func (t *Table) updateTitle() {
	t.mx.RLock()
	data := t.fullData
	filter := t.filterText
	page, pageSize := t.page, t.pageSize
	t.mx.RUnlock()

	source := "-"
	count := 0
	if data != nil {
		if s := data.Source(); s != "" {
			source = s
		}
		count = t.ViewData().RowCount()
	}

	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}

	title := fmt.Sprintf(TitleFmt, t.resourceID.String(), source, count, page, pages)
	if filter != "" {
		title = fmt.Sprintf(" <%s>[%s][%d] /%s ", t.resourceID.String(), source, count, filter)
	}
	t.SetTitle(title)
}

// UpdateUI updates the table display from fresh model data.
func (t *Table) UpdateUI(data *model1.TableData) {
	t.mx.Lock()
	if t.isUpdating {
		t.mx.Unlock()
		return
	}
	t.isUpdating = true
	t.fullData = data
	t.mx.Unlock()

	defer func() {
		t.mx.Lock()
		t.isUpdating = false
		t.mx.Unlock()
	}()

	if data == nil || data.Empty() {
		t.showNoData("Tidak ada data")
		t.updateTitle()
		return
	}

	t.applyFilter()
}

// TableDataChanged implements model.TableListener.
func (t *Table) TableDataChanged(data *model1.TableData) {
	t.UpdateUI(data)
}

// TableLoadFailed implements model.TableListener.
func (t *Table) TableLoadFailed(err error) {
	t.showNoData(fmt.Sprintf("Error: %v", err))
	t.SetTitle(fmt.Sprintf(" <%s>[error] ", t.resourceID.String()))
}

// TableNoData implements model.TableListener.
func (t *Table) TableNoData(data *model1.TableData) {
	t.mx.Lock()
	t.fullData = data
	t.mx.Unlock()
	t.showNoData("Tidak ada data")
	t.updateTitle()
}
