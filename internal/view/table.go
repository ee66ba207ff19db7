package view

import (
	"context"

	"github.com/derailed/tcell/v2"

	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/render"
	"github.com/sigap/sigap/internal/ui"
)

// Table wraps ui.Table with view-layer functionality.
type Table struct {
	*ui.Table

	rid     *dao.ResourceID
	enterFn func(*tcell.EventKey) *tcell.EventKey
}

// NewTable creates a new table view.
func NewTable(rid *dao.ResourceID) *Table {
	return &Table{
		Table: ui.NewTable(rid),
		rid:   rid,
	}
}

// Init initializes the table view.
func (t *Table) Init(ctx context.Context) error {
	if err := t.Table.Init(ctx); err != nil {
		return err
	}
	if r, err := render.For(t.rid); err == nil {
		t.SetColorerFn(r.ColorerFunc())
	}

	t.bindKeys(t.Actions())
	return nil
}

// Start begins the table lifecycle.
func (t *Table) Start() {
	// Lifecycle hook - extended by Browser
}

// Stop ends the table lifecycle.
func (t *Table) Stop() {
	// Lifecycle hook - extended by Browser
}

// SetEnterFn sets the enter key handler.
func (t *Table) SetEnterFn(fn func(*tcell.EventKey) *tcell.EventKey) {
	t.enterFn = fn
}

// Name returns the resource ID as a string.
func (t *Table) Name() string {
	if t.rid == nil {
		return ""
	}
	return t.rid.String()
}

// GetResourceID returns the resource identifier.
func (t *Table) GetResourceID() *dao.ResourceID {
	return t.rid
}

// bindKeys adds view-specific key bindings.
func (t *Table) bindKeys(aa *ui.KeyActions) {
	if aa == nil {
		return
	}

	aa.Add(tcell.KeyEnter, ui.NewKeyAction("Detail", t.enterCmd, true))
}

// enterCmd handles the enter key event.
func (t *Table) enterCmd(evt *tcell.EventKey) *tcell.EventKey {
	if t.enterFn != nil {
		return t.enterFn(evt)
	}
	return nil
}
