package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/derailed/tview"
)

// fakeComponent tracks lifecycle calls from the page stack.
type fakeComponent struct {
	*tview.Box

	name   string
	hints  MenuHints
	starts int
	stops  int
}

func newFakeComponent(name string, hints MenuHints) *fakeComponent {
	return &fakeComponent{Box: tview.NewBox(), name: name, hints: hints}
}

func (f *fakeComponent) Name() string               { return f.name }
func (f *fakeComponent) Init(context.Context) error { return nil }
func (f *fakeComponent) Start()                     { f.starts++ }
func (f *fakeComponent) Stop()                      { f.stops++ }
func (f *fakeComponent) Hints() MenuHints           { return f.hints }

func TestPagesStopsDisplacedComponent(t *testing.T) {
	p := NewPages()

	families := newFakeComponent("case/family", nil)
	visits := newFakeComponent("program/visit", nil)

	p.Push(families)
	if families.stops != 0 {
		t.Fatalf("fresh component should not be stopped, got %d", families.stops)
	}

	p.Push(visits)
	if families.stops != 1 {
		t.Errorf("displaced component should be stopped once, got %d", families.stops)
	}
	if got := p.Current(); got != "program/visit" {
		t.Errorf("expected program/visit on top, got %q", got)
	}

	p.Pop()
	if visits.stops != 1 {
		t.Errorf("popped component should be stopped, got %d", visits.stops)
	}
	if families.starts != 1 {
		t.Errorf("revealed component should be restarted, got %d", families.starts)
	}
	if got := p.Current(); got != "case/family" {
		t.Errorf("expected case/family back on top, got %q", got)
	}
}

func TestMenuHydratesOnPush(t *testing.T) {
	p := NewPages()
	menu := NewMenu()
	p.AddListener(menu)

	hints := MenuHints{
		{Mnemonic: "ctrl-d", Description: "Hapus", Visible: true},
		{Mnemonic: "e", Description: "Ubah", Visible: true},
	}
	p.Push(newFakeComponent("case/family", hints))

	if menu.GetRowCount() == 0 {
		t.Fatal("menu should render hints after push")
	}
	var found bool
	for row := 0; row < menu.GetRowCount() && !found; row++ {
		for col := 0; col < menu.GetColumnCount(); col++ {
			if strings.Contains(menu.GetCell(row, col).Text, "Hapus") {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("menu should list the Hapus hint")
	}
}

func TestCrumbsFollowStack(t *testing.T) {
	p := NewPages()
	crumbs := NewCrumbs()
	p.AddListener(crumbs)

	p.Push(newFakeComponent("case/family", nil))
	p.Push(newFakeComponent("describe", nil))

	if got := crumbs.GetText(true); !strings.Contains(got, "case/family") || !strings.Contains(got, "describe") {
		t.Fatalf("crumbs should show the full trail, got %q", got)
	}

	p.Pop()
	if got := crumbs.GetText(true); strings.Contains(got, "describe") {
		t.Errorf("popped crumb should be gone, got %q", got)
	}
}
