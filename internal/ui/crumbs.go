package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Crumbs represents user breadcrumbs.
type Crumbs struct {
	*tview.TextView

	crumbs []string
}

// NewCrumbs returns a new breadcrumb view.
func NewCrumbs() *Crumbs {
	c := &Crumbs{
		TextView: tview.NewTextView(),
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextAlign(tview.AlignLeft)
	c.SetBorderPadding(0, 0, 1, 1)
	c.SetDynamicColors(true)

	return c
}

// StackPushed indicates a new item was added.
func (c *Crumbs) StackPushed(comp Component) {
	c.crumbs = append(c.crumbs, comp.Name())
	c.refresh()
}

// StackPopped indicates an item was deleted.
func (c *Crumbs) StackPopped(_, _ Component) {
	if len(c.crumbs) > 0 {
		c.crumbs = c.crumbs[:len(c.crumbs)-1]
	}
	c.refresh()
}

// StackTop indicates the top of the stack.
func (*Crumbs) StackTop(Component) {}

// refresh updates view with the current crumbs.
func (c *Crumbs) refresh() {
	c.Clear()
	last := len(c.crumbs) - 1

	for i, crumb := range c.crumbs {
		if i == last {
			// Active crumb - bright yellow
			_, _ = fmt.Fprintf(c, "[yellow:black:b] <%s> [-:-:-] ",
				strings.ReplaceAll(strings.ToLower(crumb), " ", ""))
		} else {
			// Inactive crumb - dim
			_, _ = fmt.Fprintf(c, "[gray::-] <%s> [-:-:-] ",
				strings.ReplaceAll(strings.ToLower(crumb), " ", ""))
		}
	}
}
