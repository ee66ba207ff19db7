package ui

import (
	"github.com/derailed/tview"
)

// Pages manages a stack of view components. It listens to its own stack:
// pushing stops the displaced component and shows the new one, popping
// restarts and reveals the one underneath. Other stack listeners (menu,
// crumbs) ride the same notifications.
type Pages struct {
	*tview.Pages
	*Stack
}

// NewPages returns a new pages manager.
func NewPages() *Pages {
	p := Pages{
		Pages: tview.NewPages(),
		Stack: NewStack(),
	}
	p.Stack.AddListener(&p)

	return &p
}

// Current returns the current page name.
func (p *Pages) Current() string {
	top := p.Top()
	if top == nil {
		return ""
	}
	return top.Name()
}

// CurrentPage returns the current page component.
func (p *Pages) CurrentPage() Component {
	return p.Top()
}

// StackSize returns the stack depth.
func (p *Pages) StackSize() int {
	return len(p.Flatten())
}

// StackPushed notifies a new component was pushed.
func (p *Pages) StackPushed(c Component) {
	p.AddPage(c.Name(), c, true, true)
	p.SwitchToPage(c.Name())
}

// StackPopped notifies a component was removed.
func (p *Pages) StackPopped(o, top Component) {
	p.RemovePage(o.Name())
	if top != nil {
		p.SwitchToPage(top.Name())
		top.Start()
	}
}

// StackTop notifies a new top component.
func (p *Pages) StackTop(top Component) {
	if top != nil {
		p.SwitchToPage(top.Name())
	}
}
