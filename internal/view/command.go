package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/sigap/sigap/internal/config"
	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/ui"
)

// recordGroups defines the valid record groups.
var recordGroups = map[string]bool{
	"case":    true,
	"staff":   true,
	"program": true,
}

// Command handles user command interpretation and execution.
type Command struct {
	app     *App
	aliases *config.Aliases
}

// NewCommand creates a new command interpreter.
func NewCommand(app *App) *Command {
	return &Command{
		app:     app,
		aliases: config.NewAliases(),
	}
}

// Init loads user-defined aliases on top of the defaults.
func (c *Command) Init() error {
	if config.AppAliasesFile != "" {
		if err := c.aliases.Load(config.AppAliasesFile); err != nil {
			return fmt.Errorf("failed to load aliases: %w", err)
		}
	}
	return nil
}

// Run parses and executes a command.
func (c *Command) Run(cmd string) error {
	if cmd == "" {
		return c.defaultCmd()
	}

	cmd = strings.TrimPrefix(cmd, ":")
	cmd = strings.TrimSpace(cmd)

	cmdName, _ := c.parseCommand(cmd)
	cmdName = c.resolveAlias(cmdName)

	switch cmdName {
	case "dashboard", "ringkasan":
		return c.dashboardCmd()
	case "help", "bantuan":
		c.app.showHelp()
		return nil
	case "quit", "q", "keluar":
		c.app.Stop()
		return nil
	default:
		return c.resourceCmd(cmdName)
	}
}

// defaultCmd executes the configured startup view.
func (c *Command) defaultCmd() error {
	view := config.DefaultView
	if c.app.Config() != nil && c.app.Config().Sigap != nil {
		view = c.app.Config().Sigap.DefaultView
	}
	return c.Run(view)
}

// dashboardCmd shows the aggregate metrics view.
func (c *Command) dashboardCmd() error {
	if c.app.Content.Current() == "dashboard" {
		return nil
	}

	view := NewDashboard()
	view.SetApp(c.app)
	view.SetFactory(c.app.GetFactory())

	if err := view.Init(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize dashboard: %w", err)
	}

	c.app.Content.Push(view)
	c.app.SetFocus(view)
	view.Start()
	return nil
}

// resourceCmd navigates to a record browser.
func (c *Command) resourceCmd(rid string) error {
	group, resource, ok := strings.Cut(rid, "/")
	if !ok || resource == "" {
		return fmt.Errorf("unknown command: %s", rid)
	}
	if !recordGroups[group] {
		return fmt.Errorf("unknown record group: %s", group)
	}

	resourceID := &dao.ResourceID{Group: group, Resource: resource}
	if _, ok := dao.APIPath(resourceID); !ok {
		return fmt.Errorf("unknown record type: %s", rid)
	}
	if c.app.Content.Current() == resourceID.String() {
		return nil
	}

	browser := NewBrowser(resourceID)
	browser.SetApp(c.app)
	if c.app.GetFactory() != nil {
		browser.SetFactory(c.app.GetFactory())
	}
	browser.SetPushFn(func(comp ui.Component) {
		c.app.Content.Push(comp)
		c.app.SetFocus(comp)
	})
	browser.SetPopFn(func() {
		c.app.Content.Pop()
	})

	if err := browser.Init(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize view: %w", err)
	}

	c.app.Flash().Infof("Membuka %s...", rid)
	c.app.Content.Push(browser)
	c.app.SetFocus(browser)
	browser.Start()

	return nil
}

// parseCommand parses a command string into command name and arguments.
func (c *Command) parseCommand(cmd string) (string, []string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

// resolveAlias resolves a command alias to its full form.
func (c *Command) resolveAlias(cmd string) string {
	if target, ok := c.aliases.Get(cmd); ok {
		return target
	}
	return cmd
}
