package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/ui"
)

// describer is satisfied by DAOs that can serialize one record.
type describer interface {
	Describe(ctx context.Context, id string) (string, error)
	ToJSON(ctx context.Context, id string) (string, error)
}

// Describe displays the full decoded document of one record.
type Describe struct {
	*tview.TextView

	resourceID *dao.ResourceID
	factory    dao.Factory
	recordID   string
	format     string
	content    string
	actions    *ui.KeyActions
	backFn     func()
	wrapOn     bool
	app        *App
}

// NewDescribe creates a new record detail view.
func NewDescribe(rid *dao.ResourceID) *Describe {
	d := &Describe{
		TextView:   tview.NewTextView(),
		resourceID: rid,
		format:     "yaml",
		actions:    ui.NewKeyActions(),
	}

	d.SetDynamicColors(true)
	d.SetWrap(false)
	d.SetWordWrap(false)
	d.SetScrollable(true)
	d.SetBorder(true)
	d.SetBorderPadding(0, 0, 1, 1)
	d.SetBorderColor(tcell.ColorAqua)

	return d
}

// Init initializes the describe view.
func (d *Describe) Init(ctx context.Context) error {
	d.bindKeys()
	d.SetInputCapture(d.keyboard)
	return nil
}

// Start starts the describe view.
func (d *Describe) Start() {
	d.Refresh()
}

// Stop stops the describe view.
func (d *Describe) Stop() {
	d.Clear()
}

// Name returns the view name.
func (d *Describe) Name() string {
	return "describe"
}

// Hints returns the menu hints for this view.
func (d *Describe) Hints() ui.MenuHints {
	return d.actions.Hints()
}

// SetFactory sets the API factory for fetching data.
func (d *Describe) SetFactory(f dao.Factory) {
	d.factory = f
}

// SetRecordID sets the record to describe.
func (d *Describe) SetRecordID(id string) {
	d.recordID = id
	d.updateTitle()
}

// SetBackFn sets the callback for back navigation.
func (d *Describe) SetBackFn(fn func()) {
	d.backFn = fn
}

// SetApp sets the application instance.
func (d *Describe) SetApp(app *App) {
	d.app = app
}

// Refresh reloads the record content.
func (d *Describe) Refresh() {
	d.Clear()

	if d.recordID == "" {
		d.SetText("[red::]Tidak ada data terpilih[-::]")
		return
	}

	if err := d.fetchContent(); err != nil {
		d.SetText(fmt.Sprintf("[red::]Gagal memuat data: %v[-::]", err))
		return
	}

	if d.format == "yaml" {
		d.SetText(highlightYAML(d.content))
	} else {
		d.SetText(d.content)
	}
	d.updateTitle()
	d.ScrollToBeginning()
}

// fetchContent retrieves the serialized record through the DAO.
func (d *Describe) fetchContent() error {
	if d.factory == nil {
		return fmt.Errorf("no factory available")
	}

	accessor, err := dao.AccessorFor(d.factory, d.resourceID)
	if err != nil {
		return err
	}

	desc, ok := accessor.(describer)
	if !ok {
		return fmt.Errorf("detail not supported for %s", d.resourceID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if d.format == "json" {
		d.content, err = desc.ToJSON(ctx, d.recordID)
	} else {
		d.content, err = desc.Describe(ctx, d.recordID)
	}
	return err
}

// bindKeys sets up key bindings for the view.
func (d *Describe) bindKeys() {
	d.actions.Clear()
	d.actions.Bulk(ui.KeyMap{
		ui.KeyY:      ui.NewKeyAction("YAML/JSON", d.toggleFormat, true),
		ui.KeyW:      ui.NewKeyAction("Wrap", d.toggleWrap, true),
		ui.KeyE:      ui.NewKeyAction("Ubah", d.edit, true),
		tcell.KeyEsc: ui.NewKeyAction("Kembali", d.backCmd, true),
		ui.KeyQ:      ui.NewKeyAction("Kembali", d.backCmd, false),
	})
}

// toggleFormat switches between YAML and JSON output.
func (d *Describe) toggleFormat(*tcell.EventKey) *tcell.EventKey {
	if d.format == "yaml" {
		d.format = "json"
	} else {
		d.format = "yaml"
	}
	d.Refresh()
	return nil
}

// toggleWrap toggles word wrap on/off.
func (d *Describe) toggleWrap(*tcell.EventKey) *tcell.EventKey {
	d.wrapOn = !d.wrapOn
	d.SetWrap(d.wrapOn)
	d.SetWordWrap(d.wrapOn)
	return nil
}

// keyboard handles keyboard input.
func (d *Describe) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt == nil {
		return nil
	}

	switch evt.Key() {
	case tcell.KeyDown:
		row, _ := d.GetScrollOffset()
		d.ScrollTo(row+1, 0)
		return nil
	case tcell.KeyUp:
		row, _ := d.GetScrollOffset()
		if row > 0 {
			d.ScrollTo(row-1, 0)
		}
		return nil
	case tcell.KeyPgDn:
		row, _ := d.GetScrollOffset()
		d.ScrollTo(row+20, 0)
		return nil
	case tcell.KeyPgUp:
		row, _ := d.GetScrollOffset()
		if row > 20 {
			d.ScrollTo(row-20, 0)
		} else {
			d.ScrollTo(0, 0)
		}
		return nil
	case tcell.KeyHome:
		d.ScrollToBeginning()
		return nil
	case tcell.KeyEnd:
		d.ScrollToEnd()
		return nil
	}

	if evt.Key() == tcell.KeyRune {
		row, _ := d.GetScrollOffset()
		switch evt.Rune() {
		case 'j':
			d.ScrollTo(row+1, 0)
			return nil
		case 'k':
			if row > 0 {
				d.ScrollTo(row-1, 0)
			}
			return nil
		case 'g':
			d.ScrollToBeginning()
			return nil
		case 'G':
			d.ScrollToEnd()
			return nil
		}
	}

	key := evt.Key()
	if key == tcell.KeyRune {
		key = tcell.Key(evt.Rune())
	}

	if action, ok := d.actions.Get(key); ok {
		return action.Action(evt)
	}

	return evt
}

// backCmd handles going back to the previous view.
func (d *Describe) backCmd(*tcell.EventKey) *tcell.EventKey {
	if d.backFn != nil {
		d.backFn()
	}
	return nil
}

// edit opens the record in the editor.
func (d *Describe) edit(*tcell.EventKey) *tcell.EventKey {
	if d.app == nil || d.factory == nil || d.recordID == "" {
		return nil
	}
	if d.app.ReadOnly() {
		d.app.Flash().Warn("Mode baca saja, ubah dinonaktifkan")
		return nil
	}

	err := EditRecord(context.Background(), d.app.Application, d.factory, d.resourceID, d.recordID)
	switch {
	case err == nil:
		d.app.Flash().Infof("Berhasil memperbarui %s", d.recordID)
		d.Refresh()
	case err == ErrEditorCancelled:
		d.app.Flash().Info("Ubah dibatalkan")
	case err == ErrNoChanges:
		d.app.Flash().Info("Tidak ada perubahan")
	default:
		d.app.Flash().Errf("Ubah gagal: %v", err)
	}
	return nil
}

// updateTitle updates the view title with current context.
func (d *Describe) updateTitle() {
	format := strings.ToUpper(d.format)
	d.SetTitle(fmt.Sprintf(" %s/%s [%s] ", d.resourceID.String(), d.recordID, format))
}

// highlightYAML applies syntax highlighting to YAML content.
func highlightYAML(content string) string {
	var result strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if line == "" {
			result.WriteString("\n")
			continue
		}

		colonIdx := strings.Index(line, ":")
		if colonIdx <= 0 {
			result.WriteString(line + "\n")
			continue
		}

		key := line[:colonIdx+1]
		value := ""
		if colonIdx+1 < len(line) {
			value = line[colonIdx+1:]
		}

		indent := ""
		keyStart := 0
		for i, ch := range key {
			if ch == ' ' || ch == '-' {
				indent += string(ch)
				keyStart = i + 1
			} else {
				break
			}
		}
		actualKey := key[keyStart:]

		if strings.TrimSpace(value) == "" {
			fmt.Fprintf(&result, "%s[aqua::]%s[-::]\n", indent, actualKey)
		} else {
			fmt.Fprintf(&result, "%s[aqua::]%s[-::] %s\n", indent, actualKey, colorizeValue(strings.TrimSpace(value)))
		}
	}
	return result.String()
}

// colorizeValue applies color based on value type, using the derailed/tview
// tag format [fg:bg:attrs]text[-::-].
func colorizeValue(value string) string {
	trimmed := strings.Trim(value, "\"'")

	switch trimmed {
	case "true", "True", "ya", "Ya":
		return "[green::]" + value + "[-::]"
	case "false", "False", "tidak", "Tidak":
		return "[red::]" + value + "[-::]"
	case "null", "nil", "~":
		return "[gray::]" + value + "[-::]"
	}

	if _, err := fmt.Sscanf(trimmed, "%f", new(float64)); err == nil {
		return "[fuchsia::]" + value + "[-::]"
	}

	switch strings.ToLower(trimmed) {
	case "aktif", "sekolah", "lulus":
		return "[green::]" + value + "[-::]"
	case "keluar", "nonaktif", "putus":
		return "[red::]" + value + "[-::]"
	case "cuti", "pending":
		return "[yellow::]" + value + "[-::]"
	}

	return value
}
