package view

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/ui"
)

// metricLabels maps dashboard metric keys to display labels.
var metricLabels = map[string]string{
	"totalFamilies":   "Keluarga",
	"totalChildren":   "Anak",
	"totalGuardians":  "Wali",
	"totalEmployees":  "Pegawai",
	"totalSpouses":    "Pasangan",
	"totalBusinesses": "Usaha",
	"totalGalleries":  "Galeri",
	"totalVisits":     "Kunjungan",
	"totalDocuments":  "Dokumen",
}

// Dashboard displays aggregate record counts from the backend.
type Dashboard struct {
	*tview.Table

	app     *App
	factory dao.Factory
	actions *ui.KeyActions
}

// NewDashboard creates a new dashboard view.
func NewDashboard() *Dashboard {
	d := &Dashboard{
		Table:   tview.NewTable(),
		actions: ui.NewKeyActions(),
	}

	d.SetBorder(true)
	d.SetTitle(" Ringkasan ")
	d.SetTitleAlign(tview.AlignCenter)
	d.SetBorderColor(tcell.ColorAqua)
	d.SetSelectable(false, false)

	return d
}

// SetApp sets the application instance.
func (d *Dashboard) SetApp(app *App) {
	d.app = app
}

// SetFactory sets the API factory.
func (d *Dashboard) SetFactory(f dao.Factory) {
	d.factory = f
}

// Init initializes the dashboard view.
func (d *Dashboard) Init(ctx context.Context) error {
	d.actions.Bulk(ui.KeyMap{
		tcell.KeyEsc: ui.NewKeyAction("Kembali", d.backCmd, true),
	})

	d.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		key := evt.Key()
		if key == tcell.KeyRune {
			key = tcell.Key(evt.Rune())
		}
		if action, ok := d.actions.Get(key); ok {
			return action.Action(evt)
		}
		return evt
	})
	return nil
}

// Start fetches the metrics and renders them.
func (d *Dashboard) Start() {
	if d.factory == nil {
		d.showError(fmt.Errorf("no server connection"))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		metrics, err := dao.NewDashboard(d.factory).Metrics(ctx)

		update := func() {
			if err != nil {
				d.showError(err)
				return
			}
			d.render(metrics)
		}
		if d.app != nil {
			d.app.QueueUpdateDraw(update)
		} else {
			update()
		}
	}()
}

// Stop stops the dashboard view.
func (d *Dashboard) Stop() {
	d.Clear()
}

// Name returns the view name.
func (d *Dashboard) Name() string {
	return "dashboard"
}

// Hints returns the menu hints for this view.
func (d *Dashboard) Hints() ui.MenuHints {
	return d.actions.Hints()
}

// render draws the metrics as a two-column table, known labels first.
func (d *Dashboard) render(metrics map[string]any) {
	d.Clear()

	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		_, iKnown := metricLabels[keys[i]]
		_, jKnown := metricLabels[keys[j]]
		if iKnown != jKnown {
			return iKnown
		}
		return keys[i] < keys[j]
	})

	d.SetCell(0, 0, tview.NewTableCell("JENIS DATA").
		SetTextColor(tcell.ColorAqua).
		SetAttributes(tcell.AttrBold).
		SetSelectable(false))
	d.SetCell(0, 1, tview.NewTableCell("JUMLAH").
		SetTextColor(tcell.ColorAqua).
		SetAttributes(tcell.AttrBold).
		SetSelectable(false))

	row := 1
	for _, k := range keys {
		label, ok := metricLabels[k]
		if !ok {
			label = humanizeKey(k)
		}

		d.SetCell(row, 0, tview.NewTableCell(label).
			SetTextColor(tcell.ColorWhite).
			SetSelectable(false))
		d.SetCell(row, 1, tview.NewTableCell(metricValue(metrics[k])).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignRight).
			SetSelectable(false))
		row++
	}
}

// showError renders the fetch error in place of the metrics.
func (d *Dashboard) showError(err error) {
	d.Clear()
	d.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("Gagal memuat ringkasan: %v", err)).
		SetTextColor(tcell.ColorRed).
		SetSelectable(false))
}

// backCmd pops back to the previous view.
func (d *Dashboard) backCmd(*tcell.EventKey) *tcell.EventKey {
	if d.app != nil && d.app.Content.StackSize() > 1 {
		d.app.Content.Pop()
	}
	return nil
}

// metricValue formats a metric for display.
func metricValue(v any) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.0f", n)
	case int:
		return fmt.Sprintf("%d", n)
	case int64:
		return fmt.Sprintf("%d", n)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// humanizeKey turns a camelCase metric key into a readable label.
func humanizeKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteRune(' ')
		}
		if i == 0 && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
