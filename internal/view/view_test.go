package view

import (
	"strings"
	"testing"

	"github.com/derailed/tcell/v2"

	"github.com/sigap/sigap/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app := NewApp(config.NewConfig(), "test")
	if err := app.Init(); err != nil {
		t.Fatalf("app init failed: %v", err)
	}
	return app
}

func TestCommandResolveAlias(t *testing.T) {
	app := newTestApp(t)
	c := app.command

	for alias, want := range map[string]string{
		"keluarga": "case/family",
		"anak":     "case/child",
		"pegawai":  "staff/employee",
		"dokumen":  "program/document",
		"unknown":  "unknown",
	} {
		if got := c.resolveAlias(alias); got != want {
			t.Errorf("resolveAlias(%q) = %q, want %q", alias, got, want)
		}
	}
}

func TestCommandRunResource(t *testing.T) {
	app := newTestApp(t)

	if err := app.command.Run(":family"); err != nil {
		t.Fatalf("family command failed: %v", err)
	}
	if got := app.Content.Current(); got != "case/family" {
		t.Errorf("expected case/family on top, got %q", got)
	}

	if err := app.command.Run("kunjungan"); err != nil {
		t.Fatalf("kunjungan command failed: %v", err)
	}
	if got := app.Content.Current(); got != "program/visit" {
		t.Errorf("expected program/visit on top, got %q", got)
	}
}

func TestCommandRunDefaultView(t *testing.T) {
	app := newTestApp(t)

	if err := app.command.Run(""); err != nil {
		t.Fatalf("default command failed: %v", err)
	}
	if got := app.Content.Current(); got != "case/family" {
		t.Errorf("default view should be case/family, got %q", got)
	}
}

func TestCommandRunUnknown(t *testing.T) {
	app := newTestApp(t)

	if err := app.command.Run("bogus"); err == nil {
		t.Error("unknown command should error")
	}
	if err := app.command.Run("case/nothere"); err == nil {
		t.Error("unknown record type should error")
	}
}

func TestCommandRunDashboard(t *testing.T) {
	app := newTestApp(t)

	if err := app.command.Run("dashboard"); err != nil {
		t.Fatalf("dashboard command failed: %v", err)
	}
	if got := app.Content.Current(); got != "dashboard" {
		t.Errorf("expected dashboard on top, got %q", got)
	}
}

func TestFlashLevels(t *testing.T) {
	if flashPrefix(FlashInfo) != "[INFO]" || flashPrefix(FlashWarn) != "[WARN]" || flashPrefix(FlashErr) != "[ERROR]" {
		t.Error("unexpected flash prefixes")
	}
	if flashColor(FlashErr) != tcell.ColorRed {
		t.Error("error flash should be red")
	}
	if flashColor(FlashWarn) != tcell.ColorYellow {
		t.Error("warn flash should be yellow")
	}
}

func TestFlashSetMessage(t *testing.T) {
	f := NewFlash(nil)
	f.Infof("Data berhasil %s", "dihapus")

	if got := f.GetText(true); !strings.Contains(got, "Data berhasil dihapus") {
		t.Errorf("flash text = %q", got)
	}
	f.Clear()
}

func TestHighlightYAML(t *testing.T) {
	out := highlightYAML("status: aktif\nchildren:\n  - name: Siti\n")

	if !strings.Contains(out, "[aqua::]status:[-::]") {
		t.Errorf("key not highlighted: %q", out)
	}
	if !strings.Contains(out, "[green::]aktif[-::]") {
		t.Errorf("active status not colored: %q", out)
	}
}

func TestColorizeValue(t *testing.T) {
	cases := map[string]string{
		"aktif":  "[green::]aktif[-::]",
		"keluar": "[red::]keluar[-::]",
		"cuti":   "[yellow::]cuti[-::]",
		"Ya":     "[green::]Ya[-::]",
		"Tidak":  "[red::]Tidak[-::]",
		"42":     "[fuchsia::]42[-::]",
		"null":   "[gray::]null[-::]",
		"Budi":   "Budi",
	}
	for in, want := range cases {
		if got := colorizeValue(in); got != want {
			t.Errorf("colorizeValue(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDashboardRender(t *testing.T) {
	d := NewDashboard()
	d.render(map[string]any{
		"totalFamilies": float64(12),
		"totalVisits":   float64(3),
		"customMetric":  float64(7),
	})

	if got := d.GetCell(1, 0).Text; got != "Keluarga" {
		t.Errorf("expected Keluarga first, got %q", got)
	}
	if got := d.GetCell(1, 1).Text; got != "12" {
		t.Errorf("expected count 12, got %q", got)
	}
	// Unknown keys sort after known ones and get humanized.
	if got := d.GetCell(3, 0).Text; got != "Custom Metric" {
		t.Errorf("expected humanized label, got %q", got)
	}
}

func TestHumanizeKey(t *testing.T) {
	if got := humanizeKey("totalActiveCases"); got != "Total Active Cases" {
		t.Errorf("humanizeKey = %q", got)
	}
}

func TestHelpCloses(t *testing.T) {
	h := NewHelp()
	closed := false
	h.SetCloseFn(func() { closed = true })

	if evt := h.GetInputCapture()(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)); evt != nil {
		t.Error("escape should be consumed")
	}
	if !closed {
		t.Error("close callback not invoked")
	}
}
