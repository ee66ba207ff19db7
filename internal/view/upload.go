package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/sigap/sigap/internal/api"
	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/ui"
)

// Upload is a form view that attaches a local file to a new document or
// gallery record via a multipart create.
type Upload struct {
	*tview.Form

	resourceID *dao.ResourceID
	fileField  string
	factory    dao.Factory
	app        *App
	doneFn     func(uploaded bool)

	title   string
	caption string
	ownerID string
	path    string
}

// NewUpload creates a new upload form for the given record type.
func NewUpload(rid *dao.ResourceID, fileField string) *Upload {
	u := &Upload{
		Form:       tview.NewForm(),
		resourceID: rid,
		fileField:  fileField,
	}

	u.SetBorder(true)
	u.SetTitle(fmt.Sprintf(" Unggah %s ", rid.Resource))
	u.SetBorderColor(tcell.ColorAqua)
	u.SetFieldBackgroundColor(tcell.ColorDarkSlateGray)

	return u
}

// SetFactory sets the API factory.
func (u *Upload) SetFactory(f dao.Factory) {
	u.factory = f
}

// SetApp sets the application instance.
func (u *Upload) SetApp(app *App) {
	u.app = app
}

// SetDoneFn sets the callback invoked when the form closes. The argument
// reports whether a record was uploaded.
func (u *Upload) SetDoneFn(fn func(uploaded bool)) {
	u.doneFn = fn
}

// Init builds the form fields.
func (u *Upload) Init(ctx context.Context) error {
	u.AddInputField("Judul", "", 40, nil, func(text string) { u.title = text })
	u.AddInputField("Keterangan", "", 40, nil, func(text string) { u.caption = text })
	u.AddInputField("ID Pemilik", "", 40, nil, func(text string) { u.ownerID = text })
	u.AddInputField("Berkas", "", 40, nil, func(text string) { u.path = text })

	u.AddButton("Unggah", u.submit)
	u.AddButton("Batal", func() { u.close(false) })

	u.SetCancelFunc(func() { u.close(false) })
	return nil
}

// Start is a lifecycle no-op; the form is static.
func (u *Upload) Start() {}

// Stop is a lifecycle no-op.
func (u *Upload) Stop() {}

// Name returns the view name.
func (u *Upload) Name() string {
	return "upload"
}

// Hints returns the menu hints for this view.
func (u *Upload) Hints() ui.MenuHints {
	return ui.MenuHints{
		{Mnemonic: "enter", Description: "Unggah", Visible: true},
		{Mnemonic: "esc", Description: "Batal", Visible: true},
	}
}

// submit validates the form and uploads the file.
func (u *Upload) submit() {
	if u.app == nil || u.factory == nil {
		return
	}

	if u.path == "" {
		u.app.Flash().Warn("Berkas wajib diisi")
		return
	}

	content, err := os.ReadFile(u.path)
	if err != nil {
		u.app.Flash().Errf("Gagal membaca berkas: %v", err)
		return
	}

	accessor, err := dao.AccessorFor(u.factory, u.resourceID)
	if err != nil {
		u.app.Flash().Err(err)
		return
	}

	creator, ok := accessor.(dao.Creator)
	if !ok {
		u.app.Flash().Errf("Unggah tidak didukung untuk %s", u.resourceID)
		return
	}

	doc := map[string]any{"title": u.title}
	if u.caption != "" {
		doc["caption"] = u.caption
	}
	if u.ownerID != "" {
		doc["ownerId"] = u.ownerID
	}

	files := []api.FilePart{{
		Field:    u.fileField,
		Filename: filepath.Base(u.path),
		Content:  content,
	}}

	u.app.Flash().Infof("Mengunggah %s...", filepath.Base(u.path))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		rec, err := creator.Create(ctx, doc, files)
		u.app.QueueUpdateDraw(func() {
			if err != nil {
				u.app.Flash().Errf("Unggah gagal: %v", err)
				return
			}
			u.app.Flash().Infof("Berhasil mengunggah %s", rec.GetName())
			u.close(true)
		})
	}()
}

// close dismisses the form.
func (u *Upload) close(uploaded bool) {
	if u.doneFn != nil {
		u.doneFn(uploaded)
	}
}
