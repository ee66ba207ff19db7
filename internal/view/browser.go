package view

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"

	"github.com/sigap/sigap/internal/config"
	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/export"
	"github.com/sigap/sigap/internal/model"
	"github.com/sigap/sigap/internal/model1"
	"github.com/sigap/sigap/internal/ui"
)

const fetchTimeout = 30 * time.Second

// uploadable lists record types accepting file uploads.
var uploadable = map[string]string{
	"program/document": "file",
	"program/gallery":  "image",
}

// Browser is the generic record browser: it drives one table model and
// carries the per-record actions (describe, edit, export, delete, upload).
type Browser struct {
	*Table

	app      *App
	factory  dao.Factory
	model    *model.TableData
	cancelFn context.CancelFunc
	pushFn   func(c ui.Component)
	popFn    func()
	mx       sync.RWMutex
}

// NewBrowser returns a new record browser.
func NewBrowser(rid *dao.ResourceID) *Browser {
	return &Browser{
		Table: NewTable(rid),
	}
}

// SetApp sets the App reference for flash messages and editor suspension.
func (b *Browser) SetApp(a *App) {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.app = a
}

// SetFactory sets the API factory for this browser.
func (b *Browser) SetFactory(f dao.Factory) {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.factory = f
}

// SetPushFn sets the navigation push function.
func (b *Browser) SetPushFn(fn func(c ui.Component)) {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.pushFn = fn
}

// SetPopFn sets the navigation pop function.
func (b *Browser) SetPopFn(fn func()) {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.popFn = fn
}

// GetFactory returns the API factory.
func (b *Browser) GetFactory() dao.Factory {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.factory
}

// Init initializes the browser component.
func (b *Browser) Init(ctx context.Context) error {
	if err := b.Table.Init(ctx); err != nil {
		return err
	}

	if a := b.getApp(); a != nil && a.Config() != nil && a.Config().Sigap != nil {
		b.SetPageSize(a.Config().Sigap.PageSize)
	}

	b.bindKeys(b.Actions())
	b.SetEnterFn(b.describe)
	return nil
}

// Start connects the browser to its data model and begins watching.
func (b *Browser) Start() {
	b.Stop()

	b.mx.Lock()
	factory := b.factory
	if b.model == nil && factory != nil {
		refresh := 5 * time.Second
		if b.app != nil && b.app.Config() != nil && b.app.Config().Sigap != nil {
			refresh = b.app.Config().Sigap.GetRefreshRate()
		}
		m := model.NewTableData(b.GetResourceID(), factory, refresh)
		if err := m.Init(); err != nil {
			b.mx.Unlock()
			b.flashErr(err)
			return
		}
		b.model = m
	}
	m := b.model
	b.mx.Unlock()

	if m == nil {
		b.flashErr(fmt.Errorf("no server connection, run `sigap login` first"))
		return
	}

	b.SetModel(m)
	m.AddListener(b)

	if err := m.Watch(b.prepareContext()); err != nil {
		b.flashErr(err)
	}
	b.Table.Start()
}

// Stop terminates browser updates.
func (b *Browser) Stop() {
	b.mx.Lock()
	if b.cancelFn != nil {
		b.cancelFn()
		b.cancelFn = nil
	}
	m := b.model
	b.mx.Unlock()

	if m != nil {
		m.RemoveListener(b)
		m.Stop()
	}
	b.Table.Stop()
}

// Hints returns menu hints for this browser.
func (b *Browser) Hints() ui.MenuHints {
	return b.Actions().Hints()
}

// bindKeys sets up browser-specific key bindings.
func (b *Browser) bindKeys(aa *ui.KeyActions) {
	aa.Bulk(ui.KeyMap{
		tcell.KeyCtrlD: ui.NewKeyAction("Hapus", b.deleteCmd, true),
		ui.KeyD:        ui.NewKeyAction("Detail", b.describe, true),
		ui.KeyE:        ui.NewKeyAction("Ubah", b.edit, true),
		ui.KeyX:        ui.NewKeyAction("Ekspor", b.exportCmd, true),
	})

	if _, ok := uploadable[b.GetResourceID().String()]; ok {
		aa.Add(ui.KeyU, ui.NewKeyAction("Unggah", b.upload, true))
	}

	b.bindResourceActions(aa)
}

// bindResourceActions adds dynamic key bindings from the action registry.
func (b *Browser) bindResourceActions(aa *ui.KeyActions) {
	rid := b.GetResourceID()
	if rid == nil {
		return
	}

	for _, action := range ui.GetActions(rid) {
		act := action
		handler := func(evt *tcell.EventKey) *tcell.EventKey {
			return b.executeAction(&act)
		}
		aa.Add(act.Key, ui.NewKeyAction(act.Name, handler, true))
	}
}

// deleteCmd starts the delete flow: confirm, delete, notify. Marked rows
// delete as a batch, otherwise the selected row.
func (b *Browser) deleteCmd(*tcell.EventKey) *tcell.EventKey {
	ids := b.GetMarked()
	if len(ids) == 0 {
		id := b.GetSelectedItem()
		if id == "" {
			return nil
		}
		ids = []string{id}
	}

	app := b.getApp()
	if app == nil {
		return nil
	}
	if app.ReadOnly() {
		app.Flash().Warn("Mode baca saja, hapus dinonaktifkan")
		return nil
	}

	rid := b.GetResourceID()
	msg := fmt.Sprintf("Hapus %s %s?", rid.Resource, ids[0])
	if len(ids) > 1 {
		msg = fmt.Sprintf("Hapus %d %s?", len(ids), rid.Resource)
	}

	confirm := ui.NewConfirm(app.Content)
	confirm.SetMessage(msg)
	confirm.SetDangerous(true)
	confirm.SetOnConfirm(func() {
		go b.doDelete(ids)
	})
	confirm.Show()
	return nil
}

// doDelete deletes the records. The model refetches on success and leaves
// the rows untouched on failure; a failure mid-batch stops the batch.
func (b *Browser) doDelete(ids []string) {
	b.mx.RLock()
	m := b.model
	b.mx.RUnlock()

	app := b.getApp()
	if m == nil || app == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	for _, id := range ids {
		if err := m.Delete(ctx, id); err != nil {
			app.QueueUpdateDraw(func() {
				app.Flash().Errf("Gagal menghapus %s: %v", id, err)
			})
			return
		}
	}

	b.ClearMarks()
	app.QueueUpdateDraw(func() {
		app.Flash().Info("Data berhasil dihapus")
	})
}

// exportCmd writes the filtered rows to a spreadsheet.
func (b *Browser) exportCmd(*tcell.EventKey) *tcell.EventKey {
	app := b.getApp()
	if app == nil {
		return nil
	}

	data := b.ViewData()
	if data == nil || data.Empty() {
		app.Flash().Warn("Tidak ada data untuk diekspor")
		return nil
	}

	rid := b.GetResourceID()
	path := export.DefaultFilename(rid.Resource)
	if config.AppExportsDir != "" {
		path = filepath.Join(config.AppExportsDir, path)
	}

	saved, err := export.Table(data, export.Config{Filename: path})
	if err != nil {
		app.Flash().Errf("Ekspor gagal: %v", err)
		return nil
	}

	app.Flash().Infof("Diekspor ke %s", saved)
	return nil
}

// describe pushes the record detail view.
func (b *Browser) describe(*tcell.EventKey) *tcell.EventKey {
	id := b.GetSelectedItem()
	if id == "" {
		return nil
	}

	b.mx.RLock()
	pushFn, popFn, factory, app := b.pushFn, b.popFn, b.factory, b.app
	b.mx.RUnlock()

	if pushFn == nil {
		return nil
	}

	descView := NewDescribe(b.GetResourceID())
	descView.SetFactory(factory)
	descView.SetRecordID(id)
	descView.SetApp(app)
	descView.SetBackFn(func() {
		if popFn != nil {
			popFn()
		}
	})

	if err := descView.Init(context.Background()); err != nil {
		return nil
	}

	pushFn(descView)
	descView.Start()
	return nil
}

// edit opens the selected record in $EDITOR and patches the changed fields.
func (b *Browser) edit(*tcell.EventKey) *tcell.EventKey {
	id := b.GetSelectedItem()
	if id == "" {
		return nil
	}

	app := b.getApp()
	factory := b.GetFactory()
	if app == nil || factory == nil {
		return nil
	}
	if app.ReadOnly() {
		app.Flash().Warn("Mode baca saja, ubah dinonaktifkan")
		return nil
	}

	app.Flash().Infof("Membuka editor untuk %s...", id)

	err := EditRecord(context.Background(), app.Application, factory, b.GetResourceID(), id)
	switch {
	case err == nil:
		app.Flash().Infof("Berhasil memperbarui %s", id)
		b.refresh()
	case err == ErrEditorCancelled:
		app.Flash().Info("Ubah dibatalkan")
	case err == ErrNoChanges:
		app.Flash().Info("Tidak ada perubahan")
	default:
		app.Flash().Errf("Ubah gagal: %v", err)
	}
	return nil
}

// upload pushes the file upload form for document and gallery records.
func (b *Browser) upload(*tcell.EventKey) *tcell.EventKey {
	rid := b.GetResourceID()
	field, ok := uploadable[rid.String()]
	if !ok {
		return nil
	}

	b.mx.RLock()
	pushFn, popFn, factory, app := b.pushFn, b.popFn, b.factory, b.app
	b.mx.RUnlock()

	if pushFn == nil || app == nil || factory == nil {
		return nil
	}
	if app.ReadOnly() {
		app.Flash().Warn("Mode baca saja, unggah dinonaktifkan")
		return nil
	}

	form := NewUpload(rid, field)
	form.SetFactory(factory)
	form.SetApp(app)
	form.SetDoneFn(func(uploaded bool) {
		if popFn != nil {
			popFn()
		}
		if uploaded {
			b.refresh()
		}
	})

	if err := form.Init(context.Background()); err != nil {
		return nil
	}

	pushFn(form)
	form.Start()
	return nil
}

// executeAction executes a registered action, with confirmation for the
// dangerous ones.
func (b *Browser) executeAction(action *ui.ResourceAction) *tcell.EventKey {
	id := b.GetSelectedItem()
	if id == "" {
		return nil
	}

	app := b.getApp()
	factory := b.GetFactory()
	if app == nil || factory == nil {
		return nil
	}
	if app.ReadOnly() {
		app.Flash().Warn("Mode baca saja, aksi dinonaktifkan")
		return nil
	}

	if action.Dangerous {
		confirm := ui.NewConfirm(app.Content)
		confirm.SetMessage(fmt.Sprintf("%s %s?", action.Name, id))
		confirm.SetDangerous(true)
		confirm.SetOnConfirm(func() {
			b.doExecuteAction(action, id, factory)
		})
		confirm.Show()
		return nil
	}

	b.doExecuteAction(action, id, factory)
	return nil
}

// doExecuteAction performs the actual action execution.
func (b *Browser) doExecuteAction(action *ui.ResourceAction, id string, factory dao.Factory) {
	app := b.getApp()
	if app == nil {
		return
	}

	app.Flash().Infof("%s %s...", action.Name, id)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := action.Handler(ctx, factory, id)
		app.QueueUpdateDraw(func() {
			if err != nil {
				app.Flash().Errf("%s gagal: %v", action.Name, err)
				return
			}
			app.Flash().Infof("%s %s berhasil", action.Name, id)
			b.refresh()
		})
	}()
}

// refresh forces a new fetch through the model.
func (b *Browser) refresh() {
	b.mx.RLock()
	m := b.model
	b.mx.RUnlock()
	if m == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		_ = m.Refresh(ctx)
	}()
}

// prepareContext creates a cancellable context for the watch loop.
func (b *Browser) prepareContext() context.Context {
	ctx := context.Background()

	b.mx.Lock()
	if b.cancelFn != nil {
		b.cancelFn()
	}
	ctx, b.cancelFn = context.WithCancel(ctx)
	b.mx.Unlock()

	return ctx
}

func (b *Browser) getApp() *App {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.app
}

func (b *Browser) flashErr(err error) {
	if app := b.getApp(); app != nil {
		app.Flash().Err(err)
	}
}

// TableDataChanged implements model.TableListener. The embedded table is its
// own listener; the browser only triggers a redraw.
func (b *Browser) TableDataChanged(*model1.TableData) {
	if app := b.getApp(); app != nil {
		app.QueueUpdateDraw(func() {})
	}
}

// TableNoData implements model.TableListener.
func (b *Browser) TableNoData(*model1.TableData) {
	if app := b.getApp(); app != nil {
		app.QueueUpdateDraw(func() {})
	}
}

// TableLoadFailed implements model.TableListener.
func (b *Browser) TableLoadFailed(err error) {
	b.flashErr(err)
}
