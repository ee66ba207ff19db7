package model

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/model1"
	"github.com/sigap/sigap/internal/render"
)

// TableData fetches and manages one record collection through its DAO.
type TableData struct {
	rid         *dao.ResourceID
	accessor    dao.Accessor
	factory     dao.Factory
	renderer    model1.Renderer
	data        *model1.TableData
	refreshRate time.Duration
	listeners   []TableListener
	cancelFn    context.CancelFunc
	generation  atomic.Uint64
	inFlight    atomic.Int32
	mx          sync.RWMutex
}

// NewTableData creates a new table data model.
func NewTableData(rid *dao.ResourceID, factory dao.Factory, refreshRate time.Duration) *TableData {
	return &TableData{
		rid:         rid,
		factory:     factory,
		data:        model1.NewTableData(),
		refreshRate: refreshRate,
		listeners:   make([]TableListener, 0, 2),
	}
}

// Init resolves the accessor and renderer for the model's resource.
func (t *TableData) Init() error {
	accessor, err := dao.AccessorFor(t.factory, t.rid)
	if err != nil {
		return err
	}

	renderer, err := render.For(t.rid)
	if err != nil {
		return err
	}

	t.mx.Lock()
	t.accessor, t.renderer = accessor, renderer
	t.mx.Unlock()
	return nil
}

// SetAccessor sets the DAO accessor.
func (t *TableData) SetAccessor(a dao.Accessor) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.accessor = a
}

// SetRenderer sets the renderer for converting records to rows.
func (t *TableData) SetRenderer(r model1.Renderer) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.renderer = r
}

// ResourceID returns the model's resource identifier.
func (t *TableData) ResourceID() *dao.ResourceID {
	return t.rid
}

// Header returns the table header.
func (t *TableData) Header() model1.Header {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.Header()
}

// RowCount returns the number of rows.
func (t *TableData) RowCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.RowCount()
}

// RowEvents returns the current row events.
func (t *TableData) RowEvents() *model1.RowEvents {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.RowEvents()
}

// Empty returns true if no data is available.
func (t *TableData) Empty() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.Empty()
}

// Peek returns a clone of the current table data.
func (t *TableData) Peek() *model1.TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.Clone()
}

// Loading reports whether a fetch is in flight.
func (t *TableData) Loading() bool {
	return t.inFlight.Load() > 0
}

// AddListener registers a table listener.
func (t *TableData) AddListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.listeners = append(t.listeners, l)
}

// RemoveListener unregisters a table listener.
func (t *TableData) RemoveListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()

	for i, listener := range t.listeners {
		if listener == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// Watch starts watching/refreshing data periodically.
func (t *TableData) Watch(ctx context.Context) error {
	t.mx.Lock()
	if t.cancelFn != nil {
		t.cancelFn()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	t.cancelFn = cancel
	t.mx.Unlock()

	if err := t.Refresh(watchCtx); err != nil {
		t.notifyLoadFailed(err)
		return err
	}

	go t.watchLoop(watchCtx)
	return nil
}

// watchLoop periodically refreshes data.
func (t *TableData) watchLoop(ctx context.Context) {
	t.mx.RLock()
	refreshRate := t.refreshRate
	t.mx.RUnlock()

	if refreshRate <= 0 {
		refreshRate = 5 * time.Second
	}

	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Refresh(ctx); err != nil {
				t.notifyLoadFailed(err)
			}
		}
	}
}

// Refresh fetches data immediately. Each fetch is stamped with a generation
// token; a result that resolves after a newer fetch has started is dropped so
// a slow response can never clobber fresher rows.
func (t *TableData) Refresh(ctx context.Context) error {
	gen := t.generation.Add(1)

	t.inFlight.Add(1)
	defer t.inFlight.Add(-1)

	t.mx.RLock()
	accessor, renderer := t.accessor, t.renderer
	t.mx.RUnlock()

	if accessor == nil {
		return fmt.Errorf("no accessor configured")
	}
	if renderer == nil {
		return fmt.Errorf("no renderer configured")
	}

	records, err := accessor.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", t.rid, err)
	}

	if t.generation.Load() != gen {
		slog.Debug("Dropping stale fetch", "resource", t.rid.String(), "generation", gen)
		return nil
	}

	t.mx.RLock()
	prev := t.data.RowEvents()
	prevEmpty := t.data.Empty()
	t.mx.RUnlock()

	newData := model1.NewTableData()
	header := renderer.Header()
	newData.SetHeader(header)
	newData.SetSource(t.factory.Server())

	for _, rec := range records {
		row := model1.NewRow(len(header))
		if err := renderer.Render(rec, &row); err != nil {
			slog.Warn("Row render failed", "resource", t.rid.String(), "error", err)
			continue
		}
		newData.RowEvents().Add(t.rowEvent(prev, prevEmpty, row, header))
	}

	t.mx.Lock()
	if t.generation.Load() != gen {
		t.mx.Unlock()
		return nil
	}
	oldEmpty := t.data.Empty()
	t.data = newData
	t.mx.Unlock()

	if newData.Empty() && !oldEmpty {
		t.notifyNoData(newData)
	} else {
		t.notifyDataChanged(newData)
	}

	return nil
}

// rowEvent classifies a refreshed row against the previous fetch: rows seen
// for the first time are adds, rows whose fields moved carry deltas so the
// colorer can flag them. The very first fetch reports everything unchanged.
func (t *TableData) rowEvent(prev *model1.RowEvents, prevEmpty bool, row model1.Row, header model1.Header) model1.RowEvent {
	if prevEmpty {
		return model1.NewRowEvent(model1.EventUnchanged, row)
	}

	old, ok := prev.Get(row.ID)
	if !ok {
		return model1.NewRowEvent(model1.EventAdd, row)
	}
	if delta := model1.NewDeltaRow(old.Row, row, header); !delta.IsBlank() {
		return model1.NewRowEventWithDeltas(row, delta)
	}
	return model1.NewRowEvent(model1.EventUnchanged, row)
}

// Delete removes a record through the DAO. On success the collection is
// refetched; on failure the current rows are left untouched.
func (t *TableData) Delete(ctx context.Context, id string) error {
	t.mx.RLock()
	accessor := t.accessor
	t.mx.RUnlock()

	nuker, ok := accessor.(dao.Nuker)
	if !ok {
		return fmt.Errorf("resource %s does not support delete", t.rid)
	}

	if err := nuker.Delete(ctx, id); err != nil {
		return err
	}

	return t.Refresh(ctx)
}

// Get fetches a single record through the DAO.
func (t *TableData) Get(ctx context.Context, id string) (dao.Record, error) {
	t.mx.RLock()
	accessor := t.accessor
	t.mx.RUnlock()

	if accessor == nil {
		return nil, fmt.Errorf("no accessor configured")
	}
	return accessor.Get(ctx, id)
}

// Stop stops the watch loop.
func (t *TableData) Stop() {
	t.mx.Lock()
	defer t.mx.Unlock()

	if t.cancelFn != nil {
		t.cancelFn()
		t.cancelFn = nil
	}
}

func (t *TableData) notifyNoData(data *model1.TableData) {
	for _, l := range t.snapshotListeners() {
		l.TableNoData(data)
	}
}

func (t *TableData) notifyDataChanged(data *model1.TableData) {
	for _, l := range t.snapshotListeners() {
		l.TableDataChanged(data)
	}
}

func (t *TableData) notifyLoadFailed(err error) {
	for _, l := range t.snapshotListeners() {
		l.TableLoadFailed(err)
	}
}

func (t *TableData) snapshotListeners() []TableListener {
	t.mx.RLock()
	defer t.mx.RUnlock()

	listeners := make([]TableListener, len(t.listeners))
	copy(listeners, t.listeners)
	return listeners
}
