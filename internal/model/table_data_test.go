package model

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/model1"
)

// fakeAccessor is a controllable accessor for model tests.
type fakeAccessor struct {
	rid     *dao.ResourceID
	records []dao.Record
	listErr error
	delErr  error
	deleted []string
	gate    chan struct{} // when set, List blocks until closed
	calls   int
	mx      sync.Mutex
}

func (f *fakeAccessor) Init(dao.Factory, *dao.ResourceID) {}
func (f *fakeAccessor) ResourceID() *dao.ResourceID       { return f.rid }

func (f *fakeAccessor) List(ctx context.Context) ([]dao.Record, error) {
	f.mx.Lock()
	f.calls++
	gate := f.gate
	f.gate = nil
	records, err := f.records, f.listErr
	f.mx.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (f *fakeAccessor) Get(_ context.Context, id string) (dao.Record, error) {
	for _, r := range f.records {
		if r.GetID() == id {
			return r, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeAccessor) Delete(_ context.Context, id string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.mx.Lock()
	defer f.mx.Unlock()
	f.deleted = append(f.deleted, id)

	kept := f.records[:0]
	for _, r := range f.records {
		if r.GetID() != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeAccessor) listCalls() int {
	f.mx.Lock()
	defer f.mx.Unlock()
	return f.calls
}

// fakeRenderer emits a single NAME column.
type fakeRenderer struct{}

func (fakeRenderer) Header() model1.Header {
	return model1.Header{{Name: "ID"}, {Name: "NAME"}}
}

func (fakeRenderer) Render(o any, row *model1.Row) error {
	rec := o.(dao.Record)
	row.ID = rec.GetID()
	row.Fields = model1.Fields{rec.GetID(), rec.GetName()}
	return nil
}

func (fakeRenderer) ColorerFunc() model1.ColorerFunc {
	return model1.DefaultColorer
}

// recordingListener captures listener callbacks.
type recordingListener struct {
	changed int
	noData  int
	failed  []error
	mx      sync.Mutex
}

func (l *recordingListener) TableDataChanged(*model1.TableData) {
	l.mx.Lock()
	defer l.mx.Unlock()
	l.changed++
}

func (l *recordingListener) TableNoData(*model1.TableData) {
	l.mx.Lock()
	defer l.mx.Unlock()
	l.noData++
}

func (l *recordingListener) TableLoadFailed(err error) {
	l.mx.Lock()
	defer l.mx.Unlock()
	l.failed = append(l.failed, err)
}

func records(ids ...string) []dao.Record {
	rr := make([]dao.Record, 0, len(ids))
	for _, id := range ids {
		rr = append(rr, &dao.BaseRecord{ID: id, Name: "rec-" + id})
	}
	return rr
}

func newTestModel(acc *fakeAccessor) *TableData {
	m := NewTableData(acc.rid, dao.NewAPIFactory(nil), time.Minute)
	m.SetAccessor(acc)
	m.SetRenderer(fakeRenderer{})
	return m
}

func TestRefreshPopulatesRows(t *testing.T) {
	acc := &fakeAccessor{rid: &dao.FamilyRID, records: records("f1", "f2")}
	m := newTestModel(acc)

	var l recordingListener
	m.AddListener(&l)

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if m.RowCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", m.RowCount())
	}
	if l.changed != 1 {
		t.Errorf("expected 1 data-changed notification, got %d", l.changed)
	}
	if m.Loading() {
		t.Error("expected loading cleared after refresh")
	}
}

func TestRefreshFlagsChangedRows(t *testing.T) {
	acc := &fakeAccessor{rid: &dao.ResourceID{Group: "case", Resource: "family"}, records: records("f1", "f2")}
	m := newTestModel(acc)

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if re, ok := m.RowEvents().Get("f1"); !ok || re.Kind != model1.EventUnchanged {
		t.Fatalf("first fetch should report rows unchanged, got %v", re.Kind)
	}

	acc.mx.Lock()
	acc.records = []dao.Record{
		&dao.BaseRecord{ID: "f1", Name: "rec-f1"},
		&dao.BaseRecord{ID: "f2", Name: "renamed"},
		&dao.BaseRecord{ID: "f3", Name: "rec-f3"},
	}
	acc.mx.Unlock()

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if re, _ := m.RowEvents().Get("f1"); re.Kind != model1.EventUnchanged {
		t.Errorf("untouched row should stay unchanged, got %v", re.Kind)
	}
	re, ok := m.RowEvents().Get("f2")
	if !ok || re.Kind != model1.EventUpdate {
		t.Fatalf("renamed row should be an update, got %v", re.Kind)
	}
	if re.Deltas.IsBlank() {
		t.Error("update event should carry the old field values")
	}
	if re, _ := m.RowEvents().Get("f3"); re.Kind != model1.EventAdd {
		t.Errorf("new row should be an add, got %v", re.Kind)
	}
}

func TestRefreshClearsLoadingOnFailure(t *testing.T) {
	acc := &fakeAccessor{rid: &dao.FamilyRID, listErr: errors.New("boom")}
	m := newTestModel(acc)

	if err := m.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if m.Loading() {
		t.Error("expected loading cleared after failed refresh")
	}
}

func TestRefreshDropsStaleFetch(t *testing.T) {
	acc := &fakeAccessor{rid: &dao.FamilyRID, records: records("old-1", "old-2", "old-3")}
	m := newTestModel(acc)

	gate := make(chan struct{})
	acc.mx.Lock()
	acc.gate = gate
	acc.mx.Unlock()

	done := make(chan error, 1)
	go func() { done <- m.Refresh(context.Background()) }()

	// wait for the slow fetch to be in flight
	for i := 0; i < 100 && acc.listCalls() == 0; i++ {
		time.Sleep(time.Millisecond)
	}

	// a newer fetch completes while the first is still pending
	acc.mx.Lock()
	acc.records = records("new-1")
	acc.mx.Unlock()
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	if m.RowCount() != 1 {
		t.Fatalf("stale fetch clobbered fresh rows: %d rows", m.RowCount())
	}
	if _, ok := m.RowEvents().Get("new-1"); !ok {
		t.Error("expected fresh row to survive")
	}
}

func TestDeleteRefetchesOnSuccess(t *testing.T) {
	acc := &fakeAccessor{rid: &dao.FamilyRID, records: records("f1", "f2")}
	m := newTestModel(acc)

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	before := acc.listCalls()

	if err := m.Delete(context.Background(), "f1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := acc.listCalls(); got != before+1 {
		t.Errorf("expected exactly one refetch after delete, got %d", got-before)
	}
	if m.RowCount() != 1 {
		t.Errorf("expected 1 row after delete, got %d", m.RowCount())
	}
	if len(acc.deleted) != 1 || acc.deleted[0] != "f1" {
		t.Errorf("unexpected deletions: %v", acc.deleted)
	}
}

func TestDeleteFailureSkipsRefetch(t *testing.T) {
	acc := &fakeAccessor{rid: &dao.FamilyRID, records: records("f1", "f2"), delErr: errors.New("denied")}
	m := newTestModel(acc)

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	before := acc.listCalls()

	if err := m.Delete(context.Background(), "f1"); err == nil {
		t.Fatal("expected delete error")
	}
	if got := acc.listCalls(); got != before {
		t.Errorf("expected no refetch after failed delete, got %d extra", got-before)
	}
	if m.RowCount() != 2 {
		t.Errorf("expected rows untouched after failed delete, got %d", m.RowCount())
	}
}

func TestNoDataNotification(t *testing.T) {
	acc := &fakeAccessor{rid: &dao.FamilyRID, records: records("f1")}
	m := newTestModel(acc)

	var l recordingListener
	m.AddListener(&l)

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	acc.mx.Lock()
	acc.records = nil
	acc.mx.Unlock()
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if l.noData != 1 {
		t.Errorf("expected no-data notification when rows vanish, got %d", l.noData)
	}
}

func TestWatchNotifiesFailure(t *testing.T) {
	acc := &fakeAccessor{rid: &dao.FamilyRID, listErr: errors.New("offline")}
	m := newTestModel(acc)

	var l recordingListener
	m.AddListener(&l)

	if err := m.Watch(context.Background()); err == nil {
		t.Fatal("expected watch error")
	}
	m.Stop()

	l.mx.Lock()
	defer l.mx.Unlock()
	if len(l.failed) != 1 {
		t.Errorf("expected load-failed notification, got %d", len(l.failed))
	}
}

func TestRemoveListener(t *testing.T) {
	acc := &fakeAccessor{rid: &dao.FamilyRID, records: records("f1")}
	m := newTestModel(acc)

	var l recordingListener
	m.AddListener(&l)
	m.RemoveListener(&l)

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if l.changed != 0 {
		t.Errorf("removed listener still notified %d times", l.changed)
	}
}
