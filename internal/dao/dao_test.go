package dao

import (
	"context"
	"testing"
	"time"

	"github.com/sigap/sigap/internal/api"
)

// fakeConn is an in-memory Connection for DAO tests.
type fakeConn struct {
	docs      map[string][]map[string]any
	listCalls int
	lastFiles []api.FilePart
	lastDoc   map[string]any
	deleted   []string
	failList  error
}

func (f *fakeConn) Config() *api.ClientConfig               { return &api.ClientConfig{Server: "test"} }
func (f *fakeConn) ConnectionOK() bool                      { return true }
func (f *fakeConn) CheckConnectivity(context.Context) bool  { return true }
func (f *fakeConn) ActiveServer() string                    { return "test" }
func (f *fakeConn) BaseURL() string                         { return "http://localhost" }

func (f *fakeConn) List(_ context.Context, resource string) ([]map[string]any, error) {
	f.listCalls++
	if f.failList != nil {
		return nil, f.failList
	}
	return f.docs[resource], nil
}

func (f *fakeConn) Get(_ context.Context, resource, id string) (map[string]any, error) {
	for _, doc := range f.docs[resource] {
		if doc["id"] == id {
			return doc, nil
		}
	}
	return nil, &api.StatusError{StatusCode: 404, Message: "not found"}
}

func (f *fakeConn) Create(_ context.Context, resource string, doc map[string]any, files []api.FilePart) (map[string]any, error) {
	f.lastDoc, f.lastFiles = doc, files
	out := map[string]any{"id": "new-1"}
	for k, v := range doc {
		out[k] = v
	}
	f.docs[resource] = append(f.docs[resource], out)
	return out, nil
}

func (f *fakeConn) Update(_ context.Context, resource, id string, doc map[string]any, files []api.FilePart) (map[string]any, error) {
	f.lastDoc, f.lastFiles = doc, files
	return doc, nil
}

func (f *fakeConn) Patch(context.Context, string, string, []byte) error { return nil }

func (f *fakeConn) Delete(_ context.Context, resource, id string) error {
	f.deleted = append(f.deleted, resource+"/"+id)
	return nil
}

func (f *fakeConn) Dashboard(context.Context) (map[string]any, error) {
	return map[string]any{"totalFamilies": float64(12)}, nil
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		docs: map[string][]map[string]any{
			"families": {
				{"id": "f1", "headName": "Budi Santoso", "village": "Sukamaju", "status": "aktif", "createdAt": "2025-03-01T08:00:00Z"},
				{"id": "f2", "headName": "Siti Aminah", "village": "Mekarsari", "status": "lulus"},
			},
			"children": {
				{"id": "c1", "fullName": "Andi", "familyId": "f1", "schoolStatus": "sekolah"},
				{"id": "c2", "fullName": "Rina", "familyId": "f2", "schoolStatus": "putus"},
				{"id": "c3", "fullName": "Dewi", "familyId": "f1", "schoolStatus": "sekolah"},
			},
		},
	}
}

func TestAccessorForUnknown(t *testing.T) {
	f := NewAPIFactory(newFakeConn())
	rid := &ResourceID{Group: "case", Resource: "nope"}
	if _, err := AccessorFor(f, rid); err == nil {
		t.Fatal("expected error for unknown resource id")
	}
}

func TestAccessorForNewInstance(t *testing.T) {
	f := NewAPIFactory(newFakeConn())

	a1, err := AccessorFor(f, &FamilyRID)
	if err != nil {
		t.Fatalf("accessor for family: %v", err)
	}
	a2, err := AccessorFor(f, &FamilyRID)
	if err != nil {
		t.Fatalf("accessor for family: %v", err)
	}
	if a1 == a2 {
		t.Fatal("expected distinct accessor instances")
	}
	if a1.ResourceID().String() != "case/family" {
		t.Errorf("unexpected rid: %s", a1.ResourceID())
	}
}

func TestResourceListRecords(t *testing.T) {
	conn := newFakeConn()
	acc, err := AccessorFor(NewAPIFactory(conn), &FamilyRID)
	if err != nil {
		t.Fatalf("accessor: %v", err)
	}

	records, err := acc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].GetID() != "f1" {
		t.Errorf("unexpected id: %s", records[0].GetID())
	}
	if records[0].GetName() != "Budi Santoso" {
		t.Errorf("expected name from headName key, got %q", records[0].GetName())
	}
	if records[0].GetCreatedAt() == nil {
		t.Error("expected createdAt to parse")
	}
	if records[1].GetCreatedAt() != nil {
		t.Error("expected nil createdAt when absent")
	}
}

func TestResourceListUsesCache(t *testing.T) {
	conn := newFakeConn()
	acc, err := AccessorFor(NewAPIFactory(conn), &FamilyRID)
	if err != nil {
		t.Fatalf("accessor: %v", err)
	}
	fam := acc.(*Family)
	fam.SetCache(NewResourceCache(time.Minute))

	ctx := context.Background()
	if _, err := fam.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := fam.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if conn.listCalls != 1 {
		t.Fatalf("expected 1 backend call with warm cache, got %d", conn.listCalls)
	}

	if err := fam.Delete(ctx, "f1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := fam.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if conn.listCalls != 2 {
		t.Fatalf("expected cache invalidation after delete, got %d calls", conn.listCalls)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewResourceCache(10 * time.Millisecond)
	c.Set("k", []Record{&BaseRecord{ID: "x"}})
	if c.Get("k") == nil {
		t.Fatal("expected fresh entry")
	}
	time.Sleep(20 * time.Millisecond)
	if c.Get("k") != nil {
		t.Fatal("expected entry to expire")
	}
}

func TestChildByFamily(t *testing.T) {
	acc, err := AccessorFor(NewAPIFactory(newFakeConn()), &ChildRID)
	if err != nil {
		t.Fatalf("accessor: %v", err)
	}
	children := acc.(*Child)

	got, err := children.ByFamily(context.Background(), "f1")
	if err != nil {
		t.Fatalf("by family: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 children for f1, got %d", len(got))
	}
	for _, rec := range got {
		if rec.GetFields()["familyId"] != "f1" {
			t.Errorf("record %s not in family f1", rec.GetID())
		}
	}

	if _, err := children.ByFamily(context.Background(), ""); err == nil {
		t.Fatal("expected error on empty family id")
	}
}

func TestDocumentUpload(t *testing.T) {
	conn := newFakeConn()
	acc, err := AccessorFor(NewAPIFactory(conn), &DocumentRID)
	if err != nil {
		t.Fatalf("accessor: %v", err)
	}
	docs := acc.(*Document)

	rec, err := docs.Upload(context.Background(), map[string]any{"title": "KTP Budi"}, "ktp.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if rec.GetID() != "new-1" {
		t.Errorf("unexpected id: %s", rec.GetID())
	}
	if len(conn.lastFiles) != 1 || conn.lastFiles[0].Field != "file" || conn.lastFiles[0].Filename != "ktp.pdf" {
		t.Errorf("unexpected file parts: %+v", conn.lastFiles)
	}

	if _, err := docs.Upload(context.Background(), nil, "", []byte("x")); err == nil {
		t.Fatal("expected error on empty filename")
	}
	if _, err := docs.Upload(context.Background(), nil, "a.pdf", nil); err == nil {
		t.Fatal("expected error on empty content")
	}
}

func TestDashboardMetrics(t *testing.T) {
	d := NewDashboard(NewAPIFactory(newFakeConn()))
	m, err := d.Metrics(context.Background())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m["totalFamilies"] != float64(12) {
		t.Errorf("unexpected metrics: %+v", m)
	}
}

func TestResourceIDParse(t *testing.T) {
	var rid ResourceID
	if err := rid.Parse("program/visit"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rid != VisitRID {
		t.Errorf("unexpected rid: %+v", rid)
	}

	for _, bad := range []string{"", "family", "/family", "case/"} {
		var r ResourceID
		if err := r.Parse(bad); err == nil {
			t.Errorf("expected parse error for %q", bad)
		}
	}
}
