package render

import (
	"testing"
	"time"

	"github.com/sigap/sigap/internal/dao"
	"github.com/sigap/sigap/internal/model1"
)

func testRecord(id, name string, fields map[string]any) dao.Record {
	created := time.Now().Add(-48 * time.Hour)
	return &dao.BaseRecord{ID: id, Name: name, CreatedAt: &created, Fields: fields}
}

func TestFamilyRender(t *testing.T) {
	var re Family
	h := re.Header()

	rec := testRecord("f1", "Budi Santoso", map[string]any{
		"nik":           "3201234567890001",
		"village":       "Sukamaju",
		"children":      []any{map[string]any{}, map[string]any{}},
		"monthlyIncome": float64(1500000),
		"status":        "aktif",
	})

	var row model1.Row
	if err := re.Render(rec, &row); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(row.Fields) != len(h) {
		t.Fatalf("fields/header mismatch: %d vs %d", len(row.Fields), len(h))
	}
	if row.ID != "f1" {
		t.Errorf("unexpected row id: %s", row.ID)
	}

	idx, _ := h.IndexOf("CHILDREN", true)
	if row.Fields[idx] != "2" {
		t.Errorf("expected nested list count, got %q", row.Fields[idx])
	}

	idx, _ = h.IndexOf("INCOME", true)
	if row.Fields[idx] != "Rp 1.500.000" {
		t.Errorf("unexpected income: %q", row.Fields[idx])
	}
	if got := h[idx].Export(row.Fields[idx]); got != "1500000" {
		t.Errorf("export transform: expected raw digits, got %q", got)
	}

	idx, _ = h.IndexOf("AGE", true)
	if !h.IsTimeCol(idx) {
		t.Error("expected AGE to be a time column")
	}
	if row.Fields[idx] != "2d" {
		t.Errorf("unexpected age: %q", row.Fields[idx])
	}
}

func TestFamilyRenderMissingFields(t *testing.T) {
	var re Family

	var row model1.Row
	if err := re.Render(testRecord("f9", "", map[string]any{}), &row); err != nil {
		t.Fatalf("render: %v", err)
	}

	h := re.Header()
	idx, _ := h.IndexOf("HEAD", true)
	if row.Fields[idx] != NAValue {
		t.Errorf("expected %q for missing name, got %q", NAValue, row.Fields[idx])
	}
	idx, _ = h.IndexOf("VILLAGE", true)
	if row.Fields[idx] != MissingValue {
		t.Errorf("expected %q for missing village, got %q", MissingValue, row.Fields[idx])
	}
}

func TestChildRenderGender(t *testing.T) {
	var re Child
	h := re.Header()

	var row model1.Row
	rec := testRecord("c1", "Andi", map[string]any{"gender": "L", "schoolStatus": "sekolah"})
	if err := re.Render(rec, &row); err != nil {
		t.Fatalf("render: %v", err)
	}

	idx, _ := h.IndexOf("GENDER", true)
	if row.Fields[idx] != "Laki-laki" {
		t.Errorf("expected expanded gender, got %q", row.Fields[idx])
	}
}

func TestChildColorer(t *testing.T) {
	var re Child
	h := re.Header()
	colorer := re.ColorerFunc()

	var row model1.Row
	rec := testRecord("c2", "Rina", map[string]any{"gender": "P", "schoolStatus": "putus"})
	if err := re.Render(rec, &row); err != nil {
		t.Fatalf("render: %v", err)
	}

	ev := model1.NewRowEvent(model1.EventUnchanged, row)
	if c := colorer(h, &ev); c != model1.ErrColor {
		t.Errorf("expected dropout rows in error color, got %v", c)
	}
}

func TestStatusColorer(t *testing.T) {
	var re Family
	h := re.Header()
	colorer := re.ColorerFunc()

	cases := map[string]struct {
		status string
		want   string
	}{
		"active":    {"aktif", "std"},
		"graduated": {"lulus", "completed"},
		"dropped":   {"keluar", "kill"},
	}

	for name, tc := range cases {
		rec := testRecord("f1", "X", map[string]any{"status": tc.status})
		var row model1.Row
		if err := re.Render(rec, &row); err != nil {
			t.Fatalf("%s: render: %v", name, err)
		}
		ev := model1.NewRowEvent(model1.EventUnchanged, row)
		got := colorer(h, &ev)
		switch tc.want {
		case "std":
			if got != model1.StdColor {
				t.Errorf("%s: expected std color, got %v", name, got)
			}
		case "completed":
			if got != model1.CompletedColor {
				t.Errorf("%s: expected completed color, got %v", name, got)
			}
		case "kill":
			if got != model1.KillColor {
				t.Errorf("%s: expected kill color, got %v", name, got)
			}
		}
	}
}

func TestAllRenderersRowMatchesHeader(t *testing.T) {
	rids := []*dao.ResourceID{
		&dao.FamilyRID, &dao.ChildRID, &dao.GuardianRID,
		&dao.EmployeeRID, &dao.SpouseRID, &dao.BusinessRID,
		&dao.GalleryRID, &dao.VisitRID, &dao.DocumentRID,
	}

	for _, rid := range rids {
		re, err := For(rid)
		if err != nil {
			t.Fatalf("%s: %v", rid, err)
		}

		var row model1.Row
		if err := re.Render(testRecord("x1", "X", map[string]any{}), &row); err != nil {
			t.Fatalf("%s: render: %v", rid, err)
		}
		if len(row.Fields) != len(re.Header()) {
			t.Errorf("%s: fields/header mismatch: %d vs %d", rid, len(row.Fields), len(re.Header()))
		}
	}
}

func TestForUnknown(t *testing.T) {
	if _, err := For(&dao.ResourceID{Group: "x", Resource: "y"}); err == nil {
		t.Fatal("expected error for unknown resource id")
	}
	if _, err := For(nil); err == nil {
		t.Fatal("expected error for nil resource id")
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{float64(0), "Rp 0"},
		{float64(950), "Rp 950"},
		{float64(1500000), "Rp 1.500.000"},
		{float64(-25000), "Rp -25.000"},
		{"750000", "Rp 750.000"},
		{nil, NAValue},
		{"abc", NAValue},
	}
	for _, tc := range cases {
		if got := FormatRupiah(tc.in); got != tc.want {
			t.Errorf("FormatRupiah(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExportDigits(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Rp 1.500.000", "1500000"},
		{"Rp -25.000", "-25000"},
		{"n/a", "0"},
	}
	for _, tc := range cases {
		if got := ExportDigits(tc.in); got != tc.want {
			t.Errorf("ExportDigits(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHumanDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{49 * time.Hour, "2d"},
		{400 * 24 * time.Hour, "1y"},
	}
	for _, tc := range cases {
		if got := HumanDuration(tc.d); got != tc.want {
			t.Errorf("HumanDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
