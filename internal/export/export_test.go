package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sigap/sigap/internal/model1"
)

func testData() *model1.TableData {
	td := model1.NewTableData()
	td.SetHeader(model1.Header{
		{Name: "ID", Attrs: model1.Attrs{Hide: true}},
		{Name: "HEAD"},
		{Name: "VILLAGE"},
		{Name: "INCOME", Attrs: model1.Attrs{Numeric: true, Export: func(s string) string {
			return strings.Map(func(r rune) rune {
				if r >= '0' && r <= '9' {
					return r
				}
				return -1
			}, s)
		}}},
	})
	rows := []model1.Row{
		{ID: "f1", Fields: model1.Fields{"f1", "Budi Santoso", "Sukamaju", "Rp 1.500.000"}},
		{ID: "f2", Fields: model1.Fields{"f2", "Siti Aminah", "Mekarsari", "Rp 750.000"}},
		{ID: "f3", Fields: model1.Fields{"f3", "Wawan", "Sukamaju", "Rp 2.000.000"}},
	}
	for _, r := range rows {
		td.RowEvents().Add(model1.NewRowEvent(model1.EventUnchanged, r))
	}
	return td
}

func TestTableWritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "families")

	out, err := Table(testData(), Config{Filename: path, SheetName: "Keluarga"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(out, ".xlsx") {
		t.Errorf("expected .xlsx extension, got %s", out)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Keluarga")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}

	// hidden ID column must be skipped
	if got := rows[0][0]; got != "HEAD" {
		t.Errorf("expected first column HEAD, got %q", got)
	}
	if got := rows[1][0]; got != "Budi Santoso" {
		t.Errorf("unexpected first data cell: %q", got)
	}

	// export transform strips currency decoration
	if got := rows[1][2]; got != "1500000" {
		t.Errorf("expected raw digits in INCOME cell, got %q", got)
	}
}

func TestTableExportsFilteredSet(t *testing.T) {
	filtered := testData().Filter(model1.ParseFilter("village=sukamaju"))

	out, err := Table(filtered, Config{Filename: filepath.Join(t.TempDir(), "subset")})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Data")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 filtered rows, got %d", len(rows))
	}
	for _, r := range rows[1:] {
		if r[1] != "Sukamaju" {
			t.Errorf("row leaked through filter: %v", r)
		}
	}
}

func TestTableErrors(t *testing.T) {
	if _, err := Table(nil, Config{Filename: "x"}); err == nil {
		t.Error("expected error for nil data")
	}
	if _, err := Table(testData(), Config{}); err == nil {
		t.Error("expected error for empty filename")
	}
}

func TestDefaultFilename(t *testing.T) {
	name := DefaultFilename("families")
	if !strings.HasPrefix(name, "families-") {
		t.Errorf("unexpected name: %s", name)
	}
}
