package model1

import "testing"

func testHeader() Header {
	return Header{
		{Name: "NAME"},
		{Name: "STATUS"},
		{Name: "AGE", Attrs: Attrs{Time: true}},
	}
}

func testData() *TableData {
	data := NewTableData()
	data.SetHeader(testHeader())
	rows := []Row{
		{ID: "1", Fields: Fields{"Ani", "aktif", "2d"}},
		{ID: "2", Fields: Fields{"Budi", "aktif", "10d"}},
		{ID: "3", Fields: Fields{"Citra", "nonaktif", "1h"}},
	}
	for _, r := range rows {
		data.RowEvents().Add(NewRowEvent(EventAdd, r))
	}
	return data
}

func TestFilterAnyColumn(t *testing.T) {
	data := testData()

	got := data.Filter(ParseFilter("i"))
	if got.RowCount() != 3 {
		t.Errorf("substring 'i' should match all rows, got %d", got.RowCount())
	}

	got = data.Filter(ParseFilter("bud"))
	if got.RowCount() != 1 {
		t.Fatalf("expected 1 row, got %d", got.RowCount())
	}
	re, _ := got.RowEvents().At(0)
	if re.Row.ID != "2" {
		t.Errorf("expected row 2, got %s", re.Row.ID)
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	data := testData()
	if got := data.Filter(ParseFilter("ANI")).RowCount(); got != 1 {
		t.Errorf("expected 1 row, got %d", got)
	}
}

func TestFilterColumnScoped(t *testing.T) {
	data := testData()

	got := data.Filter(ParseFilter("status=nonaktif"))
	if got.RowCount() != 1 {
		t.Fatalf("expected 1 row, got %d", got.RowCount())
	}

	// AND semantics across terms.
	got = data.Filter(ParseFilter("status=aktif name=a"))
	if got.RowCount() != 1 {
		t.Errorf("expected 1 row for ANDed terms, got %d", got.RowCount())
	}

	// Unknown column matches nothing.
	got = data.Filter(ParseFilter("bogus=x"))
	if got.RowCount() != 0 {
		t.Errorf("expected 0 rows, got %d", got.RowCount())
	}
}

func TestFilterDoesNotMutateSource(t *testing.T) {
	data := testData()
	_ = data.Filter(ParseFilter("bud"))

	if data.RowCount() != 3 {
		t.Errorf("filtering mutated the source: %d rows", data.RowCount())
	}

	if got := data.Filter(Filter{}); got.RowCount() != 3 {
		t.Errorf("blank filter should restore all rows, got %d", got.RowCount())
	}
}

func TestSortByColumn(t *testing.T) {
	data := testData()

	data.Sort("NAME", false)
	re, _ := data.RowEvents().At(0)
	if re.Row.ID != "3" {
		t.Errorf("descending by NAME should put Citra first, got %s", re.Row.ID)
	}

	data.Sort("AGE", true)
	re, _ = data.RowEvents().At(0)
	if re.Row.ID != "3" {
		t.Errorf("ascending by AGE should put 1h first, got %s", re.Row.ID)
	}
}

func TestSortUnknownColumnIsNoop(t *testing.T) {
	data := testData()
	data.Sort("BOGUS", true)
	re, _ := data.RowEvents().At(0)
	if re.Row.ID != "1" {
		t.Errorf("unknown column changed row order, got %s first", re.Row.ID)
	}
}
