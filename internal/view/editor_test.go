package view

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestGeneratePatch(t *testing.T) {
	original := map[string]interface{}{
		"headName": "Budi Santoso",
		"village":  "Sukamaju",
		"status":   "aktif",
	}
	modified := map[string]interface{}{
		"headName": "Budi Santoso",
		"village":  "Mekarsari",
		"status":   "aktif",
	}

	patch, err := GeneratePatch(original, modified)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ops []map[string]interface{}
	if err := json.Unmarshal(patch, &ops); err != nil {
		t.Fatalf("patch is not valid JSON: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("expected 1 op, got %d", len(ops))
	}
	if ops[0]["op"] != "replace" || ops[0]["path"] != "/village" || ops[0]["value"] != "Mekarsari" {
		t.Errorf("unexpected op: %+v", ops[0])
	}
}

func TestGeneratePatchNoChanges(t *testing.T) {
	doc := map[string]interface{}{"status": "aktif"}
	if _, err := GeneratePatch(doc, map[string]interface{}{"status": "aktif"}); !errors.Is(err, ErrNoChanges) {
		t.Errorf("expected ErrNoChanges, got %v", err)
	}
}

func TestFilterEditableFields(t *testing.T) {
	doc := map[string]interface{}{
		"id":        "fam-1",
		"createdAt": "2026-01-01T00:00:00Z",
		"updatedAt": "2026-02-01T00:00:00Z",
		"headName":  "Budi",
	}

	out := FilterEditableFields(doc)
	if _, ok := out["id"]; ok {
		t.Error("id should be stripped")
	}
	if _, ok := out["createdAt"]; ok {
		t.Error("createdAt should be stripped")
	}
	if out["headName"] != "Budi" {
		t.Errorf("editable field lost: %+v", out)
	}
	// Original untouched.
	if _, ok := doc["id"]; !ok {
		t.Error("original document must not be mutated")
	}
}

func TestStripErrorComment(t *testing.T) {
	in := []byte("// ERROR: boom\n// ---\n\n{\n  \"a\": 1\n}\n")
	out := stripErrorComment(in)

	var doc map[string]interface{}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("stripped content is not valid JSON: %v", err)
	}
	if doc["a"] != float64(1) {
		t.Errorf("unexpected doc: %+v", doc)
	}
}

func TestStripErrorCommentNoComment(t *testing.T) {
	in := []byte("{\"a\": 1}")
	if got := string(stripErrorComment(in)); got != string(in) {
		t.Errorf("content without comments should pass through, got %q", got)
	}
}
