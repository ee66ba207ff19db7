package api

import (
	"reflect"
	"testing"
)

func TestDecodeConvertsNestedKeys(t *testing.T) {
	wire := map[string]any{
		"full_name":  "Ani Lestari",
		"birth_date": "2015-03-01",
		"guardian": map[string]any{
			"phone_number": "0812",
		},
		"visit_logs": []any{
			map[string]any{"visited_at": "2026-01-02"},
		},
	}

	got := Decode(wire)

	want := map[string]any{
		"fullName":  "Ani Lestari",
		"birthDate": "2015-03-01",
		"guardian": map[string]any{
			"phoneNumber": "0812",
		},
		"visitLogs": []any{
			map[string]any{"visitedAt": "2026-01-02"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode mismatch:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	docs := []map[string]any{
		{"fullName": "Budi", "age": float64(7)},
		{"nested": map[string]any{"birthDate": "x", "items": []any{map[string]any{"itemName": "a"}}}},
		{"id": "abc-123"},
		{},
	}

	for _, doc := range docs {
		got := Decode(Encode(doc))
		if !reflect.DeepEqual(got, doc) {
			t.Errorf("round trip changed document:\n got: %#v\nwant: %#v", got, doc)
		}
	}
}

func TestDecodeNil(t *testing.T) {
	if Decode(nil) != nil {
		t.Error("expected nil for nil input")
	}
}
