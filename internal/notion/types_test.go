// Tests for Notion API type decoding.

package notion

import (
	"encoding/json"
	"testing"
)

func TestSchemaPreservesDeclaredOrder(t *testing.T) {
	// Declared order differs from alphabetical on purpose.
	data := []byte(`{
		"Zeta": {"id": "a", "name": "Zeta", "type": "rich_text"},
		"Name": {"id": "b", "name": "Name", "type": "title"},
		"Alpha": {"id": "c", "name": "Alpha", "type": "number"}
	}`)

	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := []string{"Zeta", "Name", "Alpha"}
	if len(s.Fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(s.Fields), len(want))
	}
	for i, key := range want {
		if s.Fields[i].Key != key {
			t.Errorf("field %d = %q, want %q", i, s.Fields[i].Key, key)
		}
	}
	if s.Fields[1].Property.Type != "title" {
		t.Errorf("Name type = %q, want title", s.Fields[1].Property.Type)
	}
}

func TestSchemaRoundTrip(t *testing.T) {
	data := []byte(`{"B":{"id":"1","name":"B","type":"title"},"A":{"id":"2","name":"A","type":"url"}}`)

	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var s2 Schema
	if err := json.Unmarshal(out, &s2); err != nil {
		t.Fatalf("Unmarshal(round trip) error = %v", err)
	}
	if len(s2.Fields) != 2 || s2.Fields[0].Key != "B" || s2.Fields[1].Key != "A" {
		t.Errorf("round trip lost order: %+v", s2.Fields)
	}
}

func TestSchemaRejectsNonObject(t *testing.T) {
	var s Schema
	if err := json.Unmarshal([]byte(`[1,2]`), &s); err == nil {
		t.Error("Unmarshal(array) expected error")
	}
}

func TestPageTitle(t *testing.T) {
	tests := []struct {
		name string
		page Page
		want string
	}{
		{
			"title property",
			Page{Properties: map[string]PropertyValue{
				"Name": {Type: "title", Title: []RichText{{PlainText: "My Page"}}},
			}},
			"My Page",
		},
		{
			"no title property",
			Page{Properties: map[string]PropertyValue{
				"Count": {Type: "number"},
			}},
			"Untitled",
		},
		{
			"empty title runs",
			Page{Properties: map[string]PropertyValue{
				"Name": {Type: "title"},
			}},
			"Untitled",
		},
		{
			"no properties",
			Page{},
			"Untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorImplementsError(t *testing.T) {
	e := &Error{Status: 404, Code: "object_not_found", Message: "Could not find page"}
	if e.Error() != "Could not find page" {
		t.Errorf("Error() = %q", e.Error())
	}
}
