package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ownlint/internal/diag"
)

func testBag() *diag.Bag {
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.OwnDisjoint, "Engine", "stores unrelated type").WithRelated("Wheel"))
	bag.Add(diag.NewWarning(diag.OwnUnannotated, "Car", "dependency unchecked").
		WithRelated("Radio").
		WithNote("Radio", "declared in parts.yaml"))
	bag.Sort()
	return bag
}

func TestJSONOutputShape(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, testBag(), JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 2 || out.Errors != 1 || out.Warnings != 1 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/1", out.Count, out.Errors, out.Warnings)
	}
	if out.Diagnostics[0].Subject != "Car" || out.Diagnostics[0].Code != "OWN1003" {
		t.Fatalf("first diagnostic = %+v", out.Diagnostics[0])
	}
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Fatalf("notes not included: %+v", out.Diagnostics[0])
	}
}

func TestJSONRespectsMax(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, testBag(), JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out.Diagnostics) != 1 {
		t.Fatalf("emitted %d diagnostics, want 1", len(out.Diagnostics))
	}
	if out.Count != 2 {
		t.Fatalf("Count = %d, want the untruncated total 2", out.Count)
	}
}
