package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ownlint/internal/diag"
)

const cleanDoc = `
types:
  - name: Engine
    kind: reference
    owns: [Part]
    members:
      - {name: part, type: Part}
  - name: Part
    kind: reference
    owns: []
`

const brokenDoc = `
types:
  - name: Car
    kind: reference
    owns: []
    members:
      - {name: engine, type: Turbine}
`

func writeDocs(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestCheckDocument(t *testing.T) {
	dir := writeDocs(t, map[string]string{"clean.yaml": cleanDoc})

	res, err := CheckDocument(filepath.Join(dir, "clean.yaml"), Options{})
	if err != nil {
		t.Fatalf("CheckDocument: %v", err)
	}
	if res.Decls != 2 {
		t.Fatalf("Decls = %d, want 2", res.Decls)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected findings:\n%s", diag.FormatGoldenDiagnostics(res.Bag.Items(), true))
	}
}

func TestCheckDocumentLoadFailureIsError(t *testing.T) {
	dir := writeDocs(t, map[string]string{"bad.yaml": "types:\n  - kind: reference\n"})
	if _, err := CheckDocument(filepath.Join(dir, "bad.yaml"), Options{}); err == nil {
		t.Fatal("expected load error for malformed document")
	}
}

func TestCheckDirReturnsResultsInPathOrder(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"b_broken.yaml": brokenDoc,
		"a_clean.yaml":  cleanDoc,
	})

	results, err := CheckDir(context.Background(), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if filepath.Base(results[0].Path) != "a_clean.yaml" || filepath.Base(results[1].Path) != "b_broken.yaml" {
		t.Fatalf("results out of order: %s, %s", results[0].Path, results[1].Path)
	}
	if results[0].Bag.HasErrors() {
		t.Fatal("clean document reported errors")
	}
	if !results[1].Bag.HasErrors() {
		t.Fatal("broken document reported no errors")
	}
}

func TestCheckDirEmpty(t *testing.T) {
	if _, err := CheckDir(context.Background(), t.TempDir(), Options{}); err == nil {
		t.Fatal("expected error for directory without documents")
	}
}

func TestCheckPathDispatches(t *testing.T) {
	dir := writeDocs(t, map[string]string{"clean.yaml": cleanDoc})

	fromDir, err := CheckPath(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("CheckPath(dir): %v", err)
	}
	fromFile, err := CheckPath(context.Background(), filepath.Join(dir, "clean.yaml"), Options{})
	if err != nil {
		t.Fatalf("CheckPath(file): %v", err)
	}
	if len(fromDir) != 1 || len(fromFile) != 1 {
		t.Fatalf("got %d/%d results, want 1/1", len(fromDir), len(fromFile))
	}
}

func TestMergeBags(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"a.yaml": cleanDoc,
		"b.yaml": brokenDoc,
	})
	results, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	merged := MergeBags(results)
	if !merged.HasErrors() {
		t.Fatal("merged bag lost the broken document's errors")
	}
}

func TestProgressEvents(t *testing.T) {
	dir := writeDocs(t, map[string]string{"clean.yaml": cleanDoc})
	events := make(chan Event, 16)

	_, err := CheckDir(context.Background(), dir, Options{Progress: ChannelSink{Ch: events}})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	close(events)

	var last Event
	count := 0
	for ev := range events {
		last = ev
		count++
	}
	if count == 0 {
		t.Fatal("no progress events emitted")
	}
	if last.Status != StatusDone {
		t.Fatalf("final event status = %d, want StatusDone", last.Status)
	}
}
