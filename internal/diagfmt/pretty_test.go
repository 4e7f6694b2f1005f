package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"ownlint/internal/decl"
	"ownlint/internal/diag"
	"ownlint/internal/ownership"
)

func TestPrettyPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, testBag(), PrettyOpts{ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"warning[OWN1003] Car -> Radio: dependency unchecked",
		"note(Radio): declared in parts.yaml",
		"error[OWN1005] Engine -> Wheel: stores unrelated type",
		"1 error(s), 1 warning(s)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyClipsWideMessages(t *testing.T) {
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.OwnDisjoint, "A", strings.Repeat("x", 200)))

	var buf bytes.Buffer
	Pretty(&buf, bag, PrettyOpts{Width: 40})
	line := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.HasSuffix(line, "...") {
		t.Fatalf("long message not clipped: %q", line)
	}
}

func TestPrettyEmptyBagPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, diag.NewBag(1), PrettyOpts{})
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func sampleDecls() []decl.Decl {
	return []decl.Decl{
		{Name: "A", Kind: decl.KindReference, Annotated: true, Owns: []string{"A", "B"}},
		{Name: "B", Kind: decl.KindReference, Annotated: true, Owns: []string{"B", "A"}},
	}
}

func TestGraphTextDump(t *testing.T) {
	res, err := ownership.Check(sampleDecls(), ownership.Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	var buf bytes.Buffer
	GraphText(&buf, &res, GraphOpts{})
	out := buf.String()
	for _, want := range []string{
		"A -> A, B",
		"B -> A, B",
		"cluster: A <-> B",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("graph dump missing %q:\n%s", want, out)
		}
	}
}
