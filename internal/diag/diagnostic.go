package diag

// Note attaches secondary context to a diagnostic, attributed to another
// declared type (or to the same one).
type Note struct {
	Subject string
	Msg     string
}

// Diagnostic is one validation finding. The validator operates on an
// already-extracted declaration set, so attribution is by type name rather
// than by source position; the caller maps names back to source locations.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Subject  string // type the finding is attributed to
	Related  string // optional second type involved in the finding
	Notes    []Note
}
