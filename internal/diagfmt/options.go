package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	Width     int // maximum line width, 0 = unlimited
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Max          int // output truncation, the Bag itself is untouched
	IncludeNotes bool
}

// GraphOpts configures ownership-graph dumps.
type GraphOpts struct {
	Color bool
}
