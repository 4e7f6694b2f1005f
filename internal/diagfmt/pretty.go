package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ownlint/internal/diag"
)

// Pretty renders diagnostics for humans. It walks bag.Items() (call
// bag.Sort() first) and prints one block per diagnostic:
//
//	error[OWN1005] Engine -> Wheel: member "w" of "Engine" stores ...
//	    note(Wheel): first declared in parts.yaml
//
// followed by a severity summary line.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	errors, warnings := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errors++
		case diag.SevWarning:
			warnings++
		}

		head := fmt.Sprintf("%s[%s]", severityWord(d.Severity), d.Code.ID())
		subject := d.Subject
		if d.Related != "" {
			subject = fmt.Sprintf("%s -> %s", d.Subject, d.Related)
		}
		fmt.Fprintf(w, "%s %s: %s\n",
			severityStyle(d.Severity, opts.Color).Sprint(head),
			boldStyle(opts.Color).Sprint(subject),
			clip(d.Message, opts.Width))

		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "    %s(%s): %s\n",
					noteStyle(opts.Color).Sprint("note"), n.Subject, clip(n.Msg, opts.Width))
			}
		}
	}

	if bag.Len() > 0 {
		fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", errors, warnings)
	}
}

func severityWord(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "info"
}

func severityStyle(sev diag.Severity, enabled bool) *color.Color {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	if !enabled {
		c.DisableColor()
	}
	return c
}

func boldStyle(enabled bool) *color.Color {
	c := color.New(color.Bold)
	if !enabled {
		c.DisableColor()
	}
	return c
}

func noteStyle(enabled bool) *color.Color {
	c := color.New(color.FgCyan)
	if !enabled {
		c.DisableColor()
	}
	return c
}

func clip(msg string, width int) string {
	if width <= 0 || runewidth.StringWidth(msg) <= width {
		return msg
	}
	if width <= 3 {
		return runewidth.Truncate(msg, width, "")
	}
	return runewidth.Truncate(msg, width-3, "...")
}
