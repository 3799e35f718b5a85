package report

import (
	"fmt"
	"io"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/model"
)

// Render writes a plain-text rendition of the contract to w: a
// lifecycle line always, then the report view when there is one.
// Rendering never fails on missing data; absent sections are simply
// omitted.
func Render(w io.Writer, c *model.Contract) {
	if c == nil {
		fmt.Fprintln(w, "no contract")
		return
	}

	fmt.Fprintf(w, "Contract %s", c.ID)
	if c.Filename != "" {
		fmt.Fprintf(w, "  (%s)", c.Filename)
	}
	fmt.Fprintln(w)

	switch c.Status {
	case model.StatusFailed:
		fmt.Fprintf(w, "Status: failed")
		if c.ErrorMessage != "" {
			fmt.Fprintf(w, " - %s", c.ErrorMessage)
		}
		fmt.Fprintln(w)
	case model.StatusCompleted:
		fmt.Fprintln(w, "Status: completed")
	default:
		// Progress is shown as received; out-of-range values are the
		// server's contract violation to surface, not ours to mask.
		fmt.Fprintf(w, "Status: %s (%d%%)\n", c.Status, c.Progress)
	}

	v := Build(c)
	if v == nil {
		return
	}

	for _, sec := range v.Sections {
		fmt.Fprintf(w, "\n%s\n", sec.Title)
		for _, f := range sec.Fields {
			fmt.Fprintf(w, "  %-22s %s\n", f.Label+":", f.Value)
		}
	}

	if v.Overall != nil {
		fmt.Fprintln(w, "\nConfidence Scores")
		for _, row := range v.Scores {
			fmt.Fprintf(w, "  %-22s %d%%\n", row.Label+":", row.Value)
		}
		fmt.Fprintf(w, "  %-22s %d%%\n", "Overall:", v.Overall.Value)
	}

	for _, gap := range v.Gaps {
		fmt.Fprintf(w, "\n%s\n", gap.Title)
		for _, item := range gap.Items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
}
