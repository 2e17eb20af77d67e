package ui

import (
	"fmt"
	"strings"

	"github.com/vergeframework/verge/internal/sync"
)

// RenderReport renders a sync report: one line per application, one
// line per table and index outcome, then a summary. The returned string
// ends with a newline.
func RenderReport(r *sync.Report) string {
	var b strings.Builder

	if r.Aborted {
		fmt.Fprintf(&b, "%s connection failed, nothing was synced\n", RenderFail("aborted:"))
		return b.String()
	}

	width := labelWidth(r)
	for _, app := range r.Apps {
		fmt.Fprintf(&b, "%s\n", RenderAccent(app.App))
		if app.NoModels {
			fmt.Fprintf(&b, "  %s\n", RenderWarn("no models found"))
			continue
		}
		for _, m := range app.Models {
			writeOutcome(&b, width, "table "+m.Table, m.Outcome)
			for _, idx := range m.Indexes {
				writeOutcome(&b, width, "index "+idx.Name, idx.Outcome)
			}
		}
	}

	t := r.Totals()
	summary := fmt.Sprintf("%d created, %d existing, %d failed", t.Created, t.Existing, t.Failed)
	if t.Failed > 0 {
		summary = RenderFail(summary)
	}
	fmt.Fprintf(&b, "\n%s\n", summary)

	return b.String()
}

// writeOutcome writes one aligned outcome line. The label is padded
// before styling so escape codes never skew the columns.
func writeOutcome(b *strings.Builder, width int, label string, o sync.Outcome) {
	padded := fmt.Sprintf("  %-*s  ", width, label)
	b.WriteString(padded)
	switch o.Status {
	case sync.StatusCreated:
		b.WriteString(RenderPass("created"))
	case sync.StatusExists:
		b.WriteString(RenderDim("exists"))
	case sync.StatusFailed:
		b.WriteString(RenderFail("failed: " + o.Reason))
	default:
		b.WriteString(string(o.Status))
	}
	b.WriteString("\n")
}

// labelWidth finds the widest outcome label so statuses line up.
func labelWidth(r *sync.Report) int {
	width := 0
	for _, app := range r.Apps {
		for _, m := range app.Models {
			if n := len("table " + m.Table); n > width {
				width = n
			}
			for _, idx := range m.Indexes {
				if n := len("index " + idx.Name); n > width {
					width = n
				}
			}
		}
	}
	return width
}
