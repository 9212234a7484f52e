package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/nikogura/checkin-scorer/pkg/scorer"
	"github.com/nikogura/checkin-scorer/pkg/tiers"
)

// RenderTiers writes the tier catalog in the requested format.
func RenderTiers(w io.Writer, list []tiers.Tier, format string) (err error) {
	switch format {
	case FormatJSON:
		err = writeJSON(w, list)
	case FormatMarkdown:
		err = writeString(w, tiersMarkdown(list))
	case FormatConsole:
		err = writeString(w, tiersConsole(newPainter(w), list))
	default:
		err = unknownFormat(format)
	}
	return err
}

func tiersMarkdown(list []tiers.Tier) (out string) {
	var b strings.Builder

	b.WriteString("| ID | Name | Red | Orange | Description |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, t := range list {
		fmt.Fprintf(&b, "| %s | %s | %d%% | %d%% | %s |\n",
			t.ID,
			t.Name,
			scorer.RoundPercent(t.Thresholds.Red),
			scorer.RoundPercent(t.Thresholds.Orange),
			t.Description,
		)
	}

	out = b.String()
	return out
}

func tiersConsole(p painter, list []tiers.Tier) (out string) {
	var b strings.Builder

	b.WriteString(header(p, "Scoring Tiers"))

	width := 0
	for _, t := range list {
		if len(t.ID) > width {
			width = len(t.ID)
		}
	}

	for _, t := range list {
		id := fmt.Sprintf("%-*s", width, t.ID)
		marker := ""
		if t.ID == tiers.DefaultID {
			marker = " " + p.paint(p.dim, "(default)")
		}
		fmt.Fprintf(&b, "%s  %s %s  %s%s\n",
			p.paint(p.bold, id),
			p.paint(p.red, fmt.Sprintf("<%3d%%", scorer.RoundPercent(t.Thresholds.Red))),
			p.paint(p.orange, fmt.Sprintf("<%3d%%", scorer.RoundPercent(t.Thresholds.Orange))),
			t.Name,
			marker,
		)
		fmt.Fprintf(&b, "%s  %s\n", strings.Repeat(" ", width), p.paint(p.dim, t.Description))
	}

	out = b.String()
	return out
}
