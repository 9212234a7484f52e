package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/nikogura/checkin-scorer/pkg/scorer"
	"github.com/nikogura/checkin-scorer/pkg/tiers"
)

type scoreDocument struct {
	Tier    tiers.Tier         `json:"tier"`
	Result  scorer.ScoreResult `json:"result"`
	Percent int                `json:"percent"`
	Message string             `json:"message"`
	Summary string             `json:"summary"`
}

// RenderScore writes a score result in the requested format.
func RenderScore(w io.Writer, result scorer.ScoreResult, tier tiers.Tier, format string) (err error) {
	switch format {
	case FormatJSON:
		err = writeJSON(w, scoreDocument{
			Tier:    tier,
			Result:  result,
			Percent: scorer.RoundPercent(result.Percentage),
			Message: scorer.StatusMessage(result.Status, tier),
			Summary: scorer.Summarize(result, tier),
		})
	case FormatMarkdown:
		err = writeString(w, scoreMarkdown(result, tier))
	case FormatConsole:
		err = writeString(w, scoreConsole(newPainter(w), result, tier))
	default:
		err = unknownFormat(format)
	}
	return err
}

func scoreMarkdown(result scorer.ScoreResult, tier tiers.Tier) (out string) {
	var b strings.Builder

	b.WriteString("## Check-in Score\n\n")
	fmt.Fprintf(&b, "- **Tier:** %s\n", tier.Name)
	fmt.Fprintf(&b, "- **Score:** %d%% (%s)\n", scorer.RoundPercent(result.Percentage), result.Status)
	fmt.Fprintf(&b, "- **Points:** %g of %g\n", result.Score, result.MaxPossibleScore)
	fmt.Fprintf(&b, "- **Status:** %s\n", scorer.StatusMessage(result.Status, tier))
	b.WriteString("\n### Breakdown\n\n")
	b.WriteString("| Positive | Negative | Unanswered |\n")
	b.WriteString("|---|---|---|\n")
	fmt.Fprintf(&b, "| %g | %g | %g |\n",
		result.Breakdown.PositivePoints,
		result.Breakdown.NegativePoints,
		result.Breakdown.UnansweredWeight,
	)

	out = b.String()
	return out
}

func scoreConsole(p painter, result scorer.ScoreResult, tier tiers.Tier) (out string) {
	var b strings.Builder

	b.WriteString(header(p, "Check-in Score"))
	fmt.Fprintf(&b, "%s %s\n", p.paint(p.dim, "Tier:  "), tier.Name)
	fmt.Fprintf(&b, "%s %s  %s\n",
		p.paint(p.dim, "Score: "),
		p.paint(p.bold, fmt.Sprintf("%d%%", scorer.RoundPercent(result.Percentage))),
		statusBadge(p, result.Status),
	)
	fmt.Fprintf(&b, "%s %s\n", p.paint(p.dim, "Status:"), scorer.StatusMessage(result.Status, tier))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %g\n", p.paint(p.green, "+"), result.Breakdown.PositivePoints)
	fmt.Fprintf(&b, "  %s %g\n", p.paint(p.red, "-"), result.Breakdown.NegativePoints)
	fmt.Fprintf(&b, "  %s %g unanswered\n", p.paint(p.dim, "?"), result.Breakdown.UnansweredWeight)

	out = b.String()
	return out
}

// statusBadge renders a traffic-light marker such as "● ORANGE".
func statusBadge(p painter, status scorer.Status) (badge string) {
	label := "● " + strings.ToUpper(string(status))
	switch status {
	case scorer.StatusRed:
		badge = p.paint(p.red, label)
	case scorer.StatusOrange:
		badge = p.paint(p.orange, label)
	case scorer.StatusGreen:
		badge = p.paint(p.green, label)
	default:
		badge = p.paint(p.dim, "● UNKNOWN")
	}
	return badge
}

func header(p painter, text string) (out string) {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	out = fmt.Sprintf("%s\n%s\n", p.paint(p.header, upper), p.paint(p.dim, line))
	return out
}
