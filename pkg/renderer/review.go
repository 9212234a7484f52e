package renderer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nikogura/checkin-scorer/pkg/review"
	"github.com/nikogura/checkin-scorer/pkg/scorer"
	"github.com/nikogura/checkin-scorer/pkg/tiers"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type reviewDocument struct {
	Tier   tiers.Tier         `json:"tier"`
	Review review.CoachReview `json:"review"`
}

// RenderReview writes a coach review in the requested format.
func RenderReview(w io.Writer, coachReview review.CoachReview, tier tiers.Tier, format string) (err error) {
	switch format {
	case FormatJSON:
		err = writeJSON(w, reviewDocument{Tier: tier, Review: coachReview})
	case FormatMarkdown:
		err = writeString(w, reviewMarkdown(coachReview, tier))
	case FormatConsole:
		err = writeString(w, reviewConsole(newPainter(w), coachReview, tier))
	default:
		err = unknownFormat(format)
	}
	return err
}

// ScoreLabel formats a category score. Training is a fraction shown as a percentage;
// nutrition and mindset are shown on their five point scale.
func ScoreLabel(category string, score float64) (label string) {
	if category == review.CategoryTraining {
		label = fmt.Sprintf("%d%%", scorer.RoundPercent(score))
		return label
	}
	label = fmt.Sprintf("%g/5", score)
	return label
}

func reviewMarkdown(coachReview review.CoachReview, tier tiers.Tier) (out string) {
	var b strings.Builder
	title := cases.Title(language.English)

	b.WriteString("## Coach Review\n\n")
	fmt.Fprintf(&b, "- **Tier:** %s\n", tier.Name)
	fmt.Fprintf(&b, "- **Updated:** %s\n", coachReview.LastUpdated.Format(time.RFC3339))

	for _, name := range review.Categories() {
		category, _ := coachReview.Category(name)

		fmt.Fprintf(&b, "\n### %s (%s)\n", title.String(name), ScoreLabel(name, category.Score))
		writeMarkdownList(&b, "Recommendations", category.Recommendations)
		writeMarkdownList(&b, "Improvements", category.Improvements)
	}

	out = b.String()
	return out
}

func writeMarkdownList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s**\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func reviewConsole(p painter, coachReview review.CoachReview, tier tiers.Tier) (out string) {
	var b strings.Builder
	title := cases.Title(language.English)

	b.WriteString(header(p, "Coach Review"))
	fmt.Fprintf(&b, "%s %s\n", p.paint(p.dim, "Tier:   "), tier.Name)
	fmt.Fprintf(&b, "%s %s\n", p.paint(p.dim, "Updated:"), coachReview.LastUpdated.Format(time.RFC822))

	for _, name := range review.Categories() {
		category, _ := coachReview.Category(name)

		fmt.Fprintf(&b, "\n%s  %s\n", p.paint(p.bold, title.String(name)), ScoreLabel(name, category.Score))
		for _, rec := range category.Recommendations {
			fmt.Fprintf(&b, "  %s %s\n", p.paint(p.green, "✓"), rec)
		}
		for _, imp := range category.Improvements {
			fmt.Fprintf(&b, "  %s %s\n", p.paint(p.orange, "→"), imp)
		}
		if len(category.Recommendations) == 0 && len(category.Improvements) == 0 {
			fmt.Fprintf(&b, "  %s\n", p.paint(p.dim, "no notes"))
		}
	}

	out = b.String()
	return out
}
