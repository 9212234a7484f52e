package renderer

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/nikogura/checkin-scorer/pkg/history"
)

// RenderCheckIns writes stored check-ins, newest first, in the requested format.
func RenderCheckIns(w io.Writer, records []history.Record, format string) (err error) {
	switch format {
	case FormatJSON:
		err = writeJSON(w, records)
	case FormatMarkdown:
		err = writeString(w, checkInsMarkdown(records))
	case FormatConsole:
		err = writeString(w, checkInsConsole(newPainter(w), records))
	default:
		err = unknownFormat(format)
	}
	return err
}

func checkInsMarkdown(records []history.Record) (out string) {
	var b strings.Builder

	b.WriteString("| Submitted | ID | Fields |\n")
	b.WriteString("|---|---|---|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			r.SubmittedAt.Format(time.RFC3339),
			r.ID,
			strings.Join(fieldNames(r), ", "),
		)
	}

	out = b.String()
	return out
}

func checkInsConsole(p painter, records []history.Record) (out string) {
	var b strings.Builder

	b.WriteString(header(p, "Check-ins"))
	if len(records) == 0 {
		b.WriteString(p.paint(p.dim, "no check-ins recorded") + "\n")
		out = b.String()
		return out
	}

	for _, r := range records {
		fmt.Fprintf(&b, "%s  %s\n", p.paint(p.bold, r.SubmittedAt.Local().Format("2006-01-02 15:04")), p.paint(p.dim, r.ID))
		for _, name := range fieldNames(r) {
			fmt.Fprintf(&b, "  %-24s %v\n", name, r.CheckIn[name].Value)
		}
	}

	out = b.String()
	return out
}

func fieldNames(r history.Record) (names []string) {
	names = make([]string, 0, len(r.CheckIn))
	for name := range r.CheckIn {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
