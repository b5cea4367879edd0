package minutes

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"meeting-minutes-pipeline/internal/models"
)

// RenderMarkdown formats a minutes document as the markdown file consumed by
// end users. Empty sections render an "- N/A" placeholder.
func RenderMarkdown(doc models.MinutesDocument, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Executive Summary\n")
	summary := strings.TrimSpace(doc.Summary)
	if summary == "" {
		summary = "N/A"
	}
	b.WriteString(summary + "\n\n")

	b.WriteString("## Key Points\n")
	writeBullets(&b, doc.KeyPoints)

	b.WriteString("\n## Decisions\n")
	writeBullets(&b, doc.Decisions)

	b.WriteString("\n## Action Items\n")
	if len(doc.Actions) == 0 {
		b.WriteString("- N/A\n")
	}
	for _, a := range doc.Actions {
		var notes []string
		if a.Owner != "" {
			notes = append(notes, "**Owner:** "+a.Owner)
		}
		if a.Due != "" {
			notes = append(notes, "**Due:** "+a.Due)
		}
		if a.Timestamp != "" {
			notes = append(notes, "**When discussed:** "+a.Timestamp)
		}
		line := "- " + strings.TrimSpace(a.Task)
		if len(notes) > 0 {
			line += " (" + strings.Join(notes, ", ") + ")"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("- N/A\n")
		return
	}
	for _, item := range items {
		b.WriteString("- " + strings.TrimSpace(item) + "\n")
	}
}

// WriteActionsCSV writes the action items as CSV with a header row.
func WriteActionsCSV(w io.Writer, actions []models.ActionItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"task", "owner", "due", "timestamp"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, a := range actions {
		if err := cw.Write([]string{a.Task, a.Owner, a.Due, a.Timestamp}); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
