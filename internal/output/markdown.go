package output

import (
	"fmt"
	"strings"
)

// MarkdownRecordWriter writes extraction reports as Markdown.
type MarkdownRecordWriter struct{}

// Write outputs the extraction report as a Markdown table.
func (w *MarkdownRecordWriter) Write(report *RecordsReport, options OutputOptions) error {
	records := limitTop(report.Records, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Commit Records")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Order:** %s first\n\n", report.Order)
	fmt.Fprintf(out, "**Commits:** %d\n\n", len(report.Records))

	fmt.Fprintln(out, "| # | SHA | Date | Author | Message |")
	fmt.Fprintln(out, "|---|-----|------|--------|---------|")
	for i, r := range records {
		fmt.Fprintf(out, "| %d | `%s` | %s | %s | %s |\n",
			i+1,
			shortSHA(r.ID),
			authoredLabel(r),
			escapeMarkdown(authorLabel(r)),
			escapeMarkdown(truncateMessage(r.Subject(), 72)),
		)
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(s)
}
