package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIRecordWriter writes extraction reports as NDJSON (one JSON object per line) for CI pipelines.
type CIRecordWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type         string `json:"type"`
	TotalCommits int    `json:"totalCommits"`
	Authors      int    `json:"authors"`
	Order        string `json:"order"`
}

// CIRecordEntry represents a single commit in CI output.
type CIRecordEntry struct {
	Type        string `json:"type"`
	SHA         string `json:"sha"`
	Timestamp   string `json:"timestamp"`
	AuthorEmail string `json:"authorEmail,omitempty"`
	Subject     string `json:"subject"`
}

// Write outputs the extraction report as NDJSON.
func (w *CIRecordWriter) Write(report *RecordsReport, options OutputOptions) error {
	records := limitTop(report.Records, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	authors := make(map[string]struct{})
	for _, r := range records {
		authors[r.AuthorEmail] = struct{}{}
	}

	summary := CISummary{
		Type:         "summary",
		TotalCommits: len(records),
		Authors:      len(authors),
		Order:        report.Order.String(),
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, r := range records {
		entry := CIRecordEntry{
			Type:        "commit",
			SHA:         r.ID,
			Timestamp:   r.AuthoredAt,
			AuthorEmail: r.AuthorEmail,
			Subject:     r.Subject(),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
