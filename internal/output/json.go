package output

import (
	"encoding/json"
)

// JSONRecordWriter writes extraction reports as JSON.
type JSONRecordWriter struct{}

// JSONRecordsReport is the JSON output structure for an extraction report.
type JSONRecordsReport struct {
	RepoPath     string           `json:"repo"`
	Branch       string           `json:"branch,omitempty"`
	Order        string           `json:"order"`
	GeneratedAt  string           `json:"generatedAt"`
	TotalCommits int              `json:"totalCommits"`
	Items        []JSONRecordItem `json:"items"`
}

// JSONRecordItem is the JSON output structure for a single commit.
type JSONRecordItem struct {
	SHA         string `json:"sha"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	AuthoredAt  string `json:"authoredAt"`
	AuthorName  string `json:"authorName,omitempty"`
	AuthorEmail string `json:"authorEmail,omitempty"`
}

// Write outputs the extraction report as JSON.
func (w *JSONRecordWriter) Write(report *RecordsReport, options OutputOptions) error {
	records := limitTop(report.Records, options.Top)

	items := make([]JSONRecordItem, len(records))
	for i, r := range records {
		items[i] = JSONRecordItem{
			SHA:         r.ID,
			Message:     r.Message,
			Timestamp:   r.AuthoredAt,
			AuthoredAt:  authoredLabel(r),
			AuthorName:  r.AuthorName,
			AuthorEmail: r.AuthorEmail,
		}
	}

	jsonReport := JSONRecordsReport{
		RepoPath:     report.RepoPath,
		Branch:       report.Branch,
		Order:        report.Order.String(),
		GeneratedAt:  report.GeneratedAt.UTC().Format(reportDateTimeLayout),
		TotalCommits: report.Total,
		Items:        items,
	}

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonReport)
}
