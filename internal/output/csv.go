package output

import (
	"encoding/csv"
)

// CSVRecordWriter writes extraction reports as CSV.
type CSVRecordWriter struct{}

// Write outputs the extraction report as CSV.
func (w *CSVRecordWriter) Write(report *RecordsReport, options OutputOptions) error {
	records := limitTop(report.Records, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	writer := csv.NewWriter(out)

	if err := writer.Write([]string{"SHA", "Timestamp", "AuthoredAt", "AuthorName", "AuthorEmail", "Subject"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.AuthoredAt,
			authoredLabel(r),
			r.AuthorName,
			r.AuthorEmail,
			r.Subject(),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
