package output

import (
	"time"

	"github.com/masmgr/reauthor/internal/git"
)

// Compile-time interface conformance checks.
var (
	_ RecordReportWriter = (*ConsoleRecordWriter)(nil)
	_ RecordReportWriter = (*JSONRecordWriter)(nil)
	_ RecordReportWriter = (*CSVRecordWriter)(nil)
	_ RecordReportWriter = (*MarkdownRecordWriter)(nil)
	_ RecordReportWriter = (*CIRecordWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
}

// RecordsReport holds the commit records extracted from a repository.
type RecordsReport struct {
	RepoPath    string
	Branch      string
	Order       git.TraversalOrder
	GeneratedAt time.Time
	Records     []git.CommitRecord
	// Total is the number of records before any author filter was applied.
	Total int
}

// RecordReportWriter writes extraction reports.
type RecordReportWriter interface {
	Write(report *RecordsReport, options OutputOptions) error
}

// NewRecordReportWriter creates a report writer for the specified format.
func NewRecordReportWriter(format OutputFormat) RecordReportWriter {
	switch format {
	case FormatJSON:
		return &JSONRecordWriter{}
	case FormatCSV:
		return &CSVRecordWriter{}
	case FormatMarkdown:
		return &MarkdownRecordWriter{}
	case FormatCI:
		return &CIRecordWriter{}
	default:
		return &ConsoleRecordWriter{}
	}
}
