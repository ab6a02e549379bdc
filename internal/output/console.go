package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleRecordWriter writes extraction reports to the console.
type ConsoleRecordWriter struct{}

// Write outputs the extraction report as an aligned table.
func (w *ConsoleRecordWriter) Write(report *RecordsReport, options OutputOptions) error {
	records := limitTop(report.Records, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Commit Records")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Order: %s first\n", report.Order)
	if report.Total != len(report.Records) {
		fmt.Fprintf(out, "Commits: %d of %d (author filter applied)\n\n", len(report.Records), report.Total)
	} else {
		fmt.Fprintf(out, "Commits: %d\n\n", len(report.Records))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSHA\tDate\tAuthor\tMessage")
	for i, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			shortSHA(r.ID),
			authoredLabel(r),
			authorLabel(r),
			truncateMessage(r.Subject(), 50),
		)
	}
	return tw.Flush()
}
