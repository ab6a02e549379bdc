package output

import (
	"io"
	"os"

	"github.com/masmgr/reauthor/internal/git"
)

const (
	reportDateTimeLayout = "2006-01-02T15:04:05Z"
	shortSHALength       = 7
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func shortSHA(sha string) string {
	if len(sha) <= shortSHALength {
		return sha
	}
	return sha[:shortSHALength]
}

// authoredLabel renders the author date, or the raw value when it is not a timestamp.
func authoredLabel(r git.CommitRecord) string {
	t, err := r.AuthoredTime()
	if err != nil {
		return r.AuthoredAt
	}
	return t.Format(reportDateTimeLayout)
}

func authorLabel(r git.CommitRecord) string {
	switch {
	case r.AuthorName == "" && r.AuthorEmail == "":
		return "-"
	case r.AuthorEmail == "":
		return r.AuthorName
	default:
		return git.Identity{Name: r.AuthorName, Email: r.AuthorEmail}.String()
	}
}

func truncateMessage(msg string, maxLen int) string {
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}
