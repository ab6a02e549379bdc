package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestCIRecordWriter_Write(t *testing.T) {
	tmpFile := t.TempDir() + "/ci_output.ndjson"
	options := OutputOptions{Format: FormatCI, OutputPath: tmpFile}

	writer := &CIRecordWriter{}
	if err := writer.Write(sampleReport(), options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 { // 1 summary + 3 commits
		t.Fatalf("expected 4 lines, got %d: %s", len(lines), string(data))
	}

	var summary CISummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}
	if summary.Type != "summary" {
		t.Errorf("summary.Type = %q, want %q", summary.Type, "summary")
	}
	if summary.TotalCommits != 3 {
		t.Errorf("summary.TotalCommits = %d, want 3", summary.TotalCommits)
	}
	if summary.Authors != 2 {
		t.Errorf("summary.Authors = %d, want 2", summary.Authors)
	}
	if summary.Order != "oldest" {
		t.Errorf("summary.Order = %q, want %q", summary.Order, "oldest")
	}

	var entry CIRecordEntry
	if err := json.Unmarshal([]byte(lines[2]), &entry); err != nil {
		t.Fatalf("Failed to parse entry: %v", err)
	}
	if entry.Type != "commit" {
		t.Errorf("entry.Type = %q, want %q", entry.Type, "commit")
	}
	if entry.Subject != "Fix | pipe" {
		t.Errorf("entry.Subject = %q, want %q", entry.Subject, "Fix | pipe")
	}
}

func TestCIRecordWriter_WriteTop(t *testing.T) {
	tmpFile := t.TempDir() + "/ci_top.ndjson"
	options := OutputOptions{Format: FormatCI, OutputPath: tmpFile, Top: 1}

	if err := (&CIRecordWriter{}).Write(sampleReport(), options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}

func TestJSONRecordWriter_Write(t *testing.T) {
	tmpFile := t.TempDir() + "/report.json"
	options := OutputOptions{Format: FormatJSON, OutputPath: tmpFile}

	if err := (&JSONRecordWriter{}).Write(sampleReport(), options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var got JSONRecordsReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if got.RepoPath != "/test/repo" {
		t.Errorf("RepoPath = %q, want %q", got.RepoPath, "/test/repo")
	}
	if got.GeneratedAt != "2026-02-10T00:00:00Z" {
		t.Errorf("GeneratedAt = %q", got.GeneratedAt)
	}
	if len(got.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(got.Items))
	}
	if got.Items[0].AuthoredAt != "2023-12-13T02:43:57Z" {
		t.Errorf("Items[0].AuthoredAt = %q", got.Items[0].AuthoredAt)
	}
	if got.Items[1].Message != "Fix | pipe\n\nbody text" {
		t.Errorf("Items[1].Message = %q", got.Items[1].Message)
	}
}

func TestCSVRecordWriter_Write(t *testing.T) {
	tmpFile := t.TempDir() + "/report.csv"
	options := OutputOptions{Format: FormatCSV, OutputPath: tmpFile}

	if err := (&CSVRecordWriter{}).Write(sampleReport(), options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := os.Open(tmpFile)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "SHA" {
		t.Errorf("header[0] = %q, want SHA", rows[0][0])
	}
	if rows[2][5] != "Fix | pipe" {
		t.Errorf("subject = %q, want %q", rows[2][5], "Fix | pipe")
	}
}

func TestMarkdownRecordWriter_Write(t *testing.T) {
	tmpFile := t.TempDir() + "/report.md"
	options := OutputOptions{Format: FormatMarkdown, OutputPath: tmpFile}

	if err := (&MarkdownRecordWriter{}).Write(sampleReport(), options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"# Commit Records",
		"**Commits:** 3",
		"| 1 | `aaaaaaa` | 2023-12-13T02:43:57Z | Alice &lt;alice@example.com&gt; | Initial commit |",
		"Fix \\| pipe",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown output missing %q:\n%s", want, content)
		}
	}
}

func TestConsoleRecordWriter_Write(t *testing.T) {
	tmpFile := t.TempDir() + "/report.txt"
	report := sampleReport()
	report.Total = 5
	options := OutputOptions{Format: FormatConsole, OutputPath: tmpFile}

	if err := (&ConsoleRecordWriter{}).Write(report, options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	content := string(data)

	for _, want := range []string{"Commit Records", "Repository: /test/repo", "Commits: 3 of 5", "bbbbbbb", "Bob <bob@example.com>"} {
		if !strings.Contains(content, want) {
			t.Errorf("console output missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "body text") {
		t.Errorf("console output should show the subject only:\n%s", content)
	}
}

func TestOpenOutputWriter_BadPath(t *testing.T) {
	options := OutputOptions{OutputPath: t.TempDir() + "/missing/dir/out.json"}
	if err := (&JSONRecordWriter{}).Write(sampleReport(), options); err == nil {
		t.Fatal("expected error for unwritable output path")
	}
}
