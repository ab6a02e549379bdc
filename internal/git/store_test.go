package git

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveAndLoadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".commit_data", "repo_commit_data.json")
	records := []CommitRecord{
		{ID: "5f2d4b7468be1b13c9919e29c0ebe24aa6c88945", Message: "Fourth commit", AuthoredAt: "1702435688", AuthorName: "John Doe", AuthorEmail: "test1@example.com"},
		{ID: "20aebad0585f3c7ddbf22e599fd16e9691d5a1b4", Message: "Initial commit", AuthoredAt: "1702435437"},
	}

	if err := SaveRecords(records, path); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	got, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveRecords_EmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := SaveRecords(nil, path); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("content = %q, expected []", data)
	}
}

func TestLoadRecords_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "Not JSON", content: "pick abc"},
		{name: "Wrong shape", content: `{"sha":"abc"}`},
		{name: "Missing sha", content: `[{"comment":"x","date":"1"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := LoadRecords(path)
			if !errors.Is(err, ErrMalformedRecords) {
				t.Fatalf("error = %v, expected ErrMalformedRecords", err)
			}
		})
	}

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadRecords(filepath.Join(dir, "absent.json"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("error = %v, expected ErrNotExist", err)
		}
	})
}

func TestRecordsFileName(t *testing.T) {
	name, err := RecordsFileName(filepath.Join("some", "path", "test_repo"))
	if err != nil {
		t.Fatalf("RecordsFileName: %v", err)
	}
	if name != "test_repo_commit_data.json" {
		t.Errorf("RecordsFileName = %q", name)
	}
}
