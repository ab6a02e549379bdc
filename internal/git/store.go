package git

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// ErrMalformedRecords is returned when a records file cannot be decoded.
var ErrMalformedRecords = errors.New("malformed commit records file")

// RecordsFileName returns the default records file name for a repository path,
// e.g. "myrepo_commit_data.json".
func RecordsFileName(repoPath string) (string, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return "", err
	}
	name := filepath.Base(abs)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid repository path %q", repoPath)
	}
	return name + "_commit_data.json", nil
}

// SaveRecords writes records as indented JSON, replacing path atomically.
func SaveRecords(records []CommitRecord, path string) error {
	if records == nil {
		records = []CommitRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return renameio.WriteFile(path, data, 0o644)
}

// LoadRecords reads a file written by SaveRecords.
func LoadRecords(path string) ([]CommitRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []CommitRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecords, path, err)
	}
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: %s: record %d has no sha", ErrMalformedRecords, path, i)
		}
	}
	return records, nil
}
