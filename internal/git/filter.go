package git

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FilterByAuthorEmail returns the records whose author email matches any of the glob
// patterns. Matching is case-insensitive. No patterns means no filtering.
func FilterByAuthorEmail(records []CommitRecord, patterns []string) ([]CommitRecord, error) {
	if len(patterns) == 0 {
		return records, nil
	}

	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
		if !doublestar.ValidatePattern(lowered[i]) {
			return nil, fmt.Errorf("invalid author filter %q", p)
		}
	}

	filtered := make([]CommitRecord, 0, len(records))
	for _, r := range records {
		email := strings.ToLower(r.AuthorEmail)
		for _, p := range lowered {
			if ok, _ := doublestar.Match(p, email); ok {
				filtered = append(filtered, r)
				break
			}
		}
	}
	return filtered, nil
}
