package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var (
	// ErrStaleRecords is returned when records no longer describe the checked-out history.
	ErrStaleRecords = errors.New("commit records do not match the checked-out history")
	// ErrNotCheckedOut is returned when a rewrite targets a revision other than HEAD.
	ErrNotCheckedOut = errors.New("revision is not checked out")
)

// VerifyRecords checks that records list exactly the commits reachable from HEAD, root first.
// A rebase replays its todo list verbatim, so a missing, extra or reordered record would drop
// or reorder commits.
func VerifyRecords(ctx context.Context, repoPath string, records []CommitRecord) error {
	current, err := ReadRecordsFrom(ctx, repoPath)
	if err != nil {
		return fmt.Errorf("read checked-out history: %w", err)
	}

	if len(current) != len(records) {
		return fmt.Errorf("%w: records list %d commits, HEAD has %d", ErrStaleRecords, len(records), len(current))
	}

	reversed := len(records) > 1
	for i := range records {
		if records[i].ID != current[len(current)-1-i].ID {
			reversed = false
			break
		}
	}
	if reversed {
		return fmt.Errorf("%w: records are newest first, a rewrite needs them oldest first", ErrStaleRecords)
	}

	for i := range records {
		if records[i].ID != current[i].ID {
			return fmt.Errorf("%w: record %d is %s, history has %s", ErrStaleRecords, i, records[i].ID, current[i].ID)
		}
	}
	return nil
}

// CheckRevisionIsHead returns ErrNotCheckedOut unless rev names what `git rebase` would rewrite:
// the checked-out branch, or the commit HEAD points at. An empty rev or "HEAD" always passes.
func CheckRevisionIsHead(repoPath, rev string) error {
	rev = strings.TrimSpace(rev)
	if rev == "" || strings.EqualFold(rev, "HEAD") {
		return nil
	}

	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return err
	}
	head, err := repo.Head()
	if err != nil {
		return err
	}

	if branch, err := repo.Reference(plumbing.NewBranchReferenceName(rev), false); err == nil {
		if branch.Name() != head.Name() {
			return fmt.Errorf("%w: %s; git rebase rewrites HEAD (%s), check out %s first", ErrNotCheckedOut, rev, head.Name().Short(), rev)
		}
		return nil
	}

	h, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return fmt.Errorf("resolve %q: %w", rev, err)
	}
	if *h != head.Hash() {
		return fmt.Errorf("%w: %s; git rebase rewrites HEAD (%s), check out %s first", ErrNotCheckedOut, rev, head.Name().Short(), rev)
	}
	return nil
}
