package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// HistoryReader reads commit history from a Git repository.
type HistoryReader struct {
	repo *git.Repository
	opts ReadOptions
}

// NewHistoryReader creates a new history reader for the given repository.
func NewHistoryReader(opts ReadOptions) (*HistoryReader, error) {
	repo, err := git.PlainOpenWithOptions(opts.RepoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	return &HistoryReader{repo: repo, opts: opts}, nil
}

// NewRepositoryReader returns the reader selected by opts.Backend.
func NewRepositoryReader(opts ReadOptions, runner Runner) (RepositoryReader, error) {
	switch opts.Backend {
	case BackendGitCLI:
		return NewCLIHistoryReader(opts, runner), nil
	default:
		return NewHistoryReader(opts)
	}
}

// ReadRecords walks from the tip backwards through first parents and returns one record per
// commit, in the configured order.
func (r *HistoryReader) ReadRecords(ctx context.Context) ([]CommitRecord, error) {
	from, err := r.resolveTip()
	if err != nil {
		return nil, err
	}

	cIter, err := r.repo.Log(&git.LogOptions{From: from, Order: git.LogOrderDFS})
	if err != nil {
		return nil, err
	}
	defer cIter.Close()

	var results []CommitRecord

	err = cIter.ForEach(func(c *object.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if c.NumParents() > 1 {
			return fmt.Errorf("%w: %s is a merge commit", ErrNonLinearHistory, c.Hash)
		}

		results = append(results, recordFromCommit(c))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if r.opts.Order == OrderOldestFirst {
		reverseRecords(results)
	}
	return results, nil
}

func (r *HistoryReader) resolveTip() (plumbing.Hash, error) {
	rev := strings.TrimSpace(r.opts.Branch)
	if rev == "" || strings.EqualFold(rev, "HEAD") {
		ref, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return ref.Hash(), nil
	}

	h, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve %q: %w", rev, err)
	}
	return *h, nil
}

func recordFromCommit(c *object.Commit) CommitRecord {
	return CommitRecord{
		ID:          c.Hash.String(),
		Message:     strings.TrimRightFunc(c.Message, unicode.IsSpace),
		AuthoredAt:  strconv.FormatInt(c.Author.When.Unix(), 10),
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
	}
}

func reverseRecords(records []CommitRecord) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}

// RepositoryRoot returns the absolute worktree root of the repository containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return filepath.Abs(wt.Filesystem.Root())
}

// ReadRecordsFrom is a convenience function that opens repoPath with the go-git backend
// and reads its history oldest first.
func ReadRecordsFrom(ctx context.Context, repoPath string) ([]CommitRecord, error) {
	reader, err := NewHistoryReader(ReadOptions{RepoPath: repoPath, Order: OrderOldestFirst})
	if err != nil {
		return nil, err
	}
	return reader.ReadRecords(ctx)
}
