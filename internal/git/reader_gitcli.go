package git

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

const recordSeparator = 0x1e

// objectIDPrefix matches the start of a record: a SHA-1 or SHA-256 id and its NUL terminator.
var objectIDPrefix = regexp.MustCompile("^(?:[0-9a-f]{64}|[0-9a-f]{40})\x00")

// CLIHistoryReader reads history by running `git log` through a Runner.
type CLIHistoryReader struct {
	runner Runner
	opts   ReadOptions
}

// NewCLIHistoryReader creates a reader that shells out to git.
func NewCLIHistoryReader(opts ReadOptions, runner Runner) *CLIHistoryReader {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &CLIHistoryReader{runner: runner, opts: opts}
}

// ReadRecords runs git log and parses its output.
func (r *CLIHistoryReader) ReadRecords(ctx context.Context) ([]CommitRecord, error) {
	// Each commit is prefixed by 0x1e (record separator) and its fields are NUL-separated.
	// The raw body comes last so embedded newlines need no escaping.
	const format = "%x1e%H%x00%P%x00%at%x00%an%x00%ae%x00%B"

	args := []string{
		"-C", r.opts.RepoPath,
		"log",
		"--no-color",
		"--topo-order",
		"--pretty=format:" + format,
	}
	if r.opts.Order == OrderOldestFirst {
		args = append(args, "--reverse")
	}

	rev := strings.TrimSpace(r.opts.Branch)
	if rev != "" && !strings.EqualFold(rev, "HEAD") {
		args = append(args, rev)
	}

	bin := r.opts.GitBinary
	if bin == "" {
		bin = "git"
	}

	res, err := r.runner.Run(ctx, Command{Name: bin, Args: args})
	if err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}

	return parseGitLogRecords(res.Stdout)
}

// parseGitLogRecords splits git log output into records. A message may itself contain the
// separator byte, so a chunk only starts a new record when it opens with an object id.
// Messages cannot contain NUL, which keeps the id check unambiguous.
func parseGitLogRecords(out []byte) ([]CommitRecord, error) {
	var raw [][]byte
	for _, chunk := range bytes.Split(out, []byte{recordSeparator}) {
		switch {
		case objectIDPrefix.Match(chunk):
			raw = append(raw, chunk)
		case len(raw) > 0:
			last := raw[len(raw)-1]
			raw[len(raw)-1] = slices.Concat(last, []byte{recordSeparator}, chunk)
		case len(bytes.TrimSpace(chunk)) > 0:
			return nil, fmt.Errorf("unexpected git log record format: %q", truncate(string(chunk), 60))
		}
	}

	results := make([]CommitRecord, 0, len(raw))
	for _, rec := range raw {
		fields := bytes.SplitN(rec, []byte{0x00}, 6)
		if len(fields) < 6 {
			return nil, fmt.Errorf("unexpected git log record format: %q", truncate(string(rec), 60))
		}

		sha := string(fields[0])
		parents := strings.Fields(string(fields[1]))
		if len(parents) > 1 {
			return nil, fmt.Errorf("%w: %s is a merge commit", ErrNonLinearHistory, sha)
		}

		results = append(results, CommitRecord{
			ID:          sha,
			AuthoredAt:  strings.TrimSpace(string(fields[2])),
			AuthorName:  string(fields[3]),
			AuthorEmail: string(fields[4]),
			Message:     strings.TrimRightFunc(string(fields[5]), unicode.IsSpace),
		})
	}

	return results, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
