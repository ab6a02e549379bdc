package git

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrNonLinearHistory is returned when the traversal meets a merge commit.
var ErrNonLinearHistory = errors.New("history is not linear")

// CommitRecord represents the extracted identity of one historical commit.
// Records are read-only once extracted.
type CommitRecord struct {
	ID          string `json:"sha"`
	Message     string `json:"comment"`
	AuthoredAt  string `json:"date"` // seconds since the Unix epoch, base 10
	AuthorName  string `json:"author_name,omitempty"`
	AuthorEmail string `json:"author_email,omitempty"`
}

// Subject returns the first line of the commit message.
func (c CommitRecord) Subject() string {
	if idx := strings.IndexByte(c.Message, '\n'); idx != -1 {
		return strings.TrimRight(c.Message[:idx], "\r")
	}
	return c.Message
}

// AuthoredTime parses AuthoredAt. The returned time is in UTC.
func (c CommitRecord) AuthoredTime() (time.Time, error) {
	secs, err := strconv.ParseInt(strings.TrimSpace(c.AuthoredAt), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}

// Identity is the author identity applied to every rewritten commit.
type Identity struct {
	Name  string
	Email string
}

// IsEmpty reports whether either field is blank.
func (i Identity) IsEmpty() bool {
	return strings.TrimSpace(i.Name) == "" || strings.TrimSpace(i.Email) == ""
}

// String renders the identity the way git prints it: "Name <email>".
func (i Identity) String() string {
	return i.Name + " <" + i.Email + ">"
}

// TraversalOrder controls the order in which records are returned.
type TraversalOrder int

const (
	// OrderOldestFirst yields the root commit first. This is the order a rebase todo list uses.
	OrderOldestFirst TraversalOrder = iota
	// OrderNewestFirst yields HEAD first, the natural order of a walk from HEAD.
	OrderNewestFirst
)

// String returns a string representation of the traversal order.
func (o TraversalOrder) String() string {
	switch o {
	case OrderOldestFirst:
		return "oldest"
	case OrderNewestFirst:
		return "newest"
	default:
		return "unknown"
	}
}

// ReaderBackend selects the history reader implementation.
type ReaderBackend int

const (
	BackendGoGit ReaderBackend = iota
	BackendGitCLI
)

// ReadOptions configures the history reader.
type ReadOptions struct {
	RepoPath  string
	Branch    string // empty or "HEAD" walks from HEAD
	Order     TraversalOrder
	Backend   ReaderBackend
	GitBinary string // used by BackendGitCLI
}
