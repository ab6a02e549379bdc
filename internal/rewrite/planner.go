package rewrite

import (
	"errors"
	"fmt"
	"time"

	"github.com/masmgr/reauthor/internal/git"
)

// GitDateLayout is git's default date format ("%a %b %e %T %Y %z").
// `git commit --date` and GIT_COMMITTER_DATE parse it back exactly.
const GitDateLayout = "Mon Jan _2 15:04:05 2006 -0700"

var (
	// ErrInvalidTimestamp is returned for a record whose AuthoredAt is not an integer.
	ErrInvalidTimestamp = errors.New("invalid commit timestamp")
	// ErrEmptyIdentity is returned when the new author name or email is blank.
	ErrEmptyIdentity = errors.New("new author name and email must not be empty")
)

// FormatGitDate renders t in UTC using GitDateLayout.
func FormatGitDate(t time.Time) string {
	return t.UTC().Format(GitDateLayout)
}

// Plan maps one commit record to the pick/exec pair that rewrites its author and committer.
// It has no side effects; identical inputs produce identical output.
func Plan(record git.CommitRecord, identity git.Identity) (InstructionPair, error) {
	authored, err := record.AuthoredTime()
	if err != nil {
		return InstructionPair{}, fmt.Errorf("%w: commit %s has date %q", ErrInvalidTimestamp, record.ID, record.AuthoredAt)
	}

	date := FormatGitDate(authored)

	return InstructionPair{
		Select: Select{
			CommitID:   record.ID,
			Annotation: record.Subject(),
		},
		Amend: Amend{
			Author:    identity,
			Committer: identity,
			Date:      date,
		},
	}, nil
}
