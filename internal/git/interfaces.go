package git

import "context"

// RepositoryReader defines the interface for reading Git repository history.
// This abstraction allows for easier testing and potential alternative implementations.
type RepositoryReader interface {
	// ReadRecords walks the history from the configured tip and returns one record per commit.
	ReadRecords(ctx context.Context) ([]CommitRecord, error)
}

// Runner runs an external executable and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Compile-time interface conformance checks.
var (
	_ RepositoryReader = (*HistoryReader)(nil)
	_ RepositoryReader = (*CLIHistoryReader)(nil)
	_ Runner           = (*ExecRunner)(nil)
)
