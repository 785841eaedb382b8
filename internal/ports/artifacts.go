package ports

import (
	"context"
	"iter"

	"apkcollect/internal/domain"
)

// ArtifactSource discovers artifacts to collect
type ArtifactSource interface {
	// Root returns the directory being scanned
	Root() string

	// Discover walks the source lazily. Every call walks again, so two
	// calls may disagree if the filesystem changed in between. Order is
	// unspecified. An error element does not end the sequence.
	Discover(ctx context.Context) iter.Seq2[domain.Artifact, error]
}

// ArtifactStore owns the destination directory for one run
type ArtifactStore interface {
	// Root returns the destination directory
	Root() string

	// Prepare removes the destination and creates it empty
	Prepare(ctx context.Context) error

	// Resolve returns a destination path for name that does not exist yet
	Resolve(name string) (string, error)

	// Copy copies src to dst along with its mode and timestamps
	Copy(ctx context.Context, src, dst string) error
}
