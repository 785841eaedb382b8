package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"apkcollect/internal/application"
	"apkcollect/internal/domain"
	"apkcollect/internal/ports"
)

// CopyRecord describes one artifact placed in the destination
type CopyRecord struct {
	Artifact    domain.Artifact
	Destination string
}

// CollectResult contains the result of a collection run
type CollectResult struct {
	Copied []CopyRecord
	Failed []*application.CopyError
	// Skipped counts entries the walk could not read
	Skipped int
	Message string
}

// CollectCommand copies every discovered artifact into the destination
// under its normalized name
type CollectCommand struct {
	source ports.ArtifactSource
	store  ports.ArtifactStore
	logger *zap.Logger
}

// NewCollectCommand creates a new CollectCommand
func NewCollectCommand(source ports.ArtifactSource, store ports.ArtifactStore, logger *zap.Logger) *CollectCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectCommand{
		source: source,
		store:  store,
		logger: logger,
	}
}

// Validate checks that both roots are set and do not overlap, so clearing
// the destination cannot delete sources and the walk never sees copies
func (c *CollectCommand) Validate() error {
	if c.source == nil || c.source.Root() == "" {
		return &application.ValidationError{
			Field:   "sourceRoot",
			Message: "source root is required",
		}
	}

	if c.store == nil || c.store.Root() == "" {
		return &application.ValidationError{
			Field:   "destRoot",
			Message: "destination root is required",
		}
	}

	src, dst := c.source.Root(), c.store.Root()
	if within(src, dst) || within(dst, src) {
		return &application.ValidationError{
			Field:   "destRoot",
			Message: fmt.Sprintf("destination %s overlaps source %s", dst, src),
		}
	}

	return nil
}

// within reports whether path equals dir or lies below it
func within(path, dir string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Execute runs the collection. Only a failure to prepare the destination
// (or cancellation) is returned as an error; copy failures are logged and
// reported in the result.
func (c *CollectCommand) Execute(ctx context.Context) (*CollectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.store.Prepare(ctx); err != nil {
		return nil, &application.PrepareError{Path: c.store.Root(), Err: err}
	}

	c.logger.Info("Looking for APKs", zap.String("root", c.source.Root()))

	result := &CollectResult{}
	for artifact, err := range c.source.Discover(ctx) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, fmt.Errorf("collection interrupted: %w", ctxErr)
		}
		if err != nil {
			c.logger.Debug("Skipping unreadable entry", zap.String("path", artifact.Path), zap.Error(err))
			result.Skipped++
			continue
		}

		if copyErr := c.collectOne(ctx, artifact, result); copyErr != nil {
			result.Failed = append(result.Failed, copyErr)
		}
	}

	result.Message = fmt.Sprintf("Collected %d APKs into %s", len(result.Copied), c.store.Root())
	if len(result.Failed) > 0 {
		result.Message += fmt.Sprintf(" (%d failed)", len(result.Failed))
	}

	return result, nil
}

// collectOne resolves a destination for artifact and copies it there
func (c *CollectCommand) collectOne(ctx context.Context, artifact domain.Artifact, result *CollectResult) *application.CopyError {
	name := artifact.NormalizedName()

	dst, err := c.store.Resolve(name)
	if err != nil {
		dst = filepath.Join(c.store.Root(), name)
		return c.fail(artifact, dst, err)
	}

	c.logger.Info("Copying", zap.String("src", artifact.Path), zap.String("dst", dst))

	if err := c.store.Copy(ctx, artifact.Path, dst); err != nil {
		return c.fail(artifact, dst, err)
	}

	result.Copied = append(result.Copied, CopyRecord{Artifact: artifact, Destination: dst})
	return nil
}

func (c *CollectCommand) fail(artifact domain.Artifact, dst string, err error) *application.CopyError {
	c.logger.Warn("Failed to copy",
		zap.String("src", artifact.Path),
		zap.String("dst", dst),
		zap.Error(err))

	return &application.CopyError{
		Source:      artifact.Path,
		Destination: dst,
		Err:         err,
	}
}
