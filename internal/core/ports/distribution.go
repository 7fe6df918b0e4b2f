package ports

import (
	"context"
	"io"

	"go.trai.ch/pyembed/internal/core/domain"
)

// ArchiveExtractor decompresses and unpacks distribution archives.
//
//go:generate go run go.uber.org/mock/mockgen -source=distribution.go -destination=mocks/mock_distribution.go -package=mocks
type ArchiveExtractor interface {
	// Extract unpacks src into dest. The compression is detected from the stream.
	Extract(ctx context.Context, src io.Reader, dest string) error
}

// DistributionAnalyzer reads the metadata of a Python distribution.
type DistributionAnalyzer interface {
	// Analyze extracts src into workDir and describes the distribution found there.
	Analyze(ctx context.Context, src io.Reader, workDir string) (*domain.DistributionInfo, error)
	// Inspect describes an already extracted distribution.
	Inspect(distDir string) (*domain.DistributionInfo, error)
}

// RuntimeLocator finds the interpreter executable of an extracted distribution.
type RuntimeLocator interface {
	InterpreterPath(distDir string) (string, error)
}
