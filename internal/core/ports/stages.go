package ports

import (
	"context"

	"go.trai.ch/pyembed/internal/core/domain"
)

// ArtifactGenerator produces embedding artifacts for a build context.
//
//go:generate go run go.uber.org/mock/mockgen -source=stages.go -destination=mocks/mock_stages.go -package=mocks
type ArtifactGenerator interface {
	// Generate writes artifacts and the dependency manifest into bc.ArtifactsPath.
	// selector is the native optimization level used while generating artifacts.
	Generate(ctx context.Context, bc *domain.BuildContext, selector string) error
}

// Packager assembles the runnable application tree from the toolchain output.
type Packager interface {
	Package(ctx context.Context, bc *domain.BuildContext) error
}
