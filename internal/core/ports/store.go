package ports

import "go.trai.ch/pyembed/internal/core/domain"

// InstallStore records the files copied into a packaged application tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type InstallStore interface {
	// Get retrieves the record for a destination path.
	// Returns nil, nil if not found.
	Get(dest string) (*domain.InstallRecord, error)

	// Put stores the record.
	Put(rec domain.InstallRecord) error
}
