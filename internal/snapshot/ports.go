// Package snapshot defines how the whole budget store is loaded and saved.
package snapshot

import (
	"context"

	"budgetpro/internal/core"
)

// Ports for snapshot backends.
type (
	// Loader returns the persisted store. Backends never fail on a
	// malformed snapshot; they fall back to core.DefaultStore instead.
	Loader interface {
		Load(ctx context.Context) (core.Store, error)
	}

	Saver interface {
		Save(ctx context.Context, s core.Store) error
	}

	Repository interface {
		Loader
		Saver
		Close() error
	}
)
