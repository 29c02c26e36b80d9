package ports

import (
	"context"

	"go.trai.ch/modelcache/internal/core/domain"
)

// FingerprintController attributes the inputs read while computing models to
// the owning project and decides, between sessions, which projects changed.
//
//go:generate mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks
type FingerprintController interface {
	// CollectFingerprintForProject runs compute inside a fingerprint scope for
	// project. Inputs recorded through the context passed to compute become part
	// of the project's fingerprint. The error of compute is returned unchanged.
	CollectFingerprintForProject(
		ctx context.Context,
		project domain.Path,
		compute func(ctx context.Context) error,
	) error

	// Check compares the fingerprints of the previous session against the
	// current inputs. A nil previous set invalidates nothing.
	Check(ctx context.Context, previous *domain.FingerprintSet) (*domain.CheckedFingerprint, error)

	// Result returns the fingerprints to persist for the next session.
	Result() domain.FingerprintSet
}

// FingerprintStore persists fingerprint sets between sessions.
type FingerprintStore interface {
	// Load reads the fingerprints stored in cacheDir.
	// Returns nil, nil if none were stored.
	Load(cacheDir string) (*domain.FingerprintSet, error)

	// Save stores the fingerprints in cacheDir.
	Save(cacheDir string, set domain.FingerprintSet) error
}
