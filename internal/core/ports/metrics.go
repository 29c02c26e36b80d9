package ports

import (
	"time"

	"go.trai.ch/modelcache/internal/core/domain"
)

// LoadSource tells where a model served without computation came from.
type LoadSource string

const (
	// SourceCurrent is a model already materialized in this session.
	SourceCurrent LoadSource = "current"
	// SourcePrevious is a model promoted from the previous session.
	SourcePrevious LoadSource = "previous"
)

// CacheMetrics records what the model cache does.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type CacheMetrics interface {
	// ModelLoaded is called when a model is served from the cache.
	ModelLoaded(key domain.ModelKey, source LoadSource)
	// ModelComputed is called after a model was computed and stored.
	ModelComputed(key domain.ModelKey, elapsed time.Duration)
	// ModelFailed is called when computing or storing a model failed.
	ModelFailed(key domain.ModelKey)
	// Restored is called once the previous session's entries were filtered.
	Restored(kept, dropped int)
}
