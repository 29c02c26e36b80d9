// Package session drives the model cache across one build: it restores the
// previous session's entries, exposes the cache while the build runs, and
// persists what the next session may reuse.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/modelcache/internal/adapters/blockstore"
	"go.trai.ch/modelcache/internal/adapters/codec"
	"go.trai.ch/modelcache/internal/adapters/fingerprint"
	fsadapter "go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/adapters/metrics"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/modelcache/internal/engine/modelcache"
	"go.trai.ch/zerr"
)

// Options configure one session.
type Options struct {
	// CacheDir holds the block file, entries and fingerprints.
	CacheDir string
	// BuildHash identifies the workspace definition. Entries of a session
	// with another hash are discarded.
	BuildHash string
	// Codec names the model codec.
	Codec string
	// Compression enables zstd compression of new blocks.
	Compression bool
	// MetricsFile, when set, receives the session metrics at close.
	MetricsFile string
	// NoCache ignores everything the previous session stored.
	NoCache bool
	// Values are host values that recorded fingerprints are checked against.
	Values map[string]string
}

// Manager opens sessions.
type Manager struct {
	entries      ports.EntryStore
	fingerprints ports.FingerprintStore
	hasher       *fsadapter.Hasher
	logger       ports.Logger
	tracer       ports.Tracer
}

// NewManager creates a Manager with the given dependencies.
func NewManager(
	entries ports.EntryStore,
	fingerprints ports.FingerprintStore,
	hasher *fsadapter.Hasher,
	logger ports.Logger,
	tracer ports.Tracer,
) *Manager {
	return &Manager{
		entries:      entries,
		fingerprints: fingerprints,
		hasher:       hasher,
		logger:       logger,
		tracer:       tracer,
	}
}

// Session is one build's use of the model cache.
type Session struct {
	id     string
	opts   Options
	m      *Manager
	cache  *modelcache.Controller
	fp     *fingerprint.Controller
	prom   *metrics.Prometheus
	report Report
	closed bool
}

// Report summarizes a session.
type Report struct {
	SessionID string
	// Discarded is set when the previous entries were ignored as a whole.
	Discarded string
	Kept      int
	Dropped   int
	// Invalid maps each invalidated project to the first change found.
	Invalid map[domain.Path]string
	Stats   modelcache.Stats
	// Models is the number of entries persisted for the next session.
	Models int
}

// Open starts a session and restores what the previous one left behind.
func (m *Manager) Open(ctx context.Context, opts Options) (*Session, error) {
	ctx, span := m.tracer.Start(ctx, "session.open")
	defer span.End()

	c, err := codec.ByName(opts.Codec)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	fpOpts := make([]fingerprint.Option, 0, len(opts.Values))
	for k, v := range opts.Values {
		fpOpts = append(fpOpts, fingerprint.WithValue(k, v))
	}
	fp := fingerprint.NewController(m.hasher, fpOpts...)
	prom := metrics.NewPrometheus()

	blockPath := domain.BlockFilePath(opts.CacheDir)
	openStore := func() (ports.BlockStore, error) {
		return blockstore.Open(blockPath, blockstore.WithCompression(opts.Compression))
	}

	s := &Session{
		id:    uuid.NewString(),
		opts:  opts,
		m:     m,
		cache: modelcache.New(fp, c, openStore, m.tracer, prom),
		fp:    fp,
		prom:  prom,
	}
	s.report.SessionID = s.id
	span.SetAttribute("session.id", s.id)

	if err := s.restore(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s, nil
}

func (s *Session) restore(ctx context.Context) error {
	if s.opts.NoCache {
		s.report.Discarded = "caching disabled"
		return nil
	}

	details, err := s.m.entries.Load(s.opts.CacheDir)
	if err != nil {
		return err
	}
	if details == nil {
		return nil
	}
	if details.BuildHash != s.opts.BuildHash {
		s.report.Discarded = "workspace definition changed"
		s.report.Dropped = len(details.Models)
		s.m.logger.Info(fmt.Sprintf("workspace definition changed, discarding %d cached models", len(details.Models)))
		return nil
	}

	previous, err := s.m.fingerprints.Load(s.opts.CacheDir)
	if err != nil {
		return err
	}

	checked, err := s.fp.Check(ctx, previous)
	if err != nil {
		return err
	}
	// A project model without a recorded fingerprint cannot be trusted.
	for _, entry := range details.Models {
		if entry.Project.IsZero() {
			continue
		}
		if previous == nil {
			checked.Invalidate(entry.Project, "no fingerprint recorded")
		} else if _, ok := previous.Projects[entry.Project]; !ok {
			checked.Invalidate(entry.Project, "no fingerprint recorded")
		}
	}

	s.report.Kept, s.report.Dropped = s.cache.Restore(details, checked.ProjectsInvalid)
	s.report.Invalid = checked.Reasons
	for _, project := range checked.ProjectsInvalid.Sorted() {
		s.m.logger.Info(fmt.Sprintf("project %s changed: %s", project, checked.Reasons[project]))
	}
	return nil
}

// Cache returns the model cache of the session.
func (s *Session) Cache() *modelcache.Controller {
	return s.cache
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string {
	return s.id
}

// Close persists the current entries and fingerprints for the next session
// and releases the block store. The block store is synced first so that no
// persisted entry points at data that did not reach the disk; if that fails,
// the persisted state is removed instead. All failures are joined.
func (s *Session) Close(_ context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true

	snapshot := s.cache.Snapshot()
	s.report.Stats = s.cache.Stats()

	var errs []error
	if err := s.cache.Close(); err != nil {
		errs = append(errs, err, s.discard())
	} else {
		details := domain.NewEntryDetails(snapshot)
		details.SessionID = s.id
		details.BuildHash = s.opts.BuildHash
		details.CreatedAt = time.Now().UTC()
		s.report.Models = len(details.Models)

		errs = append(errs,
			s.m.entries.Save(s.opts.CacheDir, details),
			s.m.fingerprints.Save(s.opts.CacheDir, s.fp.Result()),
		)
	}

	if s.opts.MetricsFile != "" {
		errs = append(errs, s.prom.WriteToTextfile(s.opts.MetricsFile))
	}

	return errors.Join(errs...)
}

// discard removes the persisted entries and fingerprints.
func (s *Session) discard() error {
	var errs []error
	for _, path := range []string{
		domain.EntriesFilePath(s.opts.CacheDir),
		domain.FingerprintsFilePath(s.opts.CacheDir),
	} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, zerr.With(zerr.Wrap(err, domain.ErrEntriesWriteFailed.Error()), "path", path))
		}
	}
	return errors.Join(errs...)
}

// Report returns the summary of the session. Stats and Models are final once
// Close returned.
func (s *Session) Report() Report {
	if !s.closed {
		r := s.report
		r.Stats = s.cache.Stats()
		return r
	}
	return s.report
}
