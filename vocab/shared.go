package vocab

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Shared lazily builds a Store from a Provider exactly once and publishes it
// to every caller. Concurrent first callers block until the single build
// finishes; nobody observes a partially built store. A failed build installs
// an empty store permanently and is never retried.
type Shared struct {
	provider Provider
	logger   *slog.Logger

	once  sync.Once
	store atomic.Pointer[Store]
	err   error
	stats Stats
}

// NewShared returns a Shared vocabulary backed by p.
func NewShared(p Provider, opts ...Option) *Shared {
	o := newOptions(opts)
	return &Shared{provider: p, logger: o.logger}
}

// NewStatic returns a Shared already holding s.
func NewStatic(s *Store) *Shared {
	shared := &Shared{logger: slog.Default()}
	shared.once.Do(func() { shared.store.Store(s) })
	return shared
}

// Get returns the published store, building it on first use. The build is
// detached from ctx cancellation since the store outlives the first caller.
func (s *Shared) Get(ctx context.Context) *Store {
	if st := s.store.Load(); st != nil {
		return st
	}
	s.once.Do(func() { s.load(context.WithoutCancel(ctx)) })
	return s.store.Load()
}

// Load builds the store eagerly and returns the load error, if any.
func (s *Shared) Load(ctx context.Context) error {
	s.Get(ctx)
	return s.Err()
}

// Loaded reports whether a store has been published.
func (s *Shared) Loaded() bool {
	return s.store.Load() != nil
}

// Err returns the load failure, or nil when the store loaded or has not been
// requested yet.
func (s *Shared) Err() error {
	if s.store.Load() == nil {
		return nil
	}
	return s.err
}

// Stats returns the build statistics once the store is published.
func (s *Shared) Stats() Stats {
	if s.store.Load() == nil {
		return Stats{}
	}
	return s.stats
}

func (s *Shared) load(ctx context.Context) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.err = fmt.Errorf("vocab: provider panicked: %v", r)
			s.logger.Error("vocabulary unavailable, semantic scoring disabled", "error", s.err)
			s.store.Store(Empty())
		}
	}()
	if s.provider == nil {
		s.store.Store(Empty())
		return
	}
	st, stats, err := Build(ctx, s.provider)
	s.stats = stats
	if err != nil {
		s.err = err
		s.logger.Error("vocabulary unavailable, semantic scoring disabled", "error", err)
		s.store.Store(Empty())
		return
	}
	s.logger.Info("vocabulary loaded",
		"tokens", stats.Loaded,
		"dim", st.Dim(),
		"skipped", stats.Skipped,
		"duplicates", stats.Duplicates,
		"elapsed", time.Since(started))
	s.store.Store(st)
}
