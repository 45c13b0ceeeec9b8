package universe

import (
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RefreshJob regenerates the demo universe on a schedule. Each run
// advances the seed so consecutive refreshes show movement while a
// given run stays deterministic. Run is safe for concurrent use; the
// scheduler and the manual refresh endpoint both invoke it.
type RefreshJob struct {
	store  *Store
	seed   int64
	size   int
	runs   atomic.Int64
	logger zerolog.Logger
}

// NewRefreshJob creates the job around a store.
func NewRefreshJob(store *Store, seed int64, size int) *RefreshJob {
	return &RefreshJob{
		store:  store,
		seed:   seed,
		size:   size,
		logger: log.With().Str("component", "universe_refresh").Logger(),
	}
}

// Name implements scheduler.Job.
func (j *RefreshJob) Name() string { return "universe_refresh" }

// Run implements scheduler.Job.
func (j *RefreshJob) Run() error {
	run := j.runs.Add(1)
	gen := NewMockGenerator(j.seed+run-1, j.size)
	j.store.Replace(gen.Generate())

	j.logger.Info().
		Int("size", j.store.Len()).
		Int64("run", run).
		Msg("Universe refreshed")
	return nil
}
