package clientdata

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CleanupJob removes expired entries from all cache buckets. It should
// be scheduled to run periodically.
type CleanupJob struct {
	cache *Cache
	log   zerolog.Logger
}

// NewCleanupJob creates a cleanup job for the cache.
func NewCleanupJob(cache *Cache) *CleanupJob {
	return &CleanupJob{
		cache: cache,
		log:   log.With().Str("job", "client_data_cleanup").Logger(),
	}
}

// Name returns the job name for scheduling and logging.
func (j *CleanupJob) Name() string {
	return "client_data_cleanup"
}

// Run removes all expired entries from all buckets.
func (j *CleanupJob) Run() error {
	results, err := j.cache.DeleteAllExpired()
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to delete expired client data")
		return err
	}

	total := 0
	for bucket, count := range results {
		if count > 0 {
			j.log.Info().
				Str("bucket", bucket).
				Int("deleted", count).
				Msg("Cleaned up expired cache entries")
			total += count
		}
	}

	if total > 0 {
		j.log.Info().Int("total_deleted", total).Msg("Client data cleanup completed")
	}
	return nil
}
