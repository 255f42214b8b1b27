package worker

// retry_cron.go
// Background goroutine that periodically re-drains the dead letter
// queues, pushing failed jobs back onto their original queue for
// another pass through the pool. Entries that keep failing past the
// cap are parked for manual inspection. The SMTP circuit breaker
// gates email re-drains to avoid hammering a downed relay.

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 2 * time.Minute
	retryBatchSize    = 10

	// MaxDLQRedrives caps how many times a job is pushed back onto its
	// original queue before being parked in dlq:parked.
	MaxDLQRedrives = 3
)

const (
	parkedKey   = DLQPrefix + "parked"
	redrivesKey = DLQPrefix + "redrives"
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	RDB *redis.Client
	CB  *infra.CircuitBreaker
}

// StartRetryCron launches a background goroutine that ticks every two
// minutes and re-drains both DLQs. It respects the context for
// graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				redrainQueue(ctx, cfg, QueuePDF)
				if cfg.CB.State() != infra.CBOpen {
					redrainQueue(ctx, cfg, QueueEmail)
				} else {
					log.Debug().Msg("retry_cron: circuit breaker is open, skipping email DLQ")
				}
			}
		}
	}()
}

func redrainQueue(ctx context.Context, cfg RetryCronConfig, queue string) {
	dlqKey := DLQPrefix + queue

	for i := 0; i < retryBatchSize; i++ {
		raw, err := cfg.RDB.RPop(ctx, dlqKey).Result()
		if err != nil {
			return // empty queue or redis error — next tick
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("dlq_key", dlqKey).Msg("retry_cron: corrupt DLQ entry, parking")
			_ = cfg.RDB.LPush(ctx, parkedKey, raw).Err()
			continue
		}

		// Redrive count lives in a redis hash keyed by payload digest,
		// since each failure cycle writes a fresh DLQEntry.
		digest := payloadDigest(entry.Payload)
		redrives, err := cfg.RDB.HIncrBy(ctx, redrivesKey, digest, 1).Result()
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to track redrives")
			return
		}
		if redrives > MaxDLQRedrives {
			log.Error().
				Str("queue", entry.OriginalQueue).
				Str("job_type", entry.JobType).
				Int64("redrives", redrives).
				Msg("retry_cron: redrive cap reached, parking job")
			_ = cfg.RDB.LPush(ctx, parkedKey, raw).Err()
			_ = cfg.RDB.HDel(ctx, redrivesKey, digest).Err()
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload}
		encoded, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to marshal job, parking")
			_ = cfg.RDB.LPush(ctx, parkedKey, raw).Err()
			continue
		}

		if err := cfg.RDB.LPush(ctx, entry.OriginalQueue, encoded).Err(); err != nil {
			log.Error().Err(err).Str("queue", entry.OriginalQueue).Msg("retry_cron: failed to re-enqueue job")
			return
		}

		log.Info().
			Str("queue", entry.OriginalQueue).
			Str("job_type", entry.JobType).
			Int64("redrives", redrives).
			Msg("retry_cron: job re-enqueued from DLQ")
	}
}

func payloadDigest(payload json.RawMessage) string {
	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:])
}
