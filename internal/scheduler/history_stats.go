package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/chromapick/internal/history"
)

const (
	HistoryStatsJobName = "history-stats"
	historyStatsTimeout = 10 * time.Second
)

// StatsSink receives the counts gathered by the history stats job.
type StatsSink interface {
	SetHistory(sessions, records int)
}

// RegisterHistoryStats schedules a periodic snapshot of history size.
func (s *Service) RegisterHistoryStats(cronExpr string, store history.Store, sink StatsSink) error {
	_, err := s.AddJob(HistoryStatsJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), historyStatsTimeout)
		defer cancel()
		RecordHistoryStats(ctx, store, sink)
	})
	return err
}

// RecordHistoryStats logs the current history size and forwards it to sink.
func RecordHistoryStats(ctx context.Context, store history.Store, sink StatsSink) {
	stats, err := store.Stats(ctx)
	if err != nil {
		log.Error().Err(err).Str("job_name", HistoryStatsJobName).Msg("Failed to collect history stats")
		return
	}
	log.Info().
		Int("sessions", stats.Sessions).
		Int("records", stats.Records).
		Msg("History stats")
	if sink != nil {
		sink.SetHistory(stats.Sessions, stats.Records)
	}
}
