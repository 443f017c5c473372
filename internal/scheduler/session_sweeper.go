package scheduler

import (
	"github.com/bigsofa/bigsofa-backend/internal/session"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SessionSweeper periodically drops idle in-memory sessions. Redis-backed
// sessions expire on their own, so the sweeper only runs for the memory
// store.
type SessionSweeper struct {
	cron  *cron.Cron
	store *session.MemoryStore
}

func NewSessionSweeper(store *session.MemoryStore) *SessionSweeper {
	return &SessionSweeper{
		cron:  cron.New(),
		store: store,
	}
}

// Start schedules the sweep every ten minutes.
func (s *SessionSweeper) Start() error {
	_, err := s.cron.AddFunc("*/10 * * * *", func() {
		removed := s.store.Sweep()
		logger.Debug("Session sweep finished", map[string]interface{}{
			"removed":   removed,
			"remaining": s.store.Len(),
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for session sweep", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Session sweeper started (every 10 minutes)", nil)
	return nil
}

// Stop halts the scheduler.
func (s *SessionSweeper) Stop() {
	logger.Info("Stopping session sweeper...", nil)
	s.cron.Stop()
	logger.Info("Session sweeper stopped", nil)
}
