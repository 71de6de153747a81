package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/luisjesusbernal/Geek-News/app/database"
)

// Janitor periodically removes expired session rows so the sessions
// table does not grow without bound.
type Janitor struct {
	sessions database.SessionRepository
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewJanitor(sessions database.SessionRepository, interval time.Duration) *Janitor {
	ctx, cancel := context.WithCancel(context.Background())

	if interval <= 0 {
		interval = time.Hour
	}

	return &Janitor{
		sessions: sessions,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (j *Janitor) Start() {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		j.sweep()

		for {
			select {
			case <-j.ctx.Done():
				return
			case <-ticker.C:
				j.sweep()
			}
		}
	}()
}

func (j *Janitor) Stop() {
	j.cancel()
	j.wg.Wait()
}

func (j *Janitor) sweep() {
	removed, err := j.sessions.DeleteExpired()
	if err != nil {
		slog.Warn("Session cleanup failed", "error", err)
		return
	}
	if removed > 0 {
		slog.Debug("Removed expired sessions", "count", removed)
	}
}
