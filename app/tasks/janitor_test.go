package tasks

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/luisjesusbernal/Geek-News/app/database"
)

type countingSessionRepo struct {
	sweeps int64
}

func (r *countingSessionRepo) Create(token string, userID int64, expiresAt time.Time) error {
	return errors.New("not implemented")
}

func (r *countingSessionRepo) Get(token string) (*database.Session, error) {
	return nil, nil
}

func (r *countingSessionRepo) Delete(token string) error {
	return nil
}

func (r *countingSessionRepo) DeleteExpired() (int64, error) {
	atomic.AddInt64(&r.sweeps, 1)
	return 0, nil
}

func TestJanitorSweeps(t *testing.T) {
	repo := &countingSessionRepo{}
	janitor := NewJanitor(repo, 10*time.Millisecond)

	janitor.Start()
	time.Sleep(35 * time.Millisecond)
	janitor.Stop()

	sweeps := atomic.LoadInt64(&repo.sweeps)
	if sweeps < 2 {
		t.Errorf("Expected at least 2 sweeps (startup plus ticks), got %d", sweeps)
	}
}

func TestJanitorStopIsIdempotentAfterStart(t *testing.T) {
	repo := &countingSessionRepo{}
	janitor := NewJanitor(repo, time.Hour)

	janitor.Start()
	janitor.Stop()

	// No further sweeps after Stop returns
	before := atomic.LoadInt64(&repo.sweeps)
	time.Sleep(20 * time.Millisecond)
	after := atomic.LoadInt64(&repo.sweeps)

	if before != after {
		t.Errorf("Expected no sweeps after Stop, got %d new", after-before)
	}
	if before != 1 {
		t.Errorf("Expected exactly the startup sweep, got %d", before)
	}
}
