package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
	"github.com/example/practice-scheduler/internal/persistence"
	"github.com/example/practice-scheduler/internal/testfixtures"
)

type invalidateSpy struct {
	calls int
}

func (s *invalidateSpy) Invalidate() {
	s.calls++
}

func TestJobRun_PrunesOldSessions(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	clock := testfixtures.NewClock(time.Time{})
	views := &invalidateSpy{}

	// Reference time is 2026-01-02; sessions before 2025-12-03 should go.
	store.Seed(nil, []persistence.Session{
		testfixtures.NewSessionFixture(testfixtures.WithSessionID("old"),
			testfixtures.WithSessionDate(dateutil.Date(2025, time.November, 30))),
		testfixtures.NewSessionFixture(testfixtures.WithSessionID("kept"),
			testfixtures.WithSessionDate(dateutil.Date(2026, time.January, 5))),
	})

	job := NewJob(store, views, 30, clock.NowFunc(), nil)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if store.SessionCount() != 1 {
		t.Errorf("Expected 1 surviving session, got %d", store.SessionCount())
	}
	if views.calls != 1 {
		t.Errorf("Expected one cache invalidation, got %d", views.calls)
	}
}

func TestJobRun_DisabledRetention(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	store.Seed(nil, []persistence.Session{
		testfixtures.NewSessionFixture(testfixtures.WithSessionID("old"),
			testfixtures.WithSessionDate(dateutil.Date(2020, time.January, 1))),
	})

	job := NewJob(store, nil, 0, testfixtures.NewClock(time.Time{}).NowFunc(), nil)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if store.SessionCount() != 1 {
		t.Errorf("Expected no pruning when retention is disabled, got %d sessions", store.SessionCount())
	}
}

func TestJobRun_StoreFailure(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	store.FailNext(errors.New("disk full"))

	job := NewJob(store, nil, 30, testfixtures.NewClock(time.Time{}).NowFunc(), nil)
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("Expected the store failure to surface")
	}
}
