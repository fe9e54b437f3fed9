package scheduler

import (
	"smokeless/internal/models"
	"smokeless/internal/services"
	"smokeless/internal/storage"
	"smokeless/internal/structures"
	"smokeless/internal/testutil"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(interval time.Duration) *structures.Config {
	return &structures.Config{
		Scheduler: structures.SchedulerConfig{RefreshInterval: interval},
	}
}

func newStore(clock *testutil.FixedClock) (*services.LogStore, *storage.MemoryStore) {
	kv := storage.NewMemoryStore()
	store := services.NewLogStore(kv, &testutil.MockLogger{}, &testutil.MockMetrics{}).WithClock(clock.Time)
	return store, kv
}

func TestScheduler_Restore_CreatesToday(t *testing.T) {
	clock := testutil.NewFixedClock(time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local))
	store, kv := newStore(clock)
	require.NoError(t, kv.SetAll(map[string][]byte{
		models.KeyHistory: []byte(`[{"date":"2024-05-31","count":2,"cost":1}]`),
	}))

	s := NewScheduler(testConfig(time.Minute), &testutil.MockLogger{}, store)
	require.NoError(t, s.Restore())

	snap := store.Snapshot()
	require.Len(t, snap.History, 2)
	assert.Equal(t, "2024-06-01", snap.History[1].Date)
}

func TestScheduler_Tick_RollsOverMidnight(t *testing.T) {
	clock := testutil.NewFixedClock(time.Date(2024, 6, 1, 23, 59, 0, 0, time.Local))
	store, _ := newStore(clock)
	s := NewScheduler(testConfig(time.Minute), &testutil.MockLogger{}, store)
	require.NoError(t, s.Restore())

	var refreshed int32
	s.OnRefresh(func() { atomic.AddInt32(&refreshed, 1) })

	clock.Advance(2 * time.Minute)
	s.Tick()

	assert.Equal(t, 2, store.DaysTracked())
	assert.Equal(t, "2024-06-02", store.Today().Date)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshed))
}

func TestScheduler_Tick_SameDayNoWrite(t *testing.T) {
	clock := testutil.NewFixedClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local))
	kv := storage.NewMemoryStore()
	metrics := &testutil.MockMetrics{}
	store := services.NewLogStore(kv, &testutil.MockLogger{}, metrics).WithClock(clock.Time)
	s := NewScheduler(testConfig(time.Minute), &testutil.MockLogger{}, store)
	require.NoError(t, s.Restore())

	s.Tick()
	s.Tick()
	assert.Equal(t, 1, metrics.PersistCalls)
}

func TestScheduler_StopNilCron(t *testing.T) {
	clock := testutil.NewFixedClock(time.Now())
	store, _ := newStore(clock)
	s := NewScheduler(testConfig(time.Minute), &testutil.MockLogger{}, store)
	// Should not panic with nil cron
	s.Stop()
}

func TestScheduler_InitRunsTicks(t *testing.T) {
	clock := testutil.NewFixedClock(time.Now())
	store, _ := newStore(clock)
	logger := &testutil.MockLogger{}
	s := NewScheduler(testConfig(time.Second), logger, store)

	ticked := make(chan struct{}, 1)
	s.OnRefresh(func() {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	require.NoError(t, s.Init())
	defer s.Stop()

	select {
	case <-ticked:
	case <-time.After(3 * time.Second):
		t.Fatal("refresh callback never ran")
	}
	assert.Equal(t, 1, store.DaysTracked())
}
