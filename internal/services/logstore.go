package services

import (
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"smokeless/internal/models"
	"smokeless/internal/providers"
	"smokeless/internal/storage/interfaces"
	"sync"
	"time"
)

var ErrResetNotConfirmed = errors.New("reset requires confirmation")

// EventNotifier is told about every recorded event after it has been persisted.
type EventNotifier interface {
	EventRecorded(today models.DailyRecord)
}

type LogStoreInterface interface {
	Load() error
	EnsureToday() error
	RecordEvent() (models.DailyRecord, error)
	UpdateSettings(in models.SettingsInput) (models.Settings, error)
	Reset() error
	Snapshot() models.Snapshot
	Today() models.DailyRecord
	Settings() models.Settings
	Revision() uint64
	TodayCount() int
	DaysTracked() int
	StreakDays() int
	Now() time.Time
}

// LogStore owns the tracker state and writes every mutation through to the
// key-value backend. All methods are safe for concurrent use.
type LogStore struct {
	mu       sync.Mutex
	kv       interfaces.KeyValueInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	notifier EventNotifier
	now      func() time.Time

	settings    models.Settings
	history     models.History
	lastEventAt *int64
	revision    uint64
}

func NewLogStore(kv interfaces.KeyValueInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *LogStore {
	return &LogStore{
		kv:       kv,
		logger:   logger,
		metrics:  metrics,
		notifier: noopNotifier{},
		now:      time.Now,
		settings: models.DefaultSettings(),
		history:  models.History{},
	}
}

func (s *LogStore) SetNotifier(n EventNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n == nil {
		n = noopNotifier{}
	}
	s.notifier = n
}

// WithClock replaces the wall clock, used by tests and the day rollover job.
func (s *LogStore) WithClock(now func() time.Time) *LogStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// Load replaces the in-memory state with what the backend holds. Unreadable
// values fall back to defaults. The returned error only reports a failure to
// write back migrated data; the loaded state is usable either way.
func (s *LogStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = models.DefaultSettings()
	s.history = models.History{}
	s.lastEventAt = nil
	s.revision++

	themeMigrated := s.loadSettingsLocked()
	s.loadLastEventLocked()
	historyMigrated := s.loadHistoryLocked()

	if !themeMigrated && !historyMigrated {
		s.logger.Infof(providers.TypeStore, "loaded %d records", len(s.history))
		return nil
	}

	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("save migrated data: %w", err)
	}
	if historyMigrated {
		if err := s.kv.Remove(models.KeyLegacyDailyLog); err != nil {
			s.logger.Errorf(providers.TypeStore, "remove legacy log: %v", err)
			return fmt.Errorf("remove legacy log: %w", err)
		}
		s.logger.Infof(providers.TypeStore, "migrated legacy daily log to history")
	}
	return nil
}

func (s *LogStore) loadSettingsLocked() bool {
	raw, ok := s.get(models.KeySettings)
	if !ok {
		return false
	}
	persisted := models.PersistedSettings{Settings: models.DefaultSettings()}
	if err := json.Unmarshal(raw, &persisted); err != nil {
		s.logger.Warnf(providers.TypeStore, "malformed settings, using defaults: %v", err)
		return false
	}
	settings, migrated := models.MigrateLegacyTheme(persisted)
	if settings.Theme == "" {
		settings.Theme = models.ThemeSystem
	}
	if !settings.Valid() {
		s.logger.Warnf(providers.TypeStore, "invalid settings %+v, using defaults", settings)
		return false
	}
	s.settings = settings
	return migrated
}

func (s *LogStore) loadLastEventLocked() {
	raw, ok := s.get(models.KeyLastEvent)
	if !ok {
		return
	}
	var ts int64
	if err := json.Unmarshal(raw, &ts); err != nil {
		s.logger.Warnf(providers.TypeStore, "malformed last event timestamp %q: %v", raw, err)
		return
	}
	if ts > 0 {
		s.lastEventAt = &ts
	}
}

func (s *LogStore) loadHistoryLocked() bool {
	raw, ok := s.get(models.KeyHistory)
	if ok {
		var history models.History
		if err := json.Unmarshal(raw, &history); err != nil {
			s.logger.Warnf(providers.TypeStore, "malformed history, starting empty: %v", err)
			return false
		}
		s.history = dedupe(history)
		return false
	}

	raw, ok = s.get(models.KeyLegacyDailyLog)
	if !ok {
		return false
	}
	var legacy models.LegacyDailyLog
	if err := json.Unmarshal(raw, &legacy); err != nil {
		s.logger.Warnf(providers.TypeStore, "malformed legacy daily log, skipping migration: %v", err)
		return false
	}
	s.history = models.MigrateLegacy(legacy)
	return true
}

func (s *LogStore) get(key string) ([]byte, bool) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warnf(providers.TypeStore, "read %s: %v", key, err)
		return nil, false
	}
	return raw, ok
}

// dedupe keeps the first record of every date.
func dedupe(h models.History) models.History {
	seen := make(map[string]struct{}, len(h))
	out := make(models.History, 0, len(h))
	for _, r := range h {
		if _, ok := seen[r.Date]; ok {
			continue
		}
		seen[r.Date] = struct{}{}
		out = append(out, r)
	}
	return out
}

// EnsureToday creates an empty record for the current date. It writes to
// the backend only when a record was created.
func (s *LogStore) EnsureToday() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, created := s.ensureTodayLocked(); !created {
		return nil
	}
	s.revision++
	return s.persistLocked()
}

func (s *LogStore) ensureTodayLocked() (int, bool) {
	today := models.DateKey(s.now())
	if idx := s.history.Find(today); idx >= 0 {
		return idx, false
	}
	s.history = append(s.history, models.DailyRecord{Date: today})
	s.logger.Debugf(providers.TypeStore, "created record for %s", today)
	return len(s.history) - 1, true
}

// RecordEvent counts one event against today and stamps the event time.
// The notifier runs even when the write fails, since memory holds the event.
func (s *LogStore) RecordEvent() (models.DailyRecord, error) {
	rec, notifier, err := s.recordEvent()
	notifier.EventRecorded(rec)
	return rec, err
}

func (s *LogStore) recordEvent() (models.DailyRecord, EventNotifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, _ := s.ensureTodayLocked()
	rec := &s.history[idx]
	rec.Count++
	rec.Cost = s.settings.PricePerEvent() * float64(rec.Count)

	ts := s.now().UnixMilli()
	s.lastEventAt = &ts
	s.revision++
	s.metrics.IncEventsRecorded()

	return *rec, s.notifier, s.persistLocked()
}

// UpdateSettings validates raw input and, when it passes, replaces the
// settings and reprices today's record. Rejected input leaves everything as
// it was and returns a *SettingsError.
func (s *LogStore) UpdateSettings(in models.SettingsInput) (models.Settings, error) {
	parsed, err := ParseSettings(in)
	if err != nil {
		s.logger.Warnf(providers.TypeStore, "settings rejected: %v", err)
		return s.Settings(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = parsed
	if idx := s.history.Find(models.DateKey(s.now())); idx >= 0 {
		rec := &s.history[idx]
		rec.Cost = parsed.PricePerEvent() * float64(rec.Count)
	}
	s.revision++
	return parsed, s.persistLocked()
}

// Reset wipes the backend and returns memory to defaults.
func (s *LogStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Clear(); err != nil {
		s.metrics.IncPersistenceErrors()
		s.logger.Errorf(providers.TypeStore, "reset: %v", err)
		return fmt.Errorf("clear storage: %w", err)
	}
	s.settings = models.DefaultSettings()
	s.history = models.History{}
	s.lastEventAt = nil
	s.revision++
	s.logger.Infof(providers.TypeStore, "all data reset")
	return nil
}

func (s *LogStore) persistLocked() error {
	entries := make(map[string][]byte, 3)

	settings, err := json.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	entries[models.KeySettings] = settings

	history, err := json.Marshal(s.history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	entries[models.KeyHistory] = history

	if s.lastEventAt != nil {
		ts, err := json.Marshal(*s.lastEventAt)
		if err != nil {
			return fmt.Errorf("encode last event: %w", err)
		}
		entries[models.KeyLastEvent] = ts
	}

	start := time.Now()
	err = s.kv.SetAll(entries)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.metrics.IncPersistenceErrors()
		s.logger.Errorf(providers.TypeStore, "persist: %v", err)
		return fmt.Errorf("persist tracker state: %w", err)
	}
	return nil
}

func (s *LogStore) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := models.Snapshot{
		Settings: s.settings,
		History:  s.history.Clone(),
		Revision: s.revision,
	}
	if s.lastEventAt != nil {
		ts := *s.lastEventAt
		snap.LastEventAt = &ts
	}
	return snap
}

// Today returns the current day's record, or an empty one if it has not been
// created yet.
func (s *LogStore) Today() models.DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := models.DateKey(s.now())
	if idx := s.history.Find(today); idx >= 0 {
		return s.history[idx]
	}
	return models.DailyRecord{Date: today}
}

func (s *LogStore) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *LogStore) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func (s *LogStore) TodayCount() int {
	return s.Today().Count
}

func (s *LogStore) DaysTracked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

func (s *LogStore) StreakDays() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DaysSinceLastEvent(s.history, s.now())
}

// Now is the store's clock.
func (s *LogStore) Now() time.Time {
	s.mu.Lock()
	now := s.now
	s.mu.Unlock()
	return now()
}

type noopNotifier struct{}

func (noopNotifier) EventRecorded(models.DailyRecord) {}
