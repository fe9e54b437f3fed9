package scheduler

import (
	"fmt"
	"github.com/robfig/cron/v3"
	"smokeless/internal/providers"
	"smokeless/internal/scheduler/interfaces"
	"smokeless/internal/services"
	"smokeless/internal/structures"
	"sync"
)

// Scheduler keeps the log current while the process stays up: every refresh
// interval it makes sure a record exists for today, so a session left open
// over midnight rolls over to the new day, then runs the refresh callbacks.
type Scheduler struct {
	config    *structures.Config
	logger    providers.Logger
	store     services.LogStoreInterface
	cron      *cron.Cron
	opsMu     sync.Mutex
	refreshMu sync.Mutex
	refresh   []func()
}

func (s *Scheduler) Init() error {
	s.cron = cron.New()
	spec := fmt.Sprintf("@every %s", s.config.Scheduler.RefreshInterval)

	if _, err := s.cron.AddFunc(spec, s.Tick); err != nil {
		s.logger.Errorf(providers.TypeApp, "Invalid refresh schedule %q: %s", spec, err)
		return fmt.Errorf("schedule refresh: %w", err)
	}

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Refresh scheduled %s", spec)
	return nil
}

// Stop waits for a running tick to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Restore loads persisted state and creates today's record.
func (s *Scheduler) Restore() error {
	if err := s.store.Load(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while loading data: %s", err)
	}
	if err := s.store.EnsureToday(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while creating today's record: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) Tick() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if err := s.store.EnsureToday(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while creating today's record: %s", err)
	}

	s.refreshMu.Lock()
	callbacks := append([]func(){}, s.refresh...)
	s.refreshMu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func (s *Scheduler) OnRefresh(fn func()) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	s.refresh = append(s.refresh, fn)
}

func NewScheduler(config *structures.Config, logger providers.Logger, store services.LogStoreInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		store:  store,
	}
}
