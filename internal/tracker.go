package internal

import (
	"smokeless/internal/providers"
	"smokeless/internal/scheduler/interfaces"
	"smokeless/internal/services"
	"smokeless/internal/structures"
)

// Tracker bundles what the command line needs for one invocation.
type Tracker struct {
	Conf      *structures.Config
	Logger    providers.Logger
	Store     *services.LogStore
	Scheduler interfaces.SchedulerInterface
}

func NewTracker(conf *structures.Config, logger providers.Logger, store *services.LogStore, scheduler interfaces.SchedulerInterface) *Tracker {
	return &Tracker{
		Conf:      conf,
		Logger:    logger,
		Store:     store,
		Scheduler: scheduler,
	}
}

// Open loads persisted state and makes sure today has a record.
func (t *Tracker) Open() error {
	return t.Scheduler.Restore()
}
