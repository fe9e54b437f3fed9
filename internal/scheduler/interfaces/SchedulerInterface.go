package interfaces

type SchedulerInterface interface {
	Init() error
	Stop()
	Restore() error
	Tick()
	OnRefresh(fn func())
}
