package tasks

// TaskSchedulerInterface is what the HTTP layer needs from the scheduler.
// Example usage:
//
//	scheduler := NewScheduler(deps, interval)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewCollectTask(TriggerAPI, deps))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
