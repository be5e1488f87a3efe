package progression

import "time"

// Task is a pending deferred callback
type Task interface {
	Stop() bool
}

// Scheduler runs a callback once after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// TimerScheduler returns a Scheduler backed by time.AfterFunc.
func TimerScheduler() Scheduler {
	return timerScheduler{}
}
