package pool

import (
	"errors"

	"github.com/astaxie/beego/logs"
)

var (
	ErrInvalidPoolSize = errors.New("invalid size for pool")
	ErrPoolClosed      = errors.New("this pool has been closed")
	ErrQueueFull       = errors.New("job queue is full")
	ErrNilJob          = errors.New("job is nil")
)

// Job is a one-shot unit of work. A submitted Job is run exactly once by exactly one worker.
type Job interface {
	Run()
}

// JobFunc adapts an ordinary function to a Job.
type JobFunc func()

func (f JobFunc) Run() {
	f()
}

// Option configures a Dispatcher at construction.
type Option func(*Dispatcher)

// WithQueueLimit bounds the number of waiting jobs. Submit rejects with ErrQueueFull once
// limit jobs are queued. A limit <= 0 keeps the queue unbounded.
func WithQueueLimit(limit int) Option {
	return func(d *Dispatcher) {
		if limit > 0 {
			d.limit = limit
		}
	}
}

// WithLogger sets the logger used by workers.
func WithLogger(l *logs.BeeLogger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}
