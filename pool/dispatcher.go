package pool

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/astaxie/beego/logs"
)

// Dispatcher is a fixed set of workers consuming a shared FIFO job queue.
//
// The queue is guarded by lock, which is held only while a worker removes the head.
// Jobs run outside the lock, so dequeued jobs execute in parallel.
type Dispatcher struct {
	size    int
	running int32 // workers currently executing a job

	lock   sync.Mutex
	cond   *sync.Cond // signalled on submit and on shutdown
	queue  []Job
	limit  int // 0 means unbounded
	closed bool

	wg   sync.WaitGroup
	done chan struct{} // closed once every worker has exited
	once sync.Once

	log *logs.BeeLogger
}

// New starts a Dispatcher with size workers.
func New(size int, opts ...Option) (*Dispatcher, error) {
	if size <= 0 {
		return nil, ErrInvalidPoolSize
	}

	d := &Dispatcher{
		size: size,
		done: make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.lock)
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = logs.NewLogger()
	}

	d.wg.Add(size)
	for i := 0; i < size; i++ {
		w := &worker{id: i, d: d}
		go w.run()
	}
	go func() {
		d.wg.Wait()
		close(d.done)
	}()

	d.log.Info("[pool] started %d workers", size)
	return d, nil
}

// Submit enqueues job and returns without waiting for it to run.
func (d *Dispatcher) Submit(job Job) error {
	if job == nil {
		return ErrNilJob
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	if d.closed {
		return ErrPoolClosed
	}
	if d.limit > 0 && len(d.queue) >= d.limit {
		return ErrQueueFull
	}
	d.queue = append(d.queue, job)
	d.cond.Signal()
	return nil
}

// next removes the head of the queue, waiting while it is empty.
// It reports false once the dispatcher is closed and the queue is drained.
func (d *Dispatcher) next() (Job, bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	for len(d.queue) == 0 {
		if d.closed {
			return nil, false
		}
		d.cond.Wait()
	}

	job := d.queue[0]
	d.queue[0] = nil
	d.queue = d.queue[1:]
	if len(d.queue) == 0 {
		// drop the consumed prefix so the backing array can be reclaimed
		d.queue = nil
	}
	return job, true
}

// Shutdown stops accepting jobs, lets the workers drain whatever is already queued and
// waits for them to exit. If ctx ends first its error is returned; the workers keep
// draining in the background.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.once.Do(func() {
		d.lock.Lock()
		d.closed = true
		d.cond.Broadcast()
		d.lock.Unlock()
		d.log.Info("[pool] shutting down, %d jobs left to drain", d.Queued())
	})

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Size is the fixed number of workers.
func (d *Dispatcher) Size() int {
	return d.size
}

// Running is the number of workers executing a job.
func (d *Dispatcher) Running() int {
	return int(atomic.LoadInt32(&d.running))
}

// Idle is the number of workers waiting for a job.
func (d *Dispatcher) Idle() int {
	return d.size - d.Running()
}

// Queued is the number of jobs waiting for a worker.
func (d *Dispatcher) Queued() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return len(d.queue)
}
