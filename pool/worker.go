package pool

import "sync/atomic"

type worker struct {
	id int
	d  *Dispatcher
}

// run loops Idle -> Executing -> Idle until the dispatcher is closed and drained.
func (w *worker) run() {
	defer w.d.wg.Done()

	for {
		job, ok := w.d.next()
		if !ok {
			w.d.log.Debug("[pool] worker %d stopped", w.id)
			return
		}

		w.d.log.Debug("[pool] worker %d received a job, executing it", w.id)
		atomic.AddInt32(&w.d.running, 1)
		job.Run()
		atomic.AddInt32(&w.d.running, -1)
	}
}
