package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// task is one unit of work, typically the correlation of one row band.
type task func()

// WorkerPool runs tasks on a fixed set of goroutines.
//
// Each worker owns a queue. Tasks are dealt to the queues round-robin, and an
// idle worker steals from its neighbours before blocking, so a slow band does
// not leave the other workers waiting.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan task

	// mu orders enqueueing against Close: no task is queued after done
	// is closed, so every queued task is drained by its worker.
	mu      sync.RWMutex
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	depth := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan task, workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan task, depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.loop(i)
	}
	return p
}

// loop is the body of worker id.
func (p *WorkerPool) loop(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		if t := p.next(id); t != nil {
			t()
			continue
		}
		select {
		case t := <-own:
			t()
		case <-p.done:
			// Finish whatever is still queued before exiting.
			for {
				select {
				case t := <-own:
					t()
				default:
					return
				}
			}
		}
	}
}

// next returns a task from the worker's own queue or, failing that, one
// stolen from another queue. It returns nil when every queue is empty.
func (p *WorkerPool) next(id int) task {
	for k := range p.workers {
		select {
		case t := <-p.queues[(id+k)%p.workers]:
			return t
		default:
		}
	}
	return nil
}

// ExecuteAll runs every function in work and returns once all have finished.
// A closed pool runs the work on the calling goroutine instead. ExecuteAll may
// race with Close; each item still runs exactly once.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		for _, fn := range work {
			fn()
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(work))
	for i, fn := range work {
		p.queues[i%p.workers] <- func() {
			defer pending.Done()
			fn()
		}
	}
	p.mu.RUnlock()

	pending.Wait()
}

// Close stops the workers after the queued tasks have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
