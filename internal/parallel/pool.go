// Package parallel runs batches of independent tasks on a fixed pool of
// work-stealing goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Task is a unit of work. It receives the index of the worker running it,
// in [0, Workers()), so that tasks can use per-worker state such as a
// generator that must not be shared between goroutines.
type Task func(worker int)

// WorkerPool is a fixed set of goroutines with one queue each. A worker
// whose queue is empty steals from the others, which balances batches where
// some tasks take much longer than the rest.
//
// Each worker runs one task at a time, so state indexed by the worker
// argument is only ever touched by one goroutine.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan Task

	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers. If workers
// is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan Task, workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan Task, queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(id)
			return
		case task := <-own:
			task(id)
		default:
			if task := p.steal(id); task != nil {
				task(id)
				continue
			}
			select {
			case <-p.done:
				p.drain(id)
				return
			case task := <-own:
				task(id)
			}
		}
	}
}

// drain runs what is left in the worker's own queue.
func (p *WorkerPool) drain(id int) {
	for {
		select {
		case task := <-p.queues[id]:
			task(id)
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) Task {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case task := <-p.queues[i]:
			return task
		default:
		}
	}
	return nil
}

// ExecuteAll distributes tasks round-robin and waits for them. Tasks that
// have not started when ctx is cancelled are skipped; running tasks are not
// interrupted. It returns the number of tasks that ran.
//
// If the pool is closed, ExecuteAll runs nothing.
func (p *WorkerPool) ExecuteAll(ctx context.Context, tasks []Task) int {
	if len(tasks) == 0 || !p.running.Load() {
		return 0
	}

	var (
		wg  sync.WaitGroup
		ran atomic.Int64
	)
	wg.Add(len(tasks))

	for i, fn := range tasks {
		wrapped := func(worker int) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			fn(worker)
			ran.Add(1)
		}

		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wg.Done()
		case <-ctx.Done():
			wg.Done()
		}
	}

	wg.Wait()
	return int(ran.Load())
}

// Close stops accepting work, lets queued tasks finish and stops the
// workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
