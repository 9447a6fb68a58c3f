package mdsite

import (
	"runtime"
	"sync"
)

// Worker pool sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent documents. Rendering is CPU-bound, so more
	// workers than cores only adds contention.
	MaxWorkers = 64
)

// ResolveWorkers determines the worker count.
// If workers > 0, uses that value (capped at MaxWorkers).
// Otherwise, uses GOMAXPROCS.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}
	return max(MinWorkers, min(runtime.GOMAXPROCS(0), MaxWorkers))
}

// workerPool runs a fixed number of goroutines over job indexes.
type workerPool struct {
	size int
}

// newWorkerPool creates a pool of n workers, never more than jobs.
func newWorkerPool(n, jobs int) *workerPool {
	size := ResolveWorkers(n)
	if jobs > 0 && size > jobs {
		size = jobs
	}
	return &workerPool{size: size}
}

// Size returns the number of workers.
func (p *workerPool) Size() int {
	return p.size
}

// run calls work for every index in [0, jobs) across the pool and sends each
// return value on the returned channel, which is closed once all jobs finish.
func run[T any](p *workerPool, jobs int, work func(i int) T) <-chan T {
	results := make(chan T, jobs)
	queue := make(chan int, jobs)
	for i := range jobs {
		queue <- i
	}
	close(queue)

	var wg sync.WaitGroup
	for range p.size {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results <- work(i)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}
