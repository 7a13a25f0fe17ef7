// Package worker runs independent hashing tasks on a bounded goroutine pool.
package worker

import (
	"runtime"
	"sync"

	"github.com/panjf2000/ants"
	"massnet.org/hashcore/logging"
)

// DefaultSize is the pool size used when a non-positive size is requested.
var DefaultSize = runtime.NumCPU()

// Pool is a fixed-size pool of goroutines. Tasks handed to Map must not share
// mutable state except through their own index.
type Pool struct {
	size int
	pool *ants.Pool
}

// New creates a pool running at most size tasks at once.
func New(size int) (*Pool, error) {
	if size <= 0 {
		size = DefaultSize
	}
	pool, err := ants.NewPoolPreMalloc(size)
	if err != nil {
		return nil, err
	}
	logging.VPrint(logging.DEBUG, "worker pool created", logging.LogFormat{"size": size})
	return &Pool{size: size, pool: pool}, nil
}

// Size returns the maximum number of concurrently running tasks.
func (p *Pool) Size() int {
	return p.size
}

// Map calls fn(i) for every i in [0, n) on the pool and returns once all
// calls have finished. Callers write results by index, so the output order
// never depends on scheduling. The first submit error is returned after the
// already submitted tasks are done.
func (p *Pool) Map(n int, fn func(i int)) error {
	var (
		wg        sync.WaitGroup
		submitErr error
	)
	for i := 0; i < n; i++ {
		i0 := i
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			fn(i0)
		}); err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		logging.VPrint(logging.WARN, "fail to submit task", logging.LogFormat{"err": submitErr, "tasks": n})
	}
	return submitErr
}

// Release stops the pool. Map must not be called afterwards.
func (p *Pool) Release() {
	p.pool.Release()
}
