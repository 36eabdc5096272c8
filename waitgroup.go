package catch

import (
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/sourcegraph/lib/errors"
)

// WaitGroup extends the protection across the go statement: goroutines
// spawned with Go run under an exception guard, and Wait rethrows the
// first panic caught in any child so it is not silently lost with the
// child goroutine.
type WaitGroup struct {
	wg     sync.WaitGroup
	caught atomic.Pointer[error]
}

// Go spawns f in a new goroutine in the WaitGroup.
func (wg *WaitGroup) Go(f func()) {
	wg.wg.Add(1)
	go func() {
		defer wg.done()
		f()
	}()
}

// Wait blocks until every goroutine spawned with Go has exited, then
// panics with the first exception caught in a child, if there was one.
func (wg *WaitGroup) Wait() {
	wg.wg.Wait()

	if err := wg.caught.Load(); err != nil {
		panic(*err)
	}
}

// done runs deferred in each child goroutine.
func (wg *WaitGroup) done() {
	if val := recover(); val != nil {
		ex := newException(1, val)
		err := errors.Newf(
			"caught panic in child goroutine: %v\n\nchild stacktrace:\n%s\n",
			ex.Value,
			ex.Stack,
		)
		wg.caught.CompareAndSwap(nil, &err)
	}
	wg.wg.Done()
}
