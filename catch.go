// Package catch runs caller-supplied functions inside a protected
// region and reports any panic they throw as an ordinary value instead
// of letting it unwind past the call.
//
// The one-shot form is Try, which returns nil when the function
// completes and an *Exception when it panics. Catcher is the reusable
// form for protecting many calls and inspecting (or rethrowing) the
// first thing caught.
//
// Only panics are intercepted. runtime.Goexit, os.Exit, and fatal
// runtime faults terminate the goroutine or process as usual.
package catch

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync/atomic"
)

// Catcher protects calls made through its Try method. Try can be called
// any number of times, from any number of goroutines. Once the calls of
// interest have completed, Caught returns the first exception thrown
// during any of them (if any), and Repanic rethrows it.
//
// The zero value is ready to use.
type Catcher struct {
	caught atomic.Pointer[Exception]
}

// Try invokes f exactly once on the calling goroutine, intercepting any
// panic it throws. It is safe to call from multiple goroutines
// simultaneously; when several protected calls panic, the first caught
// exception is kept and the rest are dropped.
func (c *Catcher) Try(f func()) {
	defer c.tryRecover()
	f()
}

func (c *Catcher) tryRecover() {
	if val := recover(); val != nil {
		ex := newException(1, val)
		c.caught.CompareAndSwap(nil, &ex)
	}
}

// Caught returns the first exception intercepted by Try, or nil if no
// protected call has panicked.
func (c *Catcher) Caught() *Exception {
	return c.caught.Load()
}

// Repanic rethrows the first caught exception, panicking with the
// *Exception itself so the original value and stacktrace travel with
// it. It does nothing if nothing was caught.
func (c *Catcher) Repanic() {
	if ex := c.Caught(); ex != nil {
		panic(ex)
	}
}

// Exception describes a single panic intercepted by Try. It is created
// at the recovery site, handed to the caller as the result, and never
// mutated afterwards.
type Exception struct {
	// Value is the original panic value, unmodified.
	Value any
	// Callers holds the raw program counters collected by
	// runtime.Callers at the recovery site. Feed them to
	// runtime.CallersFrames for structured frame information.
	Callers []uintptr
	// Stack is the formatted stacktrace of the goroutine that
	// panicked, as produced by debug.Stack. Easier to read than
	// Callers.
	Stack []byte
}

// newException captures the panic value together with the stack at the
// recovery site. skip counts frames to drop from Callers; 0 includes
// the call to newException itself.
func newException(skip int, value any) Exception {
	// 64 frames should be plenty
	var callers [64]uintptr
	n := runtime.Callers(skip+1, callers[:])
	return Exception{
		Value:   value,
		Callers: callers[:n],
		Stack:   debug.Stack(),
	}
}

// Name reports the dynamic type of the thrown value, which plays the
// role of an exception class here: "*errors.errorString", "string",
// "runtime.boundsError", and so on.
func (e *Exception) Name() string {
	return fmt.Sprintf("%T", e.Value)
}

// Reason reports the human-readable description of the thrown value.
// For an error value this is its Error text.
func (e *Exception) Reason() string {
	return fmt.Sprint(e.Value)
}

// Error makes Exception usable directly as an error.
func (e *Exception) Error() string {
	return fmt.Sprintf("panic: %v\nstacktrace:\n%s\n", e.Value, e.Stack)
}

// Unwrap returns the underlying cause when the thrown value is itself
// an error, so errors.Is and errors.As see through the exception.
func (e *Exception) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// AsError converts the exception to a plain error, mapping the nil
// receiver to a nil error rather than a non-nil interface holding a
// nil pointer.
func (e *Exception) AsError() error {
	if e == nil {
		return nil
	}
	return e
}

func (e *Exception) String() string {
	return e.Error()
}
