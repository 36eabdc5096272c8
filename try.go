package catch

// Try invokes f exactly once, inline on the calling goroutine, and
// returns any panic it throws instead of letting it propagate. It
// returns nil when f completes normally. Side effects performed by f
// before a panic are not rolled back.
//
// The caught exception can be rethrown with panic(), or handled as a
// normal error with (*Exception).AsError().
func Try(f func()) *Exception {
	var c Catcher
	c.Try(f)
	return c.Caught()
}
