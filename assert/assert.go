//go:build !noassert

package assert

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

var disabled atomic.Bool

// Disable will disable assertion evaluation globally.
// This is concurrency safe, but affects every goroutine that uses assertions.
func Disable() {
	disabled.Store(true)
}

// Enable re-enables assertion evaluation if Disable was called previously.
func Enable() {
	disabled.Store(false)
}

func getCallerDetails() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("'%s#%d'", file, line)
}

// True will panic with descriptive information if result is not true.
func True(label string, result bool) {
	if disabled.Load() {
		return
	}
	if !result {
		panic(fmt.Sprintf("assertion '%s' failed at %s", label, getCallerDetails()))
	}
}

// Sorted will panic if any element of vals compares before its predecessor using cmp.
// Equal elements are allowed, so this also holds for stable orderings with ties.
func Sorted[S ~[]E, E any](label string, vals S, cmp func(a, b E) int) {
	if disabled.Load() {
		return
	}
	for i := 1; i < len(vals); i++ {
		if cmp(vals[i-1], vals[i]) > 0 {
			panic(fmt.Sprintf("assertion '%s' failed at %s: element %d is out of order", label, getCallerDetails(), i))
		}
	}
}
