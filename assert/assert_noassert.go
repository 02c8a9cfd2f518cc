//go:build noassert

package assert

func Disable() {
	// No op
}

func Enable() {
	// No op
}

func True(label string, result bool) {
	// No op
}

func Sorted[S ~[]E, E any](label string, vals S, cmp func(a, b E) int) {
	// No op
}
