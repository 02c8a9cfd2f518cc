//go:build !noassert

package assert_test

import (
	"cmp"
	"github.com/saylorsolutions/trolley/assert"
	tassert "github.com/stretchr/testify/assert"
	"testing"
)

func TestTrue(t *testing.T) {
	tassert.NotPanics(t, func() {
		assert.True("true", true)
	})
	tassert.Panics(t, func() {
		assert.True("false", false)
	})
}

func TestSorted(t *testing.T) {
	tests := map[string]struct {
		vals   []int
		panics bool
	}{
		"Empty":        {vals: nil},
		"Single":       {vals: []int{1}},
		"Ascending":    {vals: []int{1, 2, 3}},
		"With ties":    {vals: []int{1, 1, 2, 2}},
		"Out of order": {vals: []int{1, 3, 2}, panics: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			fn := func() {
				assert.Sorted(name, tc.vals, cmp.Compare[int])
			}
			if tc.panics {
				tassert.Panics(t, fn)
				return
			}
			tassert.NotPanics(t, fn)
		})
	}
}

func TestDisable(t *testing.T) {
	assert.Disable()
	t.Cleanup(func() {
		assert.Enable()
	})
	tassert.NotPanics(t, func() {
		assert.True("false", false)
		assert.Sorted("descending", []int{3, 2, 1}, cmp.Compare[int])
	})
}
