package assert

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCollector_Unwrap(t *testing.T) {
	var (
		errA = errors.New("A")
		errB = errors.New("B")
		err  = CollectErrors().Add(errA).Add(nil).Add(errB).Result()
		as   *Collector
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	require.ErrorAs(t, err, &as)
	assert.Equal(t, 2, as.Len())
}

func TestCollector_Error(t *testing.T) {
	errA := errors.New("A")
	assert.Equal(t, "A; B: A", CollectErrors().Add(errA).AddString("B: %w", errA).Error())
	assert.Equal(t, "A B", CollectErrors(" ").Add(errA).AddString("B").Error())
}

func TestCollector_AddIf(t *testing.T) {
	c := CollectErrors().
		AddIf(false, "not added").
		AddIf(true, "value %d is too small", 0)
	require.Error(t, c.Result())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "value 0 is too small", c.Error())

	assert.NoError(t, CollectErrors().AddIf(false, "nope").Result())
}
