package eventbus

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestPriority_Order(t *testing.T) {
	priorities := Priorities()
	require.Len(t, priorities, 5)
	for i := 1; i < len(priorities); i++ {
		assert.True(t, priorities[i-1].Before(priorities[i]), "%s should be before %s", priorities[i-1], priorities[i])
		assert.False(t, priorities[i].Before(priorities[i-1]))
	}
}

func TestParsePriority(t *testing.T) {
	for _, p := range Priorities() {
		parsed, err := ParsePriority(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	parsed, err := ParsePriority(" HIGHEST ")
	assert.NoError(t, err)
	assert.Equal(t, Highest, parsed)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}

func TestPriority_Valid(t *testing.T) {
	assert.True(t, Normal.Valid())
	assert.False(t, Priority(-1).Valid())
	assert.False(t, Priority(5).Valid())
	assert.Equal(t, "priority(9)", Priority(9).String())
}
