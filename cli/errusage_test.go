package cli

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestUsageError_Is(t *testing.T) {
	errTesting := errors.New("test")
	err := NewUsageError("%w", errTesting)
	assert.ErrorIs(t, err, &UsageError{})
	assert.ErrorIs(t, err, errTesting)

	var target *UsageError
	assert.ErrorAs(t, err, &target)
	assert.NotErrorIs(t, errTesting, &UsageError{})
}

func TestUsageError_Error(t *testing.T) {
	assert.Equal(t, "usage error", (&UsageError{}).Error(), "Default output when there is no wrapped error")
	assert.Equal(t, "usage error: test", NewUsageError("test").Error())
}
