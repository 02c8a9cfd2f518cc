package assert

import (
	"fmt"
	"strings"
)

// Collector gathers validation errors so they can all be reported at once, rather than stopping at the first.
// It's an error itself, and [errors.Is] or [errors.As] match any collected error.
//
// A Collector must not be shared between goroutines.
type Collector struct {
	errs []error
	sep  string
}

// CollectErrors creates an empty Collector.
// Collected errors are separated with "; " in the message, unless a different separator is given.
func CollectErrors(sep ...string) *Collector {
	c := &Collector{sep: "; "}
	if len(sep) > 0 {
		c.sep = sep[0]
	}
	return c
}

// Add collects err, unless it's nil.
func (c *Collector) Add(err error) *Collector {
	if err == nil {
		return c
	}
	c.errs = append(c.errs, err)
	return c
}

// AddString collects an error created with [fmt.Errorf], so "%w" may be used to wrap another error.
func (c *Collector) AddString(format string, args ...any) *Collector {
	return c.Add(fmt.Errorf(format, args...))
}

// AddIf collects an error created with [fmt.Errorf] only if violated is true.
// This reads well for a chain of checks on configuration values.
func (c *Collector) AddIf(violated bool, format string, args ...any) *Collector {
	if violated {
		return c.AddString(format, args...)
	}
	return c
}

// Len returns the number of errors collected.
func (c *Collector) Len() int {
	return len(c.errs)
}

// Result returns nil if nothing was collected, and the Collector otherwise.
// Use this instead of returning the Collector directly, since an empty Collector is still a non-nil error.
func (c *Collector) Result() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c
}

func (c *Collector) Error() string {
	msgs := make([]string, len(c.errs))
	for i, err := range c.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, c.sep)
}

func (c *Collector) Unwrap() []error {
	return c.errs
}
