package main

import (
	"encoding/json"
	"fmt"
	"github.com/fatih/color"
	"io"
	"time"
)

type priorityReport struct {
	Priority   string `json:"priority"`
	Deliveries uint64 `json:"deliveries"`
	Failures   uint64 `json:"failures"`
}

type report struct {
	Bus              string           `json:"bus"`
	Strategy         string           `json:"strategy"`
	Individual       bool             `json:"individualEvents"`
	Workers          int              `json:"workers"`
	Listeners        int              `json:"listeners"`
	Fires            int              `json:"fires"`
	Instances        uint64           `json:"instances"`
	Delivered        uint64           `json:"delivered"`
	Skipped          uint64           `json:"skippedByCancel"`
	Failed           uint64           `json:"failed"`
	FailedFires      uint64           `json:"failedFires"`
	AuditedCancelled uint64           `json:"auditedCancelled"`
	Elapsed          time.Duration    `json:"elapsedNanos"`
	Priorities       []priorityReport `json:"priorities"`
}

func newReport(s *scenario, fires int, elapsed time.Duration) *report {
	stats := s.bus.Stats()
	r := &report{
		Bus:              s.bus.ID().String(),
		Strategy:         "serial",
		Individual:       s.bus.DispatchesIndividualEvents(),
		Workers:          s.bus.Workers(),
		Listeners:        s.conf.Listeners,
		Fires:            fires,
		Instances:        stats.Instances,
		Delivered:        stats.Delivered,
		Skipped:          stats.Skipped,
		Failed:           stats.Failed,
		FailedFires:      s.counters.fireErrors.Load(),
		AuditedCancelled: s.counters.cancelled.Load(),
		Elapsed:          elapsed,
	}
	if s.bus.Parallel() {
		r.Strategy = "parallel"
	}
	for i, p := range priorityLevels {
		r.Priorities = append(r.Priorities, priorityReport{
			Priority:   p.String(),
			Deliveries: s.counters.deliveries[i].Load(),
			Failures:   s.counters.failures[i].Load(),
		})
	}
	return r
}

func (r *report) writeJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// writeText writes a human-readable report. Colors are controlled by [color.NoColor].
func (r *report) writeText(out io.Writer) {
	var (
		heading = color.New(color.Bold, color.FgCyan)
		good    = color.New(color.FgGreen)
		warn    = color.New(color.FgYellow)
		bad     = color.New(color.FgRed, color.Bold)
	)
	countColor := func(c *color.Color, n uint64) string {
		if n == 0 {
			return fmt.Sprint(n)
		}
		return c.Sprint(n)
	}

	_, _ = heading.Fprintf(out, "Bus %s\n", r.Bus)
	_, _ = fmt.Fprintf(out, "  strategy:           %s (%d workers, individual events: %t)\n", r.Strategy, r.Workers, r.Individual)
	_, _ = fmt.Fprintf(out, "  listeners:          %d\n", r.Listeners)
	_, _ = fmt.Fprintf(out, "  firing calls:       %d\n", r.Fires)
	_, _ = fmt.Fprintf(out, "  event instances:    %d\n", r.Instances)
	_, _ = fmt.Fprintf(out, "  elapsed:            %s\n", r.Elapsed.Round(time.Microsecond))
	_, _ = fmt.Fprintln(out)

	_, _ = heading.Fprintln(out, "Deliveries")
	_, _ = fmt.Fprintf(out, "  delivered:          %s\n", countColor(good, r.Delivered))
	_, _ = fmt.Fprintf(out, "  skipped by cancel:  %s\n", countColor(warn, r.Skipped))
	_, _ = fmt.Fprintf(out, "  audited cancelled:  %s\n", countColor(warn, r.AuditedCancelled))
	_, _ = fmt.Fprintf(out, "  listener failures:  %s\n", countColor(bad, r.Failed))
	_, _ = fmt.Fprintf(out, "  failed firings:     %s\n", countColor(bad, r.FailedFires))
	_, _ = fmt.Fprintln(out)

	_, _ = heading.Fprintln(out, "By priority")
	for _, p := range r.Priorities {
		_, _ = fmt.Fprintf(out, "  %-8s  deliveries: %-8s failures: %s\n", p.Priority, countColor(good, p.Deliveries), countColor(bad, p.Failures))
	}
}
