package main

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/fatih/color"
	"github.com/saylorsolutions/trolley/cli"
	"github.com/saylorsolutions/trolley/eventbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func run(ctx context.Context, args []string, stdout, stderr *bytes.Buffer, stderrTTY bool) error {
	return newCommandSet(stdout, stderr, stderrTTY).Exec(ctx, append([]string{"run"}, args...))
}

func runJSON(t *testing.T, args ...string) (*report, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append(args, "--json"), &stdout, &stderr, false)
	require.NoError(t, err, stderr.String())
	var r report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &r))
	return &r, stderr.String()
}

func priorityCounts(r *report) map[string]priorityReport {
	counts := map[string]priorityReport{}
	for _, p := range r.Priorities {
		counts[p.Priority] = p
	}
	return counts
}

func TestRun_Cancellation(t *testing.T) {
	r, _ := runJSON(t, "--listeners", "10", "--fires", "4", "--cancel-at", "high")
	assert.Equal(t, "serial", r.Strategy)
	assert.Equal(t, 4, r.Fires)
	assert.Equal(t, uint64(4), r.Instances, "Serial bulk firing shares one instance")

	// Per firing call: 2 highest, 1 high that cancels, 7 skipped, and the auditor.
	assert.Equal(t, uint64(16), r.Delivered)
	assert.Equal(t, uint64(28), r.Skipped)
	assert.Equal(t, uint64(4), r.AuditedCancelled)
	assert.Equal(t, uint64(0), r.Failed)

	counts := priorityCounts(r)
	assert.Equal(t, uint64(8), counts["highest"].Deliveries)
	assert.Equal(t, uint64(4), counts["high"].Deliveries)
	assert.Equal(t, uint64(0), counts["normal"].Deliveries)
	assert.Equal(t, uint64(0), counts["lowest"].Deliveries)
}

func TestRun_Failures(t *testing.T) {
	r, logs := runJSON(t, "--listeners", "5", "--fires", "3", "--fail-at", "NORMAL", "-v")
	assert.Equal(t, uint64(3), r.Failed)
	assert.Equal(t, uint64(3), r.FailedFires)
	assert.Equal(t, uint64(0), r.AuditedCancelled)

	counts := priorityCounts(r)
	assert.Equal(t, uint64(3), counts["normal"].Failures)
	assert.Equal(t, uint64(0), counts["low"].Deliveries, "Serial delivery stops at the first failure")
	assert.Contains(t, logs, "Uncaught listener error")
	assert.Contains(t, logs, errSimulated.Error())
}

func TestRun_ParallelIndividual(t *testing.T) {
	r, _ := runJSON(t, "--parallel", "--individual", "--workers", "3", "--listeners", "10", "--fires", "2")
	assert.Equal(t, "parallel", r.Strategy)
	assert.True(t, r.Individual)
	assert.Equal(t, 3, r.Workers)
	assert.Equal(t, uint64(12), r.Instances, "One for the single event, and one for each of the 11 listeners")
	assert.Equal(t, uint64(22), r.Delivered)
}

func TestRun_Environment(t *testing.T) {
	t.Setenv("TROLLEY_FIRES", "6")
	t.Setenv("TROLLEY_CANCEL_AT", "lowest")
	r, _ := runJSON(t, "--listeners", "1")
	assert.Equal(t, 6, r.Fires)

	r, _ = runJSON(t, "--listeners", "1", "--fires", "2")
	assert.Equal(t, 2, r.Fires, "Flags should take precedence over the environment")
}

func TestRun_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(ctx, []string{"--fires", "50", "--json"}, &stdout, &stderr, false))
	var r report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &r))
	assert.Equal(t, 0, r.Fires)
	assert.Contains(t, stderr.String(), "Interrupted")
}

func TestRun_InvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--workers", "0", "--cancel-at", "urgent"}, &stdout, &stderr, false)
	assert.ErrorIs(t, err, &cli.UsageError{})
	assert.ErrorContains(t, err, "workers must be at least 1")
	assert.ErrorContains(t, err, "cancel-at")
	assert.Contains(t, stdout.String(), "USAGE:\ntrolley run [FLAGS]", "Usage should follow a usage error")

	err = run(context.Background(), []string{"--bogus"}, &stdout, &stderr, false)
	assert.ErrorIs(t, err, &cli.UsageError{})

	err = run(context.Background(), []string{"extra"}, &stdout, &stderr, false)
	assert.ErrorIs(t, err, &cli.UsageError{})
	assert.ErrorContains(t, err, "unexpected arguments: extra")
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-h"}, &stdout, &stderr, false))
	assert.Contains(t, stdout.String(), "USAGE:")
	assert.Contains(t, stdout.String(), "--cancel-at")
	assert.Contains(t, stdout.String(), "TROLLEY_CANCEL_AT")
	assert.Contains(t, stdout.String(), eventbus.Lowest.String())

	stdout.Reset()
	require.NoError(t, newCommandSet(&stdout, &stderr, false).Exec(context.Background(), []string{"--help"}))
	assert.Contains(t, stdout.String(), "run, r")
}

func TestRun_TextReport(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = noColor
	})
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--listeners", "5", "--fires", "1"}, &stdout, &stderr, true))
	out := stdout.String()
	assert.Contains(t, out, "strategy:           serial")
	assert.Contains(t, out, "delivered:          6")
	assert.Contains(t, out, "By priority")
}
