package main

import (
	"fmt"
	"github.com/saylorsolutions/trolley/assert"
	"github.com/saylorsolutions/trolley/cli"
	"github.com/saylorsolutions/trolley/eventbus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"runtime"
	"strings"
)

const envPrefix = "TROLLEY"

type config struct {
	Parallel   bool
	Individual bool
	Workers    int
	Listeners  int
	Fires      int
	CancelAt   *eventbus.Priority
	FailAt     *eventbus.Priority
	JSON       bool
	Verbose    bool
}

func defineFlags(fs *flag.FlagSet) {
	fs.Bool("parallel", false, "Dispatches events to listeners in parallel")
	fs.Bool("individual", false, "Constructs an event for each listener when firing in bulk")
	fs.Int("workers", runtime.GOMAXPROCS(0), "Maximum number of goroutines used by each parallel firing call")
	fs.Int("listeners", 10, "Number of listeners to register, spread across all priorities")
	fs.Int("fires", 100, "Number of firing calls, alternating between single and bulk firing")
	fs.String("cancel-at", "", "Listeners at this priority cancel the event")
	fs.String("fail-at", "", "Listeners at this priority return an error")
	fs.Bool("json", false, "Prints the report as JSON")
	fs.BoolP("verbose", "v", false, "Logs debug output and every listener failure")
}

func runUsage() string {
	names := make([]string, 0, len(eventbus.Priorities()))
	for _, p := range eventbus.Priorities() {
		names = append(names, p.String())
	}
	return fmt.Sprintf(`[FLAGS]

Every flag may also be set with an environment variable prefixed with %[1]s_, for example %[1]s_CANCEL_AT=high.
Valid priorities are: %[2]s
`, envPrefix, strings.Join(names, ", "))
}

// loadConfig resolves the final configuration from parsed flags and the environment.
// Flags explicitly passed take precedence over environment variables.
func loadConfig(fs *flag.FlagSet) (config, error) {
	if fs.NArg() > 0 {
		return config{}, cli.NewUsageError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return config{}, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	conf := config{
		Parallel:   v.GetBool("parallel"),
		Individual: v.GetBool("individual"),
		Workers:    v.GetInt("workers"),
		Listeners:  v.GetInt("listeners"),
		Fires:      v.GetInt("fires"),
		JSON:       v.GetBool("json"),
		Verbose:    v.GetBool("verbose"),
	}
	errs := assert.CollectErrors().
		AddIf(conf.Workers < 1, "workers must be at least 1, got %d", conf.Workers).
		AddIf(conf.Listeners < 0, "listeners must not be negative, got %d", conf.Listeners).
		AddIf(conf.Fires < 0, "fires must not be negative, got %d", conf.Fires)
	var err error
	if conf.CancelAt, err = optionalPriority(v.GetString("cancel-at")); err != nil {
		errs.Add(fmt.Errorf("cancel-at: %w", err))
	}
	if conf.FailAt, err = optionalPriority(v.GetString("fail-at")); err != nil {
		errs.Add(fmt.Errorf("fail-at: %w", err))
	}
	if err := errs.Result(); err != nil {
		return config{}, cli.NewUsageError("%w", err)
	}
	return conf, nil
}

func optionalPriority(val string) (*eventbus.Priority, error) {
	if len(strings.TrimSpace(val)) == 0 {
		return nil, nil
	}
	p, err := eventbus.ParsePriority(val)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
