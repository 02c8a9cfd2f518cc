// Trolley fires synthetic events through an event bus, and reports how they were delivered to listeners.
package main

import (
	"context"
	"errors"
	"github.com/fatih/color"
	"github.com/saylorsolutions/trolley/cli"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
	"io"
	"log/slog"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	color.NoColor = color.NoColor || !term.IsTerminal(int(os.Stdout.Fd()))
	set := newCommandSet(os.Stdout, os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
	if err := set.Exec(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, &cli.UsageError{}) {
			os.Exit(2)
		}
		cli.NewPrinter().Println("Error:", err)
		os.Exit(1)
	}
}

// newCommandSet sets up the CLI, writing reports and usage to stdout and logs to stderr.
// If stderr is a terminal, then logs are written as text, otherwise as JSON.
func newCommandSet(stdout, stderr io.Writer, stderrTTY bool) *cli.CommandSet {
	set := cli.NewCommandSet("trolley").
		Describe("Fires synthetic events through an event bus and reports how they were delivered.")
	set.Printer().Redirect(stdout)

	cmd := set.AddCommand("run", "Fires synthetic events and prints a delivery report", "r")
	defineFlags(cmd.Flags())
	cmd.Usage("%s", runUsage())
	cmd.Does(func(ctx context.Context, flags *flag.FlagSet, out *cli.Printer) error {
		conf, err := loadConfig(flags)
		if err != nil {
			return err
		}
		logger := newLogger(stderr, stderrTTY, conf.Verbose)
		s, err := newScenario(conf, logger)
		if err != nil {
			return err
		}
		logger.Debug("Starting scenario",
			"listeners", conf.Listeners,
			"fires", conf.Fires,
			"parallel", conf.Parallel,
		)
		r := s.run(ctx)
		if conf.JSON {
			return r.writeJSON(out.Writer())
		}
		r.writeText(out.Writer())
		return nil
	})
	return set
}

func newLogger(out io.Writer, tty, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if tty {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}
