package cli

import (
	"context"
	"errors"
	"fmt"
	flag "github.com/spf13/pflag"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	HelpPatterns      = []string{"--help", "-h"} // HelpPatterns is a slice of arguments that print usage information for a [CommandSet].

	keyCleansePattern = regexp.MustCompile(`\s`)
)

// CommandFunc is the work done by a [Command].
// Flags have already been parsed when it's called, and remaining arguments are available with [flag.FlagSet.Args].
type CommandFunc = func(ctx context.Context, flags *flag.FlagSet, printer *Printer) error

// Command is an executable function in a CLI, linked to a [CommandSet].
type Command struct {
	flags      *flag.FlagSet
	exec       CommandFunc
	key        string
	path       string
	shortUsage string
	usage      string
	printer    *Printer
	aliases    []string
}

func cleanseKey(key string) string {
	return keyCleansePattern.ReplaceAllString(strings.ToLower(key), "")
}

func newCommand(key, parent, shortUsage string, printer *Printer) *Command {
	key = cleanseKey(key)
	fs := flag.NewFlagSet(key, flag.ContinueOnError)
	fs.BoolP("help", "h", false, "Prints this usage information")
	fs.SetInterspersed(false)
	path := key
	if len(parent) > 0 {
		path = parent + " " + key
	}
	return &Command{flags: fs, key: key, path: path, shortUsage: shortUsage, printer: printer}
}

// Does specifies the [CommandFunc] that should be executed by this [Command].
// A Command without a CommandFunc prints its usage.
func (c *Command) Does(commandFunc CommandFunc) *Command {
	if commandFunc == nil {
		return c
	}
	c.exec = commandFunc
	return c
}

// CommandPath returns the full invocation of this [Command], starting with the CLI name.
func (c *Command) CommandPath() string {
	return c.path
}

// Flags returns the [flag.FlagSet] for this [Command].
func (c *Command) Flags() *flag.FlagSet {
	return c.flags
}

// Printer returns the [Printer] shared with the [CommandSet].
func (c *Command) Printer() *Printer {
	return c.printer
}

// Usage sets a longer description of how to invoke the [Command], shown after the command path.
// The short description and flag usages are added around it.
func (c *Command) Usage(format string, args ...any) *Command {
	c.usage = fmt.Sprintf(format, args...)
	return c
}

// UsageText renders the full usage information for the [Command].
func (c *Command) UsageText() string {
	var buf strings.Builder
	buf.WriteString(c.shortUsage)
	buf.WriteString("\n\nUSAGE:\n")
	buf.WriteString(c.path)
	if len(c.usage) > 0 {
		buf.WriteString(" " + c.usage)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\nFLAGS\n")
	buf.WriteString(c.flags.FlagUsages())
	return buf.String()
}

// Exec parses args as flags and runs the [Command].
// If parsing fails, or the [CommandFunc] returns a [UsageError], then the error and usage are printed, and the error is returned.
func (c *Command) Exec(ctx context.Context, args []string) error {
	if err := c.flags.Parse(args); err != nil {
		return c.usageFailure(NewUsageError("%w", err))
	}
	if MustGet(c.flags.GetBool("help")) || c.exec == nil {
		c.printer.Print(c.UsageText())
		return nil
	}
	if err := c.exec(ctx, c.flags, c.printer); err != nil {
		if errors.Is(err, &UsageError{}) {
			return c.usageFailure(err)
		}
		return err
	}
	return nil
}

func (c *Command) usageFailure(err error) error {
	c.printer.Println(err)
	c.printer.Println()
	c.printer.Print(c.UsageText())
	return err
}

// CommandSet is a group of [Command].
type CommandSet struct {
	commands    map[string]*Command
	aliases     map[string]*Command
	printer     *Printer
	parent      string
	description string
}

// NewCommandSet is used to set up a top level [CommandSet] as the root of a CLI's command structure.
// The parent should be the name used to invoke the CLI, and is used in usage information.
func NewCommandSet(parent string) *CommandSet {
	return &CommandSet{printer: NewPrinter(), parent: parent}
}

// Describe sets a description of the CLI, which is printed before the list of commands.
func (s *CommandSet) Describe(format string, args ...any) *CommandSet {
	s.description = fmt.Sprintf(format, args...)
	return s
}

// AddCommand adds a [Command] to this [CommandSet].
// The key parameter will be cleansed to remove spaces, and normalize to lower-case.
// Aliases may be added as a way to support shorter variants of the same [Command].
func (s *CommandSet) AddCommand(key, shortUsage string, aliases ...string) *Command {
	cmd := newCommand(key, s.parent, shortUsage, s.Printer())
	if s.commands == nil {
		s.commands = map[string]*Command{}
	}
	s.commands[cmd.key] = cmd
	for _, alias := range aliases {
		alias = cleanseKey(alias)
		if len(alias) == 0 {
			continue
		}
		if s.aliases == nil {
			s.aliases = map[string]*Command{}
		}
		s.aliases[alias] = cmd
		cmd.aliases = append(cmd.aliases, alias)
	}
	slices.Sort(cmd.aliases)
	return cmd
}

// Printer returns the [Printer] shared by every [Command] in this [CommandSet].
func (s *CommandSet) Printer() *Printer {
	if s.printer == nil {
		s.printer = NewPrinter()
	}
	return s.printer
}

// Exec runs the [Command] named by the first argument, passing it the rest.
// Without arguments, or with one of [HelpPatterns], usage information for the set is printed.
func (s *CommandSet) Exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		s.printer.Print(s.UsageText())
		return NewUsageError("%w: no command given", ErrUnknownCommand)
	}
	if slices.Contains(HelpPatterns, args[0]) {
		s.printer.Print(s.UsageText())
		return nil
	}
	key := strings.ToLower(args[0])
	cmd, ok := s.commands[key]
	if !ok {
		if cmd, ok = s.aliases[key]; !ok {
			err := NewUsageError("%w: %s", ErrUnknownCommand, args[0])
			s.printer.Println(err)
			s.printer.Println()
			s.printer.Print(s.UsageText())
			return err
		}
	}
	return cmd.Exec(ctx, args[1:])
}

// UsageText renders the description of the [CommandSet] and a summary of its commands.
func (s *CommandSet) UsageText() string {
	var buf strings.Builder
	if len(s.description) > 0 {
		buf.WriteString(strings.TrimSuffix(s.description, "\n"))
		buf.WriteString("\n\n")
	}
	buf.WriteString("USAGE:\n")
	buf.WriteString(s.parent + " COMMAND [FLAGS...]\n\nCOMMANDS:\n")
	buf.WriteString(s.CommandUsages())
	return buf.String()
}

// CommandUsages returns the usage information for commands in this [CommandSet], sorted by key.
func (s *CommandSet) CommandUsages() string {
	var (
		buf    strings.Builder
		keys   = make([]string, 0, len(s.commands))
		names  = map[string]string{}
		maxLen int
	)
	for key, cmd := range s.commands {
		keys = append(keys, key)
		names[key] = strings.Join(append([]string{key}, cmd.aliases...), ", ")
		maxLen = max(maxLen, len(names[key]))
	}
	slices.Sort(keys)
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for _, key := range keys {
		buf.WriteString(fmt.Sprintf(fmtStr, names[key], s.commands[key].shortUsage))
	}
	return buf.String()
}
