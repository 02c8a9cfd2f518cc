/*
Package cli structures a command line tool as a set of commands, each with its own [pflag] flags and usage information.

  - Commands are invoked as CLI_NAME COMMAND [FLAGS...] [ARGS...], and command keys are case-insensitive.
  - The '-h' and '--help' flags are set up for every command, and print usage built from [Command.Usage] and the command's flags.
  - Commands receive a [context.Context] from [CommandSet.Exec], so long-running work can be interrupted.
  - Returning a [UsageError] from a command prints the error followed by the command's usage.
  - Output goes through a [Printer], which writes to STDERR unless redirected.

[pflag]: https://github.com/spf13/pflag
*/
package cli
