/*
Package cli provides the command structure for eventx tools: a [CommandSet] of named [Command] values, each with its own posix style flags.

  - User-visible output from the package goes to STDERR by default. This is configurable with a [Printer].
  - Flags are parsed with [pflag], and are NOT interspersed with arguments.
  - Every command responds to '-h' and '--help' with its usage information.
  - Command aliases are supported as additional, optional parameters to [CommandSet.AddCommand].

# Invocation

	CLI_NAME [GLOBAL FLAGS...] COMMAND [FLAGS...] [ARGS...]

A [CommandFunc] that returns a [UsageError], or an error from [MapArgs], causes the command's usage to be printed before the error is returned.
Use [CommandSet.PreExec] to set up state that only commands need, so that usage output and unknown commands don't pay for it.

[pflag]: https://github.com/spf13/pflag
*/
package cli
