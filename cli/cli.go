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

	keyCleansePattern = regexp.MustCompile(`\s`)
)

// CommandFunc is a function that may be executed within a [Command].
type CommandFunc = func(ctx context.Context, flags *flag.FlagSet, printer *Printer) error

// PreExec is a function that runs after a [Command]'s flags are parsed, and right before it executes.
type PreExec func(ctx context.Context) error

// Command is an executable function in a CLI.
// It's created with [CommandSet.AddCommand].
type Command struct {
	flags      *flag.FlagSet
	exec       CommandFunc
	key        string
	parent     string
	shortUsage string
	printer    *Printer
	aliases    []string
	preExec    func(ctx context.Context) error
}

func cleanseKey(key string) string {
	return keyCleansePattern.ReplaceAllString(strings.ToLower(key), "")
}

func newCommand(key, parent, shortUsage string, printer *Printer) *Command {
	key = cleanseKey(key)
	fs := flag.NewFlagSet(key, flag.ContinueOnError)
	fs.BoolP("help", "h", false, "Prints this usage information")
	fs.SetInterspersed(false)
	fs.SetOutput(printer)
	cmd := &Command{flags: fs, key: key, parent: parent, shortUsage: shortUsage, printer: printer}
	cmd.Usage("").Does(func(_ context.Context, flags *flag.FlagSet, _ *Printer) error {
		flags.Usage()
		return nil
	})
	return cmd
}

// Does specifies the [CommandFunc] that should be executed by this [Command].
func (c *Command) Does(commandFunc CommandFunc) *Command {
	if commandFunc == nil {
		return c
	}
	c.exec = commandFunc
	return c
}

// CommandPath returns the reference chain for this [Command].
func (c *Command) CommandPath() string {
	if len(c.parent) == 0 {
		return c.key
	}
	return c.parent + " " + c.key
}

// Flags returns the [flag.FlagSet] for this [Command].
func (c *Command) Flags() *flag.FlagSet {
	return c.flags
}

// Usage specifies the arguments of the [Command], which are output after the command path when a help flag is passed.
//
// The short description and flag usages will be included with this text.
func (c *Command) Usage(format string, args ...any) *Command {
	text := strings.TrimSpace(c.CommandPath() + " " + fmt.Sprintf(format, args...))
	c.flags.Usage = func() {
		c.printer.Printf("%s\n\nUSAGE:\n  %s\n\nFLAGS\n%s", c.shortUsage, text, c.flags.FlagUsages())
	}
	return c
}

// Exec parses flags from args, and executes the command with the remaining arguments.
func (c *Command) Exec(ctx context.Context, args []string) error {
	if err := c.flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		c.flags.Usage()
		return &UsageError{wrapped: err}
	}
	if val, _ := c.flags.GetBool("help"); val {
		c.flags.Usage()
		return nil
	}
	if c.preExec != nil {
		if err := c.preExec(ctx); err != nil {
			return err
		}
	}
	err := c.exec(ctx, c.flags, c.printer)
	if errors.Is(err, ErrArgMap) {
		err = &UsageError{wrapped: err}
	}
	if errors.Is(err, &UsageError{}) {
		c.flags.Usage()
	}
	return err
}

// CommandSet is a group of [Command].
type CommandSet struct {
	commands map[string]*Command
	aliases  map[string]*Command
	printer  *Printer
	parent   string
	preExec  []PreExec
}

// NewCommandSet is used to set up a top level [CommandSet] as the root of a CLI's command structure.
//
// Note: the parent(s) passed to this function will be used to populate command usage information.
// So they should only contain the commands used to invoke this [CommandSet].
func NewCommandSet(parent ...string) *CommandSet {
	return &CommandSet{printer: NewPrinter(), parent: strings.Join(parent, " ")}
}

// AddCommand adds a command to this [CommandSet].
// The key parameter will be cleansed to remove spaces, and normalize to lower-case.
// Aliases may be added as a way to support shorter variants of the same [Command].
func (s *CommandSet) AddCommand(key, shortUsage string, aliases ...string) *Command {
	key = cleanseKey(key)
	cmd := newCommand(key, s.parent, shortUsage, s.Printer())
	cmd.preExec = s.runPreExec
	if s.commands == nil {
		s.commands = map[string]*Command{}
	}
	s.commands[key] = cmd
	if len(aliases) > 0 {
		_aliases := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			alias = cleanseKey(alias)
			if len(alias) == 0 {
				continue
			}
			if s.aliases == nil {
				s.aliases = map[string]*Command{}
			}
			s.aliases[alias] = cmd
			_aliases = append(_aliases, alias)
		}
		slices.Sort(_aliases)
		cmd.aliases = _aliases
	}
	return cmd
}

// PreExec registers a function that will be executed right before any [Command] in this set runs.
// If an error is returned from a [PreExec], then the [Command] will not be executed, and the error will be returned from Exec instead.
// Nothing is run for help output or unknown commands.
//
// Passing a nil [PreExec] function will panic.
func (s *CommandSet) PreExec(fn PreExec) {
	if fn == nil {
		panic("nil pre-exec function")
	}
	s.preExec = append(s.preExec, fn)
}

func (s *CommandSet) runPreExec(ctx context.Context) error {
	for _, fn := range s.preExec {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Printer returns the cached [Printer] for this [CommandSet].
func (s *CommandSet) Printer() *Printer {
	if s.printer == nil {
		s.printer = NewPrinter()
	}
	return s.printer
}

// Exec executes this [CommandSet].
// It's expected that the first argument is the key or alias of a command.
func (s *CommandSet) Exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no arguments", ErrUnknownCommand)
	}
	key := strings.ToLower(args[0])
	cmd, ok := s.commands[key]
	if !ok {
		cmd, ok = s.aliases[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
		}
	}
	return cmd.Exec(ctx, args[1:])
}

// CommandUsages returns a string including the usage information for commands in this [CommandSet].
//
// The command keys will be sorted alphabetically before output.
func (s *CommandSet) CommandUsages() string {
	var (
		buf         strings.Builder
		keys        = make([]string, 0, len(s.commands))
		withAliases = make([]string, len(s.commands))
		maxLen      int
	)
	for key := range s.commands {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for i, key := range keys {
		withAliases[i] = strings.Join(append([]string{key}, s.commands[key].aliases...), ", ")
		maxLen = max(maxLen, len(withAliases[i]))
	}
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for i, key := range keys {
		buf.WriteString(fmt.Sprintf(fmtStr, withAliases[i], s.commands[key].shortUsage))
	}
	return buf.String()
}
