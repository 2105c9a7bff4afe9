package main

import (
	"context"
	"errors"
	"fmt"
	flag "github.com/spf13/pflag"
	"github.com/saylorsolutions/eventx/cli"
	"github.com/saylorsolutions/eventx/config"
	"github.com/saylorsolutions/eventx/event"
	"github.com/saylorsolutions/eventx/kv"
	"github.com/saylorsolutions/eventx/kv/memkv"
	"github.com/saylorsolutions/eventx/kv/sqlitekv"
	"github.com/saylorsolutions/eventx/slogx"
	"golang.org/x/term"
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	errHelp = errors.New("help requested")
)

// app holds everything a command needs, built from configuration right before the command runs.
type app struct {
	out     io.Writer
	log     *slog.Logger
	store   kv.KV
	events  *event.Manager
	closeFn func() error
}

func (a *app) registry() *event.Registry {
	return a.events.Default()
}

func (a *app) close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	conf, err := config.Parse()
	if err != nil {
		return err
	}
	a := &app{out: out}
	cmds := commands(a)
	cmds.Printer().Redirect(errOut)

	global := flag.NewFlagSet("eventctl", flag.ContinueOnError)
	global.SetOutput(errOut)
	global.SetInterspersed(false)
	global.StringVar(&conf.Store, "store", conf.Store, "Binding store to use, either 'sqlite' or 'memory'")
	global.StringVar(&conf.SQLitePath, "db", conf.SQLitePath, "Path to the SQLite database")
	global.StringVar(&conf.KeyPrefix, "prefix", conf.KeyPrefix, "Prefix for every store key")
	global.StringVar(&conf.LogLevel, "log-level", conf.LogLevel, "Minimum log level")
	global.StringVar(&conf.LogFormat, "log-format", conf.LogFormat, "Log format, either 'text' or 'json'. Defaults to text on a terminal")
	global.Usage = func() {
		cmds.Printer().Printf("USAGE:\n  eventctl [flags] <command> [args]\n\nFLAGS\n%s\nCOMMANDS\n%s", global.FlagUsages(), cmds.CommandUsages())
	}
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return cli.NewUsageError("%w", err)
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	cmds.PreExec(func(context.Context) error {
		return a.init(conf, errOut)
	})
	defer func() {
		if err := a.close(); err != nil {
			a.log.Error("Failed to close store", "error", err)
		}
	}()
	if err := cmds.Exec(ctx, global.Args()); err != nil {
		if errors.Is(err, cli.ErrUnknownCommand) {
			global.Usage()
			return cli.NewUsageError("%w", err)
		}
		return err
	}
	return nil
}

func (a *app) init(conf config.Config, errOut io.Writer) error {
	level, err := slogx.ParseLevel(conf.LogLevel)
	if err != nil {
		return err
	}
	format := logFormat(errOut)
	if len(conf.LogFormat) > 0 {
		format, err = slogx.ParseFormat(conf.LogFormat)
		if err != nil {
			return err
		}
	}
	a.log = slogx.New(errOut, level, format)

	var store kv.KV
	switch strings.ToLower(conf.Store) {
	case config.StoreMemory:
		store = memkv.New()
	case config.StoreSQLite:
		sqlStore, err := sqlitekv.Open(conf.SQLitePath)
		if err != nil {
			return err
		}
		store = sqlStore
		a.closeFn = sqlStore.Close
	default:
		return fmt.Errorf("%w: unknown store '%s'", config.ErrInvalidConfig, conf.Store)
	}
	if len(conf.KeyPrefix) > 0 {
		prefixed := kv.WithPrefix(store, conf.KeyPrefix)
		prefixed.Lock()
		store = prefixed
	}
	a.store = store
	a.events = event.NewManager(store,
		event.WithLogger(a.log),
		event.WithFunctions(builtins(a)),
	)
	return nil
}

// logFormat picks human-readable logs for a terminal, and JSON otherwise.
func logFormat(w io.Writer) slogx.Format {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slogx.FormatText
	}
	return slogx.FormatJSON
}
