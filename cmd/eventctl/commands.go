package main

import (
	"context"
	"errors"
	"fmt"
	flag "github.com/spf13/pflag"
	"github.com/saylorsolutions/eventx/cli"
	"github.com/saylorsolutions/eventx/event"
	"github.com/saylorsolutions/eventx/kv"
	"strconv"
)

func commands(a *app) *cli.CommandSet {
	set := cli.NewCommandSet("eventctl")
	set.AddCommand("bind", "Persists a binding from an event to a named handler, e.g. 'echo' or 'Audit::record'").
		Usage("<event> <handler>").
		Does(a.runBind)
	set.AddCommand("unbind", "Removes a persisted binding", "rm").
		Usage("<event> <handler>").
		Does(a.runUnbind)
	set.AddCommand("list", "Lists the persisted bindings of an event", "ls").
		Usage("<event>").
		Does(a.runList)
	trigger := set.AddCommand("trigger", "Triggers an event with its persisted bindings").
		Usage("<event> [data]").
		Does(a.runTrigger)
	trigger.Flags().Bool("continue", false, "Keep dispatching after a handler fails")
	set.AddCommand("flush", "Deletes every persisted binding of an event").
		Usage("<event>").
		Does(a.runFlush)
	set.AddCommand("stats", "Shows how many times Audit::record has seen an event").
		Usage("<event>").
		Does(a.runStats)
	return set
}

func (a *app) runBind(ctx context.Context, flags *flag.FlagSet, _ *cli.Printer) error {
	var name, handler string
	if err := cli.MapArgs(flags.Args(), 2, &name, &handler); err != nil {
		return err
	}
	binding := event.Deserialize(handler)
	if _, ok := a.registry().Functions().Lookup(handler); !ok {
		a.log.Warn("No built-in handler has this name, triggering will fail until one does", "handler", handler)
	}
	if err := a.registry().BindGlobal(ctx, name, binding, true); err != nil {
		return err
	}
	serialized, _ := event.Serialize(binding)
	_, _ = fmt.Fprintf(a.out, "Bound %s to %s\n", binding, name)
	a.log.Debug("Stored binding", "key", event.StorageKey(name, serialized))
	return nil
}

func (a *app) runUnbind(ctx context.Context, flags *flag.FlagSet, _ *cli.Printer) error {
	var name, handler string
	if err := cli.MapArgs(flags.Args(), 2, &name, &handler); err != nil {
		return err
	}
	if err := event.ValidateEventName(name); err != nil {
		return err
	}
	binding := event.Deserialize(handler)
	if err := a.registry().UnbindGlobal(ctx, name, binding, true); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Unbound %s from %s\n", binding, name)
	return nil
}

func (a *app) runList(ctx context.Context, flags *flag.FlagSet, _ *cli.Printer) error {
	var name string
	if err := cli.MapArgs(flags.Args(), 1, &name); err != nil {
		return err
	}
	bindings, err := a.registry().Persisted(ctx, name)
	if err != nil {
		return err
	}
	if len(bindings) == 0 {
		_, _ = fmt.Fprintf(a.out, "No bindings for %s\n", name)
		return nil
	}
	for _, b := range bindings {
		serialized, _ := event.Serialize(b)
		_, _ = fmt.Fprintf(a.out, "%s\t%s\n", b, event.StorageKey(name, serialized))
	}
	return nil
}

func (a *app) runTrigger(ctx context.Context, flags *flag.FlagSet, _ *cli.Printer) error {
	var name, payload string
	if err := cli.MapArgs(flags.Args(), 1, &name, &payload); err != nil {
		return err
	}
	reg := a.registry()
	if cli.MustGet(flags.GetBool("continue")) {
		reg = event.NewRegistry(a.store,
			event.WithLogger(a.log),
			event.WithFunctions(reg.Functions()),
			event.WithErrorPolicy(event.ContinueOnError),
		)
	}
	var data any
	if flags.NArg() > 1 {
		data = payload
	}
	evt, err := reg.Trigger(ctx, name, data)
	if evt != nil {
		_, _ = fmt.Fprintf(a.out, "propagation stopped: %t\ndefault prevented: %t\n", evt.IsPropagationStopped(), evt.IsDefaultPrevented())
	}
	return err
}

func (a *app) runFlush(ctx context.Context, flags *flag.FlagSet, _ *cli.Printer) error {
	var name string
	if err := cli.MapArgs(flags.Args(), 1, &name); err != nil {
		return err
	}
	if err := event.ValidateEventName(name); err != nil {
		return err
	}
	n, err := a.store.MultiDelete(ctx, event.StoragePattern(name))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Removed %d bindings from %s\n", n, name)
	return nil
}

func (a *app) runStats(ctx context.Context, flags *flag.FlagSet, _ *cli.Printer) error {
	var name string
	if err := cli.MapArgs(flags.Args(), 1, &name); err != nil {
		return err
	}
	raw, err := a.store.Get(ctx, auditCountKey(name))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			return err
		}
		raw = "0"
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", kv.ErrNotInteger, raw)
	}
	_, _ = fmt.Fprintf(a.out, "%s: %d\n", name, count)
	return nil
}
