package main

import (
	"fmt"
	"github.com/saylorsolutions/eventx/event"
)

const auditNamespace = "Eventx_Audit"

func auditCountKey(name string) string {
	return auditNamespace + ",count," + name
}

func auditLogKey(name string) string {
	return auditNamespace + ",log," + name
}

// builtins are the handlers that persisted bindings can refer to from the command line.
func builtins(a *app) *event.Functions {
	return event.NewFunctions().
		Register("log", func(evt *event.Event) error {
			a.log.Info("Event triggered", "event", evt.Type(), "data", evt.Data)
			return nil
		}).
		Register("echo", func(evt *event.Event) error {
			_, _ = fmt.Fprintf(a.out, "%s: %v\n", evt.Type(), evt.Data)
			return nil
		}).
		Register("stop", func(evt *event.Event) error {
			evt.StopPropagation()
			return nil
		}).
		Register("prevent", func(evt *event.Event) error {
			evt.PreventDefault()
			return nil
		}).
		Register("halt", func(*event.Event) error {
			return event.ErrHalt
		}).
		RegisterStatic("Audit", "record", func(evt *event.Event) error {
			ctx := evt.Context()
			n, err := a.store.Increment(ctx, auditCountKey(evt.Type()), 1)
			if err != nil {
				return err
			}
			return a.store.Append(ctx, auditLogKey(evt.Type()), fmt.Sprintf("%d:%v\n", n, evt.Data))
		})
}
