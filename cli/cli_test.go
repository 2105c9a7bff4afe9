package cli

import (
	"bytes"
	"context"
	"errors"
	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCommand_Exec(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter()
	printer.Redirect(&buf)
	cmd := newCommand("test", "tool", "test command", printer)
	assert.NoError(t, cmd.Exec(context.Background(), nil))
	assert.Contains(t, buf.String(), "tool test", "The default command func should print usage")

	executed := false
	cmd.Does(func(context.Context, *flag.FlagSet, *Printer) error {
		executed = true
		return nil
	})
	assert.NoError(t, cmd.Exec(context.Background(), nil))
	assert.True(t, executed)
}

func TestCommand_Exec_Help(t *testing.T) {
	var buf bytes.Buffer
	set := testSet(&buf)
	executed := false
	set.AddCommand("bind", "Binds things").Usage("<event> <handler>").Does(func(context.Context, *flag.FlagSet, *Printer) error {
		executed = true
		return nil
	})
	assert.NoError(t, set.Exec(context.Background(), []string{"bind", "--help"}))
	assert.False(t, executed)
	assert.Contains(t, buf.String(), "Binds things")
	assert.Contains(t, buf.String(), "tool bind <event> <handler>")
	assert.Contains(t, buf.String(), "--help")
}

func TestCommand_Exec_UsageErrors(t *testing.T) {
	var buf bytes.Buffer
	set := testSet(&buf)
	cmd := set.AddCommand("bind", "Binds things").Usage("<event> <handler>")
	cmd.Does(func(_ context.Context, flags *flag.FlagSet, _ *Printer) error {
		var name, handler string
		return MapArgs(flags.Args(), 2, &name, &handler)
	})
	ctx := context.Background()

	err := set.Exec(ctx, []string{"bind", "only-event"})
	assert.ErrorIs(t, err, &UsageError{})
	assert.ErrorIs(t, err, ErrArgMap)
	assert.Contains(t, buf.String(), "USAGE:", "Usage should be printed for usage errors")

	assert.ErrorIs(t, set.Exec(ctx, []string{"bind", "a", "b", "c"}), &UsageError{})
	assert.ErrorIs(t, set.Exec(ctx, []string{"bind", "--bogus"}), &UsageError{})
	assert.NoError(t, set.Exec(ctx, []string{"bind", "a", "b"}))
}

func TestCommandSet_Exec(t *testing.T) {
	ctx := context.Background()
	set := testSet(&bytes.Buffer{})
	assert.ErrorIs(t, set.Exec(ctx, nil), ErrUnknownCommand)

	executed := 0
	set.AddCommand("List", "Lists things", "ls", " ").Does(func(context.Context, *flag.FlagSet, *Printer) error {
		executed++
		return nil
	})
	assert.NoError(t, set.Exec(ctx, []string{"list"}))
	assert.NoError(t, set.Exec(ctx, []string{"LS"}))
	assert.Equal(t, 2, executed)
	assert.ErrorIs(t, set.Exec(ctx, []string{"Does", "not", "exist"}), ErrUnknownCommand)
}

func TestCommandSet_PreExec(t *testing.T) {
	ctx := context.Background()
	set := testSet(&bytes.Buffer{})
	var order []string
	set.PreExec(func(context.Context) error {
		order = append(order, "pre")
		return nil
	})
	set.AddCommand("run", "Runs").Does(func(context.Context, *flag.FlagSet, *Printer) error {
		order = append(order, "run")
		return nil
	})
	require.NoError(t, set.Exec(ctx, []string{"run"}))
	assert.Equal(t, []string{"pre", "run"}, order)

	order = nil
	require.NoError(t, set.Exec(ctx, []string{"run", "-h"}))
	assert.Empty(t, order, "Help output should not run pre-exec functions")

	errSetup := errors.New("setup failed")
	set.PreExec(func(context.Context) error {
		return errSetup
	})
	assert.ErrorIs(t, set.Exec(ctx, []string{"run"}), errSetup)
	assert.Equal(t, []string{"pre"}, order, "The command should not run after a pre-exec failure")

	assert.Panics(t, func() {
		set.PreExec(nil)
	})
}

func TestCommandSet_CommandUsages(t *testing.T) {
	set := testSet(&bytes.Buffer{})
	set.AddCommand("unbind", "Removes a binding", "rm")
	set.AddCommand("bind", "Adds a binding")
	assert.Equal(t, "  bind      \tAdds a binding\n  unbind, rm\tRemoves a binding\n", set.CommandUsages())
}

func TestMapArgs(t *testing.T) {
	var a, b string
	assert.NoError(t, MapArgs([]string{"x"}, 1, &a, &b))
	assert.Equal(t, "x", a)
	assert.Empty(t, b)
	assert.ErrorIs(t, MapArgs(nil, 1, &a), ErrArgMap)
	assert.ErrorIs(t, MapArgs([]string{"x", "y"}, 1, &a), ErrArgMap)
	assert.ErrorIs(t, MapArgs([]string{"x"}, 1, nil), ErrArgMap)
}

func TestMustGet(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Bool("continue", true, "")
	assert.True(t, MustGet(fs.GetBool("continue")))
	assert.Panics(t, func() {
		MustGet(fs.GetString("continue"))
	})
}

func testSet(out *bytes.Buffer) *CommandSet {
	set := NewCommandSet("tool")
	set.Printer().Redirect(out)
	return set
}
