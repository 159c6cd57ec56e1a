package cmdtree

import (
	"os"

	"github.com/dzonerzy/cmdtree/middleware"
)

// Run dispatches argv, parses the selected command, answers the builtin
// help and finally runs the command action wrapped in the tree's and the
// command's middleware. Dispatch and missing-required failures are reported
// and returned. A command without an action prints its own help.
func (t *Tree) Run(argv []string) error {
	if err := t.Dispatch(argv); err != nil {
		t.report().Error("%s", err.Error())
		return err
	}
	cmd := t.Selected()
	if err := cmd.Parse(); err != nil {
		return err
	}

	if shown, err := t.HandleHelp(cmd); shown {
		return err
	}

	if err := cmd.CheckRequired(); err != nil {
		t.report().Error("%s", err.Error())
		return err
	}

	if cmd.action == nil {
		return NewHelpPrinter(t.IO()).PrintCommand(cmd)
	}
	return t.wrapAction(cmd)(cmd)
}

// wrapAction applies tree-level then command-level middleware around the action
func (t *Tree) wrapAction(cmd *Command) ActionFunc {
	all := make([]middleware.Middleware, 0, len(t.middleware)+len(cmd.middleware))
	all = append(all, t.middleware...)
	all = append(all, cmd.middleware...)
	if len(all) == 0 {
		return cmd.action
	}

	action := cmd.action
	wrapped := middleware.Chain(all...).Apply(func(ctx middleware.Context) error {
		c, ok := ctx.(*Command)
		if !ok {
			return NewParseError(ErrorTypeInternal, ErrInvalidArgument, "middleware replaced the command context")
		}
		return action(c)
	})
	return func(c *Command) error { return wrapped(c) }
}

func (t *Tree) report() Reporter {
	if r := t.commandReporter(); r != nil {
		return r
	}
	return DefaultReporter()
}

// RunAndGetExitCode runs argv, releases the tree and maps the result
// through ExitCodes
func (t *Tree) RunAndGetExitCode(argv []string) int {
	defer t.Clean()
	return t.ExitCodes().Resolve(t.Run(argv))
}

// RunAndExit runs os.Args and terminates the process with the mapped code.
// The tree is released before exiting.
func (t *Tree) RunAndExit() {
	os.Exit(t.RunAndGetExitCode(os.Args))
}
