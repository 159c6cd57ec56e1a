package cmdtree

import (
	"github.com/dzonerzy/cmdtree/internal/fuzzy"
	cmdio "github.com/dzonerzy/cmdtree/io"
	"github.com/dzonerzy/cmdtree/middleware"
)

// Tree is the root of a declaration: a fixed-capacity set of commands and
// the window over the process arguments. Dispatch selects at most one
// command per run.
type Tree struct {
	commands    []*Command
	window      Window
	description string

	reporter   Reporter
	io         *cmdio.IOManager
	ioReporter Reporter // diagnostics on io.Err when no reporter is set
	middleware []middleware.Middleware
	exitCodes  *ExitCodeManager
}

// NewTree creates a tree able to hold commandCapacity commands
func NewTree(commandCapacity int) (*Tree, error) {
	if commandCapacity <= 0 {
		return nil, invalidArgument("tree command capacity must be positive, got %d", commandCapacity)
	}
	return &Tree{
		commands: make([]*Command, 0, commandCapacity),
	}, nil
}

// SetDescription sets the text shown at the top of the global help
func (t *Tree) SetDescription(text string) *Tree {
	t.description = text
	return t
}

// Description returns the tree description
func (t *Tree) Description() string { return t.description }

// WithReporter routes parse diagnostics of every dispatched command to r
func (t *Tree) WithReporter(r Reporter) *Tree {
	t.reporter = r
	return t
}

// WithIO sets the streams used by help output and Run. Without a
// reporter, diagnostics are written to m's Err stream as well.
func (t *Tree) WithIO(m *cmdio.IOManager) *Tree {
	t.io = m
	t.ioReporter = nil
	if m != nil {
		t.ioReporter = cmdio.NewLogger(m).WithFormat(cmdio.LogFormatTagged)
	}
	return t
}

// IO returns the tree's IO manager, creating a default one on first use
func (t *Tree) IO() *cmdio.IOManager {
	if t.io == nil {
		t.io = cmdio.New()
	}
	return t.io
}

// Use adds middleware wrapped around every command action
func (t *Tree) Use(mw ...middleware.Middleware) *Tree {
	t.middleware = append(t.middleware, mw...)
	return t
}

// Capacity returns the fixed command capacity
func (t *Tree) Capacity() int { return cap(t.commands) }

// Commands returns the stored commands in declaration order
func (t *Tree) Commands() []*Command { return t.commands }

// AddCommand stores a full copy of c. The caller still owns c and must
// Clean it.
func (t *Tree) AddCommand(c *Command) error {
	if t == nil || c == nil {
		return invalidArgument("tree and command must not be nil")
	}
	if !c.named {
		return invalidArgument("command must be named before it is added")
	}
	if len(t.commands) >= cap(t.commands) {
		return NewParseError(ErrorTypeCapacityExceeded, ErrCapacityExceeded,
			"tree cannot hold more than %d commands", cap(t.commands)).withCommand(c.Name())
	}
	stored, err := c.clone()
	if err != nil {
		return err
	}
	t.commands = append(t.commands, stored)
	return nil
}

// Command returns the first command whose notation matches flag
func (t *Tree) Command(flag string) *Command {
	for _, c := range t.commands {
		if c.IsOfFlag(flag) {
			return c
		}
	}
	return nil
}

// HasCommand reports whether a command matches flag
func (t *Tree) HasCommand(flag string) bool { return t.Command(flag) != nil }

// Selected returns the command picked by the last Dispatch, nil if none
func (t *Tree) Selected() *Command {
	for _, c := range t.commands {
		if c.selected {
			return c
		}
	}
	return nil
}

// Window returns the view bound by the last Dispatch
func (t *Tree) Window() *Window { return &t.window }

// Dispatch selects the command named by argv[1] and binds it to argv[2:].
// argv[0] is the program name. The first declared match wins.
func (t *Tree) Dispatch(argv []string) error {
	for _, c := range t.commands {
		c.selected = false
	}
	if len(argv) < 2 {
		return NewParseError(ErrorTypeInvalidArgument, ErrNoCommand, "no command given")
	}

	program := argv[0]
	if program == "" {
		program = "-"
	}
	if err := t.window.bind(program, argv[1:]); err != nil {
		return err
	}

	first := argv[1]
	if !IsValidFlag(first) {
		return NewParseError(ErrorTypeInvalidFlag, ErrInvalidFlag,
			"`%s` is not a command, commands should begin with `%c`", first, FlagPrefix).withFlag(first)
	}

	for _, c := range t.commands {
		if !c.IsOfFlag(first) {
			continue
		}
		c.selected = true
		c.reporter = t.commandReporter()
		return c.Bind(first, argv[2:])
	}

	pe := NewParseError(ErrorTypeUnknownCommand, ErrUnknownCommand, "unknown command `%s`", first).withFlag(first)
	if s := fuzzy.Suggest(first, t.commandNames(), suggestDistance); s != "" {
		pe = pe.withSuggestion(s)
	}
	return pe
}

// commandReporter is the reporter handed to the selected command, nil for
// the process-wide default
func (t *Tree) commandReporter() Reporter {
	if t.reporter != nil {
		return t.reporter
	}
	return t.ioReporter
}

func (t *Tree) commandNames() []string {
	var names []string
	for _, c := range t.commands {
		names = append(names, c.notation.Names()...)
	}
	return names
}

// Clean releases every command and the tree window. The tree can be
// filled again afterwards.
func (t *Tree) Clean() {
	if t == nil {
		return
	}
	for _, c := range t.commands {
		c.Clean()
	}
	t.commands = t.commands[:0]
	t.window.Clean()
}
