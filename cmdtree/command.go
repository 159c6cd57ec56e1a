package cmdtree

import (
	"github.com/dzonerzy/cmdtree/internal/fuzzy"
	"github.com/dzonerzy/cmdtree/middleware"
)

// ActionFunc is the handler run for a selected command after parsing
type ActionFunc func(cmd *Command) error

// suggestDistance bounds the edit distance for "did you mean" hints
const suggestDistance = 2

// Command is a named node owning a fixed-capacity set of options.
//
// The option slice never grows past the capacity given to NewCommand.
// Options are stored as copies; each copy co-owns the notation of the
// option it was made from.
type Command struct {
	notation Notation
	named    bool
	options  []*Option
	window   Window
	selected bool

	diagnostics []*ParseError
	reporter    Reporter
	action      ActionFunc
	middleware  []middleware.Middleware
	metadata    map[string]any
}

// NewCommand creates a command able to hold optionCapacity options
func NewCommand(optionCapacity int) (*Command, error) {
	if optionCapacity <= 0 {
		return nil, invalidArgument("command option capacity must be positive, got %d", optionCapacity)
	}
	return &Command{
		options: make([]*Option, 0, optionCapacity),
	}, nil
}

// DeclareCommand is NewCommand followed by SetName
func DeclareCommand(name string, aliases []string, optionCapacity int) (*Command, error) {
	c, err := NewCommand(optionCapacity)
	if err != nil {
		return nil, err
	}
	if err := c.SetName(name, aliases); err != nil {
		return nil, err
	}
	return c, nil
}

// SetName names the command
func (c *Command) SetName(name string, aliases []string) error {
	if c == nil {
		return invalidArgument("command is nil")
	}
	n, err := NewNotation(name, aliases)
	if err != nil {
		return err
	}
	c.notation = *n
	c.named = true
	return nil
}

// SetDescription sets the text shown by help
func (c *Command) SetDescription(text string) error {
	if c == nil || !c.named {
		return invalidArgument("command must be named before it gets a description")
	}
	return c.notation.SetDescription(text)
}

// Name returns the primary name
func (c *Command) Name() string {
	if c == nil {
		return ""
	}
	return c.notation.Name()
}

// Description returns the help description
func (c *Command) Description() string {
	if c == nil {
		return ""
	}
	return c.notation.Description()
}

// Notation returns the command's names
func (c *Command) Notation() *Notation { return &c.notation }

// PassedName returns the token the command was invoked with
func (c *Command) PassedName() string { return c.window.Origin() }

// Capacity returns the fixed option capacity
func (c *Command) Capacity() int { return cap(c.options) }

// OptionCount returns the number of declared options
func (c *Command) OptionCount() int { return len(c.options) }

// Options returns the stored option copies in declaration order
func (c *Command) Options() []*Option { return c.options }

// Selected reports whether dispatch picked this command
func (c *Command) Selected() bool { return c.selected }

// Diagnostics returns the problems reported by the last Parse
func (c *Command) Diagnostics() []*ParseError { return c.diagnostics }

// AddOption stores a copy of o. The caller keeps its own handle and must
// Clean it; the stored copy is released with the command.
func (c *Command) AddOption(o *Option) error {
	if c == nil || o == nil {
		return invalidArgument("command and option must not be nil")
	}
	if o.Notation() == nil {
		return invalidArgument("option must be named before it is added")
	}
	if len(c.options) >= cap(c.options) {
		return NewParseError(ErrorTypeCapacityExceeded, ErrCapacityExceeded,
			"command `%s` cannot hold more than %d options", c.Name(), cap(c.options)).
			withCommand(c.Name()).withFlag(o.Name())
	}
	stored, err := o.clone()
	if err != nil {
		return err
	}
	c.options = append(c.options, stored)
	return nil
}

// Bind points the command at the tokens that follow its name and forgets
// the results of any previous parse.
func (c *Command) Bind(origin string, tail []string) error {
	if err := c.window.bind(origin, tail); err != nil {
		return err
	}
	for _, o := range c.options {
		o.Reset()
	}
	c.diagnostics = c.diagnostics[:0]
	return nil
}

// Parse walks the bound tokens once, left to right. Flags are matched to
// options; everything else, unknown flags included, becomes a positional
// parameter. Problems are reported and collected in Diagnostics, but never
// fail the parse.
func (c *Command) Parse() error {
	if c == nil {
		return invalidArgument("command is nil")
	}
	c.diagnostics = c.diagnostics[:0]

	tokens := c.window.Tokens()
	c.window.PrepareParameters()
	if len(tokens) == 0 {
		return nil
	}

	if len(c.options) == 0 {
		for _, tok := range tokens {
			c.window.AddParameter(tok)
		}
		return nil
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !IsValidFlag(tok) {
			c.window.AddParameter(tok)
			continue
		}

		opt := c.FindOption(tok)
		if opt == nil {
			c.warn(c.unknownFlag(tok))
			c.window.AddParameter(tok)
			continue
		}

		if err := opt.Bind(tok, tokens[i+1:]); err != nil {
			c.fail(err)
			continue
		}
		consumed, err := opt.Parse()
		if err != nil {
			c.fail(err)
			continue
		}
		i += consumed
	}
	return nil
}

func (c *Command) unknownFlag(tok string) *ParseError {
	pe := NewParseError(ErrorTypeUnknownFlag, ErrUnknownFlag,
		"unknown option `%s` for command `%s`", tok, c.Name()).withFlag(tok).withCommand(c.Name())

	var names []string
	for _, o := range c.options {
		names = append(names, o.Notation().Names()...)
	}
	if s := fuzzy.Suggest(tok, names, suggestDistance); s != "" {
		pe = pe.withSuggestion(s)
	}
	return pe
}

func (c *Command) warn(pe *ParseError) {
	c.diagnostics = append(c.diagnostics, pe)
	c.report().Warning("%s", pe.Error())
}

func (c *Command) fail(err error) {
	pe, ok := AsParseError(err)
	if !ok {
		pe = NewParseError(ErrorTypeInternal, err, "%s", err.Error())
	}
	if pe.Command == "" {
		pe = pe.withCommand(c.Name())
	}
	c.diagnostics = append(c.diagnostics, pe)
	c.report().Error("%s", pe.Error())
}

func (c *Command) report() Reporter {
	if c.reporter != nil {
		return c.reporter
	}
	return DefaultReporter()
}

// FindOption returns the first option whose notation matches flag
func (c *Command) FindOption(flag string) *Option {
	if c == nil {
		return nil
	}
	for _, o := range c.options {
		if o.Notation().HasValue(flag) {
			return o
		}
	}
	return nil
}

// IsOptionPresent reports whether the option matching flag was observed
func (c *Command) IsOptionPresent(flag string) bool {
	return c.FindOption(flag).IsSet()
}

// MissingRequiredOptions returns every required option that was not observed
func (c *Command) MissingRequiredOptions() []*Option {
	var missing []*Option
	for _, o := range c.options {
		if o.Required() && !o.IsSet() {
			missing = append(missing, o)
		}
	}
	return missing
}

// HasMissingRequiredOptions reports whether any required option is unset
func (c *Command) HasMissingRequiredOptions() bool {
	for _, o := range c.options {
		if o.Required() && !o.IsSet() {
			return true
		}
	}
	return false
}

// CheckRequired returns a missing_required error naming every unset
// required option, or nil.
func (c *Command) CheckRequired() error {
	missing := c.MissingRequiredOptions()
	if len(missing) == 0 {
		return nil
	}
	return missingRequired(c, missing)
}

// IsOfFlag reports whether name is the command's name or one of its aliases
func (c *Command) IsOfFlag(name string) bool {
	if c == nil || !c.named {
		return false
	}
	return c.notation.HasValue(name)
}

// Parameters returns the positional tokens of the last Parse.
// The slice is only valid until the command is cleaned or parsed again.
func (c *Command) Parameters() []string { return c.window.Parameters() }

// ReadOption returns the value of the option matching flag, nil if undeclared
func (c *Command) ReadOption(flag string) Value {
	return c.FindOption(flag).ReadValue()
}

// ReadBoolOption returns the bool value of the option matching flag
func (c *Command) ReadBoolOption(flag string) bool { return c.FindOption(flag).ReadBool() }

// ReadIntOption returns the int value of the option matching flag
func (c *Command) ReadIntOption(flag string) int { return c.FindOption(flag).ReadInt() }

// ReadFloatOption returns the float value of the option matching flag
func (c *Command) ReadFloatOption(flag string) float64 { return c.FindOption(flag).ReadFloat() }

// ReadStringOption returns the string value of the option matching flag
func (c *Command) ReadStringOption(flag string) string { return c.FindOption(flag).ReadString() }

// ReadMultiStringOption returns the values of the option matching flag
func (c *Command) ReadMultiStringOption(flag string) []string {
	return c.FindOption(flag).ReadMultiString()
}

// Set stores a value for middleware and actions to share
func (c *Command) Set(key string, value any) {
	if c.metadata == nil {
		c.metadata = make(map[string]any)
	}
	c.metadata[key] = value
}

// Get returns a value stored with Set, nil when absent
func (c *Command) Get(key string) any { return c.metadata[key] }

// Action sets the handler run by Tree.Run
func (c *Command) Action(fn ActionFunc) *Command {
	c.action = fn
	return c
}

// Use adds middleware around the command's action
func (c *Command) Use(mw ...middleware.Middleware) *Command {
	c.middleware = append(c.middleware, mw...)
	return c
}

// Clean releases every stored option, then the parameter buffer
func (c *Command) Clean() {
	if c == nil {
		return
	}
	for _, o := range c.options {
		o.Clean()
	}
	c.options = c.options[:0]
	c.window.Clean()
	c.selected = false
	c.diagnostics = nil
	c.metadata = nil
}

// clone deep-copies the command. Option copies co-own their notations; the
// window, selection and diagnostics start empty.
func (c *Command) clone() (*Command, error) {
	dup := &Command{
		notation:   c.notation.clone(),
		named:      c.named,
		options:    make([]*Option, 0, cap(c.options)),
		reporter:   c.reporter,
		action:     c.action,
		middleware: append([]middleware.Middleware(nil), c.middleware...),
	}
	for _, o := range c.options {
		oc, err := o.clone()
		if err != nil {
			dup.Clean()
			return nil, err
		}
		dup.options = append(dup.options, oc)
	}
	return dup, nil
}

var _ middleware.Context = (*Command)(nil)
