package cmdtree

import (
	"slices"
)

// Option is a typed leaf declaration of a command.
//
// An option starts declared (default only). The first Parse observes it and
// records a set value; later Parse calls are no-ops until Reset.
type Option struct {
	notation *Shared[Notation]
	window   Window
	kind     Kind
	required bool
	def      Value
	set      Value  // nil until observed
	passed   string // token that triggered the observation
}

// NewOption declares an option of the given kind. A nil def stands for the
// kind's zero value; a def of another kind is rejected.
func NewOption(required bool, kind Kind, def Value) (*Option, error) {
	if !kind.valid() {
		return nil, NewParseError(ErrorTypeInvalidArgument, ErrUnsupportedKind, "unsupported option kind %d", int(kind))
	}
	if def == nil {
		def = zeroValue(kind)
	} else if def.Kind() != kind {
		return nil, NewParseError(ErrorTypeTypeMismatch, ErrTypeMismatch,
			"default of kind %s given for %s option", def.Kind(), kind)
	}
	return &Option{
		kind:     kind,
		required: required,
		def:      cloneValue(def),
	}, nil
}

// DeclareOption is NewOption followed by SetName
func DeclareOption(name string, aliases []string, required bool, kind Kind, def Value) (*Option, error) {
	o, err := NewOption(required, kind, def)
	if err != nil {
		return nil, err
	}
	if err := o.SetName(name, aliases); err != nil {
		return nil, err
	}
	return o, nil
}

// SetName gives the option its notation. A previous notation handle is dropped.
func (o *Option) SetName(name string, aliases []string) error {
	if o == nil {
		return invalidArgument("option is nil")
	}
	n, err := NewNotation(name, aliases)
	if err != nil {
		return err
	}
	handle := NewShared[Notation]()
	if err := handle.Put(*n); err != nil {
		return err
	}
	if o.notation != nil {
		o.notation.Clean()
	}
	o.notation = handle
	return nil
}

// SetDescription sets the description on the shared notation, so every copy sees it
func (o *Option) SetDescription(text string) error {
	return o.Notation().SetDescription(text)
}

// Notation returns the shared notation, nil when unnamed or released
func (o *Option) Notation() *Notation {
	if o == nil || o.notation == nil {
		return nil
	}
	n, ok := o.notation.Read()
	if !ok {
		return nil
	}
	return n
}

// NotationUseCount returns how many option records share this notation
func (o *Option) NotationUseCount() int64 {
	if o == nil {
		return 0
	}
	return o.notation.UseCount()
}

// Name returns the primary name
func (o *Option) Name() string { return o.Notation().Name() }

// Description returns the notation description
func (o *Option) Description() string { return o.Notation().Description() }

// PassedName returns the token that set the option, empty when unset
func (o *Option) PassedName() string { return o.passed }

// Kind returns the declared kind
func (o *Option) Kind() Kind { return o.kind }

// Required reports whether the option must be present
func (o *Option) Required() bool { return o.required }

// IsSet reports whether the option was observed during parsing
func (o *Option) IsSet() bool { return o != nil && o.set != nil }

// Default returns the declared default
func (o *Option) Default() Value { return cloneValue(o.def) }

// Bind points the option at the tokens that follow its flag
func (o *Option) Bind(origin string, tail []string) error {
	return o.window.bind(origin, tail)
}

// Parse consumes the option's value from its window and returns the number
// of tokens consumed. A negative count comes with an error and leaves the
// option unset.
func (o *Option) Parse() (int, error) {
	if o.set != nil {
		return 0, nil
	}
	tokens := o.window.Tokens()

	switch o.kind {
	case KindBool:
		o.observe(BoolValue(true))
		return 0, nil

	case KindInt, KindFloat:
		text, ok := nextValue(tokens)
		consumed := 0
		if ok {
			consumed = 1
		}
		if o.kind == KindInt {
			o.observe(IntValue(lenientInt(text)))
		} else {
			o.observe(FloatValue(lenientFloat(text)))
		}
		return consumed, nil

	case KindString:
		text, ok := nextValue(tokens)
		if !ok {
			return -1, o.missingValue("a value")
		}
		o.observe(StringValue(text))
		return 1, nil

	case KindMultiString:
		n := 0
		for n < len(tokens) && !IsValidFlag(tokens[n]) {
			n++
		}
		if n == 0 {
			return -1, o.missingValue("at least one value")
		}
		o.observe(MultiStringValue(slices.Clone(tokens[:n])))
		return n, nil
	}

	return -1, NewParseError(ErrorTypeInternal, ErrUnsupportedKind, "unsupported option kind %d", int(o.kind))
}

func nextValue(tokens []string) (string, bool) {
	if len(tokens) == 0 || IsValidFlag(tokens[0]) {
		return "", false
	}
	return tokens[0], true
}

func (o *Option) observe(v Value) {
	o.set = v
	o.passed = o.window.Origin()
}

func (o *Option) missingValue(what string) *ParseError {
	flag := o.window.Origin()
	if flag == "" {
		flag = o.Name()
	}
	return NewParseError(ErrorTypeMissingValue, ErrMissingValue,
		"option `%s` (%s) requires %s", flag, o.kind, what).withFlag(flag)
}

// Reset forgets the observed value
func (o *Option) Reset() {
	o.set = nil
	o.passed = ""
}

// ReadValue returns the set value if observed, else the default
func (o *Option) ReadValue() Value {
	if o == nil {
		return nil
	}
	if o.set != nil {
		return o.set
	}
	return o.def
}

// ReadBool returns the value of a bool option, false for other kinds
func (o *Option) ReadBool() bool {
	v, _ := o.ReadValue().(BoolValue)
	return bool(v)
}

// ReadInt returns the value of an int option, 0 for other kinds
func (o *Option) ReadInt() int {
	v, _ := o.ReadValue().(IntValue)
	return int(v)
}

// ReadFloat returns the value of a float option, 0 for other kinds
func (o *Option) ReadFloat() float64 {
	v, _ := o.ReadValue().(FloatValue)
	return float64(v)
}

// ReadString returns the value of a string option, "" for other kinds
func (o *Option) ReadString() string {
	v, _ := o.ReadValue().(StringValue)
	return string(v)
}

// ReadMultiString returns the values of a multi-string option, nil for other kinds.
// The slice must be treated as read-only.
func (o *Option) ReadMultiString() []string {
	v, _ := o.ReadValue().(MultiStringValue)
	return []string(v)
}

// Clean drops the notation handle and the window buffer
func (o *Option) Clean() {
	if o == nil {
		return
	}
	if o.notation != nil {
		o.notation.Clean()
	}
	o.window.Clean()
	o.set = nil
}

// clone copies the record. The copy co-owns the notation and starts with an
// empty window.
func (o *Option) clone() (*Option, error) {
	c := &Option{
		notation: &Shared[Notation]{},
		kind:     o.kind,
		required: o.required,
		def:      cloneValue(o.def),
		passed:   o.passed,
	}
	if o.set != nil {
		c.set = cloneValue(o.set)
	}
	if err := CopyInto(c.notation, o.notation); err != nil {
		return nil, err
	}
	return c, nil
}
