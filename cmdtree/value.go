package cmdtree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Kind is the declared type of an option
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindMultiString
)

// String returns the type hint shown in help output
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindMultiString:
		return "[]string"
	default:
		return "unknown"
	}
}

func (k Kind) valid() bool {
	return k >= KindBool && k <= KindMultiString
}

// ParseKind maps a declaration type name to a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bool", "boolean":
		return KindBool, nil
	case "int", "integer":
		return KindInt, nil
	case "float", "float64", "number":
		return KindFloat, nil
	case "string", "str":
		return KindString, nil
	case "[]string", "strings", "multi-string", "multistring", "list":
		return KindMultiString, nil
	}
	return 0, NewParseError(ErrorTypeInvalidArgument, ErrUnsupportedKind, "unsupported option type %q", name)
}

// Value is the closed set of option values. The kind is derived from the
// concrete type, so a value can never disagree with its tag.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

// BoolValue is the value of a KindBool option
type BoolValue bool

// IntValue is the value of a KindInt option
type IntValue int

// FloatValue is the value of a KindFloat option
type FloatValue float64

// StringValue is the value of a KindString option
type StringValue string

// MultiStringValue is the value of a KindMultiString option
type MultiStringValue []string

func (BoolValue) Kind() Kind        { return KindBool }
func (IntValue) Kind() Kind         { return KindInt }
func (FloatValue) Kind() Kind       { return KindFloat }
func (StringValue) Kind() Kind      { return KindString }
func (MultiStringValue) Kind() Kind { return KindMultiString }

func (v BoolValue) String() string        { return strconv.FormatBool(bool(v)) }
func (v IntValue) String() string         { return strconv.Itoa(int(v)) }
func (v FloatValue) String() string       { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v StringValue) String() string      { return string(v) }
func (v MultiStringValue) String() string { return fmt.Sprintf("%q", []string(v)) }

func (BoolValue) isValue()        {}
func (IntValue) isValue()         {}
func (FloatValue) isValue()       {}
func (StringValue) isValue()      {}
func (MultiStringValue) isValue() {}

func zeroValue(k Kind) Value {
	switch k {
	case KindBool:
		return BoolValue(false)
	case KindInt:
		return IntValue(0)
	case KindFloat:
		return FloatValue(0)
	case KindString:
		return StringValue("")
	case KindMultiString:
		return MultiStringValue(nil)
	}
	return nil
}

// cloneValue deep-copies multi-string payloads; strings are immutable already
func cloneValue(v Value) Value {
	if ms, ok := v.(MultiStringValue); ok {
		return MultiStringValue(slices.Clone([]string(ms)))
	}
	return v
}

// lenientInt converts the longest leading decimal integer of text.
// "42abc" is 42, "abc" is 0, out-of-range values clamp to the int limits.
func lenientInt(text string) int {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == digits {
		return 0
	}
	// On overflow ParseInt returns the clamped limit alongside ErrRange
	n, _ := strconv.ParseInt(s[:end], 10, 0)
	return int(n)
}

// lenientFloat converts the longest leading decimal float of text, accepting
// an optional exponent and the inf/infinity/nan spellings.
// Out-of-range values become ±Inf.
func lenientFloat(text string) float64 {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	lower := strings.ToLower(s[end:])
	for _, word := range []string{"infinity", "inf", "nan"} {
		if strings.HasPrefix(lower, word) {
			f, _ := strconv.ParseFloat(s[:end+len(word)], 64)
			return f
		}
	}

	mantissa := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0
	}

	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		expDigits := exp
		for exp < len(s) && isDigit(s[exp]) {
			exp++
		}
		if exp > expDigits {
			end = exp
		}
	}

	f, _ := strconv.ParseFloat(s[:end], 64)
	return f
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
