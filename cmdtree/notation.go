package cmdtree

import (
	"slices"
	"strings"

	"github.com/dzonerzy/cmdtree/internal/intern"
)

// FlagPrefix is the first byte of every flag token
const FlagPrefix = '-'

// Alias is a secondary name of a notation. Aliases that are not valid flags
// are kept as placeholders so declaration order and count stay stable; they
// never match a token.
type Alias struct {
	Name  string
	Valid bool
}

// Notation holds the names identifying a command or option
type Notation struct {
	main        string
	aliases     []Alias
	description string
}

// IsValidFlag reports whether token is non-empty and starts with FlagPrefix
func IsValidFlag(token string) bool {
	return len(token) > 0 && token[0] == FlagPrefix
}

// NewNotation validates and stores a primary name and its aliases.
// An invalid primary name fails the declaration; invalid aliases are
// reported and kept as placeholders.
func NewNotation(main string, aliases []string) (*Notation, error) {
	if !IsValidFlag(main) {
		pe := NewParseError(ErrorTypeInvalidName, ErrInvalidName,
			"`%s` is not a valid flag name, flags should begin with `%c`", main, FlagPrefix).withFlag(main)
		DefaultReporter().Error("%s", pe.Message)
		return nil, pe
	}

	n := &Notation{
		main:    intern.Intern(main),
		aliases: make([]Alias, 0, len(aliases)),
	}
	for _, a := range aliases {
		if !IsValidFlag(a) {
			DefaultReporter().Warning("`%s` is not a valid flag name, flags should begin with `%c`", a, FlagPrefix)
			n.aliases = append(n.aliases, Alias{Name: a})
			continue
		}
		n.aliases = append(n.aliases, Alias{Name: intern.Intern(a), Valid: true})
	}
	return n, nil
}

// SetDescription replaces the description
func (n *Notation) SetDescription(text string) error {
	if n == nil {
		return invalidArgument("notation is nil")
	}
	n.description = text
	return nil
}

// HasValue reports whether token equals the primary name or a valid alias
func (n *Notation) HasValue(token string) bool {
	if n == nil || n.main == "" {
		return false
	}
	if token == n.main {
		return true
	}
	for _, a := range n.aliases {
		if a.Valid && a.Name == token {
			return true
		}
	}
	return false
}

// Name returns the primary name
func (n *Notation) Name() string {
	if n == nil {
		return ""
	}
	return n.main
}

// Description returns the description, empty when unset
func (n *Notation) Description() string {
	if n == nil {
		return ""
	}
	return n.description
}

// Aliases returns every alias including invalid placeholders
func (n *Notation) Aliases() []Alias {
	if n == nil {
		return nil
	}
	return slices.Clone(n.aliases)
}

// AliasCount returns the declared alias count, invalid ones included
func (n *Notation) AliasCount() int {
	if n == nil {
		return 0
	}
	return len(n.aliases)
}

// InvalidAliases returns the aliases that failed flag validation
func (n *Notation) InvalidAliases() []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, a := range n.aliases {
		if !a.Valid {
			out = append(out, a.Name)
		}
	}
	return out
}

// Names returns the primary name followed by every valid alias
func (n *Notation) Names() []string {
	if n == nil {
		return nil
	}
	names := make([]string, 0, 1+len(n.aliases))
	names = append(names, n.main)
	for _, a := range n.aliases {
		if a.Valid {
			names = append(names, a.Name)
		}
	}
	return names
}

// String renders the valid names as "--main, -m"
func (n *Notation) String() string {
	return strings.Join(n.Names(), ", ")
}

func (n *Notation) clone() Notation {
	return Notation{
		main:        n.main,
		aliases:     slices.Clone(n.aliases),
		description: n.description,
	}
}
