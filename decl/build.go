package decl

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dzonerzy/cmdtree/cmdtree"
)

// Build turns the declaration into a tree. Every problem found is
// returned together; on error nothing stays allocated.
func (s *Spec) Build() (*cmdtree.Tree, error) {
	capacity := len(s.Commands)
	if s.Help {
		capacity++
	}
	tree, err := cmdtree.NewTree(max(capacity, 1))
	if err != nil {
		return nil, err
	}
	tree.SetDescription(s.Description)

	var errs []error
	for i := range s.Commands {
		if err := s.Commands[i].addTo(tree); err != nil {
			errs = append(errs, fmt.Errorf("command %d (%s): %w", i, s.Commands[i].Name, err))
		}
	}
	if s.Help {
		if err := tree.AddHelp(); err != nil {
			errs = append(errs, fmt.Errorf("help: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		tree.Clean()
		return nil, err
	}
	return tree, nil
}

func (c *CommandSpec) addTo(tree *cmdtree.Tree) error {
	cmd, err := cmdtree.DeclareCommand(c.Name, c.Aliases, max(c.Capacity, len(c.Options), 1))
	if err != nil {
		return err
	}
	defer cmd.Clean()

	if c.Description != "" {
		if err := cmd.SetDescription(c.Description); err != nil {
			return err
		}
	}

	var errs []error
	for i := range c.Options {
		if err := c.Options[i].addTo(cmd); err != nil {
			errs = append(errs, fmt.Errorf("option %s: %w", c.Options[i].Name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return tree.AddCommand(cmd)
}

func (o *OptionSpec) addTo(cmd *cmdtree.Command) error {
	kind, err := cmdtree.ParseKind(o.Type)
	if err != nil {
		return err
	}
	def, err := o.DefaultValue(kind)
	if err != nil {
		return err
	}

	opt, err := cmdtree.DeclareOption(o.Name, o.Aliases, o.Required, kind, def)
	if err != nil {
		return err
	}
	defer opt.Clean()

	if o.Description != "" {
		if err := opt.SetDescription(o.Description); err != nil {
			return err
		}
	}
	return cmd.AddOption(opt)
}

// DefaultValue converts the decoded default to a value of kind. A missing
// default yields nil, which cmdtree reads as the kind's zero value.
func (o *OptionSpec) DefaultValue(kind cmdtree.Kind) (cmdtree.Value, error) {
	if o.Default == nil {
		return nil, nil
	}
	switch kind {
	case cmdtree.KindBool:
		switch v := o.Default.(type) {
		case bool:
			return cmdtree.BoolValue(v), nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, o.badDefault(kind)
			}
			return cmdtree.BoolValue(b), nil
		}
	case cmdtree.KindInt:
		if n, ok := asInt(o.Default); ok {
			return cmdtree.IntValue(n), nil
		}
	case cmdtree.KindFloat:
		if f, ok := asFloat(o.Default); ok {
			return cmdtree.FloatValue(f), nil
		}
	case cmdtree.KindString:
		if s, ok := o.Default.(string); ok {
			return cmdtree.StringValue(s), nil
		}
	case cmdtree.KindMultiString:
		switch v := o.Default.(type) {
		case string:
			return cmdtree.MultiStringValue{v}, nil
		case []string:
			return cmdtree.MultiStringValue(v), nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, o.badDefault(kind)
				}
				out = append(out, s)
			}
			return cmdtree.MultiStringValue(out), nil
		}
	}
	return nil, o.badDefault(kind)
}

func (o *OptionSpec) badDefault(kind cmdtree.Kind) error {
	return fmt.Errorf("%w: default %v (%T) for %s option", cmdtree.ErrTypeMismatch, o.Default, o.Default, kind)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		// -math.MinInt is the first float above MaxInt; NaN fails Trunc
		if n != math.Trunc(n) || n < math.MinInt || n >= -math.MinInt {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
