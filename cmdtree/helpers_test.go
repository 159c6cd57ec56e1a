//nolint:testpackage // tests reach unexported state such as clone and Window.bind
package cmdtree

import (
	"fmt"
	"testing"
)

// recorder is a Reporter keeping every message
type recorder struct {
	warnings []string
	errors   []string
}

func (r *recorder) Warning(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recorder) Error(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

// captureReports swaps the default reporter for the duration of the test
func captureReports(t *testing.T) *recorder {
	t.Helper()
	rec := &recorder{}
	prev := SetDefaultReporter(rec)
	t.Cleanup(func() { SetDefaultReporter(prev) })
	return rec
}

func mustOption(t *testing.T, name string, aliases []string, required bool, kind Kind, def Value) *Option {
	t.Helper()
	o, err := DeclareOption(name, aliases, required, kind, def)
	if err != nil {
		t.Fatalf("DeclareOption(%s): %v", name, err)
	}
	t.Cleanup(o.Clean)
	return o
}

func mustCommand(t *testing.T, name string, aliases []string, capacity int, options ...*Option) *Command {
	t.Helper()
	c, err := DeclareCommand(name, aliases, capacity)
	if err != nil {
		t.Fatalf("DeclareCommand(%s): %v", name, err)
	}
	for _, o := range options {
		if err := c.AddOption(o); err != nil {
			t.Fatalf("AddOption(%s): %v", o.Name(), err)
		}
	}
	t.Cleanup(c.Clean)
	return c
}

func mustTree(t *testing.T, capacity int, commands ...*Command) *Tree {
	t.Helper()
	tree, err := NewTree(capacity)
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	for _, c := range commands {
		if err := tree.AddCommand(c); err != nil {
			t.Fatalf("AddCommand(%s): %v", c.Name(), err)
		}
	}
	t.Cleanup(tree.Clean)
	return tree
}
