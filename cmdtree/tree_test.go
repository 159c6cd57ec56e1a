//nolint:testpackage // package-internal tests
package cmdtree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTree_SelectsByAlias(t *testing.T) {
	tree := mustTree(t, 1, mustCommand(t, "--main", []string{"-m"}, 1))

	if err := tree.Dispatch([]string{"prog", "-m", "x", "y"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	sel := tree.Selected()
	if sel == nil || sel.Name() != "--main" || sel.PassedName() != "-m" {
		t.Fatalf("selected = %v", sel)
	}
	if err := sel.Parse(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, sel.Parameters()); diff != "" {
		t.Errorf("parameters (-want +got):\n%s", diff)
	}
	if tree.Window().Len() != 3 {
		t.Errorf("tree window holds %d tokens, want len(argv)-1 = 3", tree.Window().Len())
	}
}

func TestTree_RequiredStringOption(t *testing.T) {
	name := mustOption(t, "--name", nil, true, KindString, nil)
	tree := mustTree(t, 1, mustCommand(t, "--main", nil, 1, name))

	if err := tree.Dispatch([]string{"prog", "--main", "--name", "bob"}); err != nil {
		t.Fatal(err)
	}
	sel := tree.Selected()
	if err := sel.Parse(); err != nil {
		t.Fatal(err)
	}
	if got := sel.ReadStringOption("--name"); got != "bob" {
		t.Errorf("--name = %q, want bob", got)
	}
	if missing := sel.MissingRequiredOptions(); len(missing) != 0 {
		t.Errorf("missing = %v", missing)
	}

	if err := tree.Dispatch([]string{"prog", "--main"}); err != nil {
		t.Fatal(err)
	}
	sel = tree.Selected()
	if err := sel.Parse(); err != nil {
		t.Fatal(err)
	}
	missing := sel.MissingRequiredOptions()
	if len(missing) != 1 || missing[0].Name() != "--name" {
		t.Errorf("missing = %v, want [--name]", missing)
	}
}

func TestTree_UnknownFlagIsPositional(t *testing.T) {
	rec := captureReports(t)
	tree := mustTree(t, 1, mustCommand(t, "--main", nil, 1,
		mustOption(t, "--name", nil, false, KindString, nil)))

	if err := tree.Dispatch([]string{"prog", "--main", "--bogus"}); err != nil {
		t.Fatal(err)
	}
	sel := tree.Selected()
	if err := sel.Parse(); err != nil {
		t.Fatalf("unknown flag must not fail the parse: %v", err)
	}
	if diff := cmp.Diff([]string{"--bogus"}, sel.Parameters()); diff != "" {
		t.Errorf("parameters (-want +got):\n%s", diff)
	}
	if len(rec.warnings) != 1 {
		t.Errorf("warnings = %v", rec.warnings)
	}
}

func TestTree_DispatchErrors(t *testing.T) {
	tree := mustTree(t, 2,
		mustCommand(t, "--build", []string{"-b"}, 1),
		mustCommand(t, "--test", nil, 1),
	)

	tests := []struct {
		name       string
		argv       []string
		want       error
		suggestion string
	}{
		{"nothing", nil, ErrNoCommand, ""},
		{"program only", []string{"prog"}, ErrNoCommand, ""},
		{"not a flag", []string{"prog", "build"}, ErrInvalidFlag, ""},
		{"unknown", []string{"prog", "--deploy"}, ErrUnknownCommand, ""},
		{"typo", []string{"prog", "--biuld"}, ErrUnknownCommand, "--build"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tree.Dispatch(tt.argv)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Dispatch(%v) = %v, want %v", tt.argv, err, tt.want)
			}
			if pe, _ := AsParseError(err); pe.Suggestion != tt.suggestion {
				t.Errorf("suggestion = %q, want %q", pe.Suggestion, tt.suggestion)
			}
			if tree.Selected() != nil {
				t.Error("failed dispatch must leave nothing selected")
			}
		})
	}
}

func TestTree_FirstDeclaredMatchWins(t *testing.T) {
	first := mustCommand(t, "--first", []string{"-x"}, 1)
	second := mustCommand(t, "--second", []string{"-x"}, 1)
	tree := mustTree(t, 2, first, second)

	if err := tree.Dispatch([]string{"prog", "-x"}); err != nil {
		t.Fatal(err)
	}
	if got := tree.Selected().Name(); got != "--first" {
		t.Errorf("selected %s, want --first", got)
	}

	if err := tree.Dispatch([]string{"prog", "--second"}); err != nil {
		t.Fatal(err)
	}
	selected := 0
	for _, c := range tree.Commands() {
		if c.Selected() {
			selected++
		}
	}
	if selected != 1 || tree.Selected().Name() != "--second" {
		t.Errorf("%d commands selected, want only --second", selected)
	}
}

func TestTree_AddCommandCopies(t *testing.T) {
	opt := mustOption(t, "--name", nil, false, KindString, nil)
	cmd := mustCommand(t, "--main", nil, 1, opt)
	tree := mustTree(t, 1, cmd)

	if err := cmd.SetDescription("changed after add"); err != nil {
		t.Fatal(err)
	}
	stored := tree.Command("--main")
	if stored == cmd || stored.Description() != "" {
		t.Error("tree must hold its own copy of the command")
	}
	if opt.NotationUseCount() != 3 {
		t.Errorf("use count = %d, want 3", opt.NotationUseCount())
	}

	extra := mustCommand(t, "--extra", nil, 1)
	if err := tree.AddCommand(extra); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("AddCommand over capacity: %v", err)
	}
	if len(tree.Commands()) != 1 {
		t.Errorf("commands = %d, want 1", len(tree.Commands()))
	}

	unnamed, err := NewCommand(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := mustTree(t, 1).AddCommand(unnamed); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unnamed command: %v", err)
	}
}

func TestTree_CleanReleasesEverything(t *testing.T) {
	opt := mustOption(t, "--name", nil, false, KindString, nil)
	cmd := mustCommand(t, "--main", nil, 1, opt)

	tree, err := NewTree(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.AddCommand(cmd); err != nil {
		t.Fatal(err)
	}
	if err := tree.Dispatch([]string{"prog", "--main", "--name", "x"}); err != nil {
		t.Fatal(err)
	}

	tree.Clean()
	cmd.Clean()
	if opt.NotationUseCount() != 1 {
		t.Errorf("use count = %d, want 1", opt.NotationUseCount())
	}
	if tree.Selected() != nil || len(tree.Commands()) != 0 || tree.Capacity() != 2 {
		t.Error("cleaned tree must be empty with its capacity intact")
	}
	tree.Clean()
}

func TestNewTree_ZeroCapacity(t *testing.T) {
	if tree, err := NewTree(0); tree != nil || !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewTree(0) = %v, %v", tree, err)
	}
}

func TestTree_ReporterPropagates(t *testing.T) {
	captureReports(t)
	rec := &recorder{}
	tree := mustTree(t, 1, mustCommand(t, "--main", nil, 1,
		mustOption(t, "--name", nil, false, KindString, nil)))
	tree.WithReporter(rec)

	if err := tree.Dispatch([]string{"prog", "--main", "--nmae"}); err != nil {
		t.Fatal(err)
	}
	if err := tree.Selected().Parse(); err != nil {
		t.Fatal(err)
	}
	if len(rec.warnings) != 1 {
		t.Errorf("tree reporter got %v", rec.warnings)
	}
}
