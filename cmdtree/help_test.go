//nolint:testpackage // package-internal tests
package cmdtree

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	cmdio "github.com/dzonerzy/cmdtree/io"
)

func helpTree(t *testing.T) (*Tree, *bytes.Buffer) {
	t.Helper()
	greet := mustCommand(t, "--greet", []string{"-g"}, 2,
		mustOption(t, "--name", []string{"-n"}, true, KindString, nil),
		mustOption(t, "--times", nil, false, KindInt, IntValue(1)),
	)
	if err := greet.SetDescription("Say hello"); err != nil {
		t.Fatal(err)
	}
	if err := greet.FindOption("--name").SetDescription("who to greet"); err != nil {
		t.Fatal(err)
	}
	bare := mustCommand(t, "--version", nil, 1)

	tree := mustTree(t, 3, greet, bare)
	tree.SetDescription("demo tool")
	if err := tree.AddHelp(); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	tree.WithIO(cmdio.New().WithOut(&out).WithErr(&out).NoColor())
	return tree, &out
}

func TestHelp_Global(t *testing.T) {
	tree, out := helpTree(t)

	if err := tree.Dispatch([]string{"prog", "-h"}); err != nil {
		t.Fatal(err)
	}
	cmd := tree.Selected()
	if err := cmd.Parse(); err != nil {
		t.Fatal(err)
	}
	shown, err := tree.HandleHelp(cmd)
	if !shown || err != nil {
		t.Fatalf("HandleHelp = %v, %v", shown, err)
	}

	got := out.String()
	for _, want := range []string{"demo tool", "Commands:", "--greet, -g", "Say hello", "--version", "--help, -h"} {
		if !strings.Contains(got, want) {
			t.Errorf("global help missing %q:\n%s", want, got)
		}
	}
}

func TestHelp_Command(t *testing.T) {
	tree, out := helpTree(t)

	if err := tree.Dispatch([]string{"prog", "--help", "-g"}); err != nil {
		t.Fatal(err)
	}
	cmd := tree.Selected()
	if err := cmd.Parse(); err != nil {
		t.Fatal(err)
	}
	if shown, err := tree.HandleHelp(cmd); !shown || err != nil {
		t.Fatalf("HandleHelp = %v, %v", shown, err)
	}

	got := out.String()
	for _, want := range []string{"--greet, -g:", "Say hello", "Options:", "* --name, -n", "string", "who to greet", "--times", "int", "(default: 1)", "*: required option"} {
		if !strings.Contains(got, want) {
			t.Errorf("command help missing %q:\n%s", want, got)
		}
	}
}

func TestHelp_CommandWithoutOptions(t *testing.T) {
	tree, out := helpTree(t)
	p := NewHelpPrinter(tree.IO())
	if err := p.PrintCommand(tree.Command("--version")); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "Options:") {
		t.Errorf("no options section expected:\n%s", out.String())
	}
}

func TestHelp_UnknownTarget(t *testing.T) {
	tree, out := helpTree(t)
	rec := &recorder{}
	tree.WithReporter(rec)

	if err := tree.Dispatch([]string{"prog", "--help", "--nope"}); err != nil {
		t.Fatal(err)
	}
	cmd := tree.Selected()
	if err := cmd.Parse(); err != nil {
		t.Fatal(err)
	}
	shown, err := tree.HandleHelp(cmd)
	if !shown || err != nil {
		t.Fatalf("unknown target must be handled without error: %v, %v", shown, err)
	}
	if len(rec.warnings) != 1 || rec.warnings[0] != "Command `--nope` could not be found" {
		t.Errorf("warnings = %v", rec.warnings)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got:\n%s", out.String())
	}
}

func TestHelp_IgnoresOtherCommands(t *testing.T) {
	tree, _ := helpTree(t)
	if err := tree.Dispatch([]string{"prog", "--version"}); err != nil {
		t.Fatal(err)
	}
	if shown, err := tree.HandleHelp(tree.Selected()); shown || err != nil {
		t.Errorf("HandleHelp = %v, %v", shown, err)
	}
	if shown, _ := tree.HandleHelp(nil); shown {
		t.Error("nil command must not be handled")
	}
}

func TestAddHelp_UsesCapacity(t *testing.T) {
	tree := mustTree(t, 1, mustCommand(t, "--main", nil, 1))
	if err := tree.AddHelp(); err == nil {
		t.Error("AddHelp on a full tree must fail")
	}
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestHelp_ColumnsAlignWithColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	tree, out := helpTree(t)
	tree.WithIO(cmdio.New().WithOut(out).WithErr(out).ForceColor())

	if err := NewHelpPrinter(tree.IO()).PrintCommand(tree.Command("--greet")); err != nil {
		t.Fatal(err)
	}
	raw := out.String()
	if !ansi.MatchString(raw) {
		t.Fatalf("expected colored output:\n%q", raw)
	}

	columns := map[string]int{}
	for _, line := range strings.Split(ansi.ReplaceAllString(raw, ""), "\n") {
		switch {
		case strings.Contains(line, "--name"):
			columns["--name"] = strings.Index(line, "string")
		case strings.Contains(line, "--times"):
			columns["--times"] = strings.Index(line, "int")
		}
	}
	if columns["--name"] <= 0 || columns["--name"] != columns["--times"] {
		t.Errorf("type column misaligned: %v\n%s", columns, ansi.ReplaceAllString(raw, ""))
	}
}

func TestHelp_TreeColumnsAlignWithColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	tree, out := helpTree(t)
	tree.WithIO(cmdio.New().WithOut(out).WithErr(out).ForceColor())

	if err := NewHelpPrinter(tree.IO()).PrintTree(tree); err != nil {
		t.Fatal(err)
	}
	columns := map[string]int{}
	for _, line := range strings.Split(ansi.ReplaceAllString(out.String(), ""), "\n") {
		switch {
		case strings.Contains(line, "--greet"):
			columns["--greet"] = strings.Index(line, "Say hello")
		case strings.HasPrefix(strings.TrimSpace(line), "--help"):
			columns["--help"] = strings.Index(line, "Show the commands")
		}
	}
	if columns["--greet"] <= 0 || columns["--greet"] != columns["--help"] {
		t.Errorf("description column misaligned: %v\n%s", columns, ansi.ReplaceAllString(out.String(), ""))
	}
}
