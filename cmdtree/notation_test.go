//nolint:testpackage // package-internal tests
package cmdtree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsValidFlag(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"--main", true},
		{"-m", true},
		{"-", true},
		{"main", false},
		{"", false},
		{" -m", false},
	}
	for _, tt := range tests {
		if got := IsValidFlag(tt.token); got != tt.want {
			t.Errorf("IsValidFlag(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestNewNotation_MatchesNameAndAliases(t *testing.T) {
	captureReports(t)
	for _, name := range []string{"--main", "-m", "--with-dash", "-"} {
		n, err := NewNotation(name, []string{"-x", "--extra"})
		if err != nil {
			t.Fatalf("NewNotation(%q): %v", name, err)
		}
		for _, tok := range []string{name, "-x", "--extra"} {
			if !n.HasValue(tok) {
				t.Errorf("%q: HasValue(%q) = false", name, tok)
			}
		}
		if n.HasValue("--other") {
			t.Errorf("%q: HasValue(--other) = true", name)
		}
	}
}

func TestNewNotation_InvalidMainName(t *testing.T) {
	rec := captureReports(t)
	for _, name := range []string{"", "main"} {
		n, err := NewNotation(name, nil)
		if n != nil || !errors.Is(err, ErrInvalidName) {
			t.Errorf("NewNotation(%q) = %v, %v; want ErrInvalidName", name, n, err)
		}
	}
	if len(rec.errors) != 2 {
		t.Errorf("expected two reported errors, got %v", rec.errors)
	}
}

func TestNewNotation_InvalidAliasesKept(t *testing.T) {
	rec := captureReports(t)

	n, err := NewNotation("--main", []string{"-m", "bad", "", "--ok"})
	if err != nil {
		t.Fatalf("NewNotation: %v", err)
	}

	want := []Alias{{"-m", true}, {"bad", false}, {"", false}, {"--ok", true}}
	if diff := cmp.Diff(want, n.Aliases()); diff != "" {
		t.Errorf("aliases mismatch (-want +got):\n%s", diff)
	}
	if n.AliasCount() != 4 {
		t.Errorf("AliasCount = %d, want 4", n.AliasCount())
	}
	if diff := cmp.Diff([]string{"bad", ""}, n.InvalidAliases()); diff != "" {
		t.Errorf("InvalidAliases (-want +got):\n%s", diff)
	}
	if n.HasValue("bad") || n.HasValue("") {
		t.Error("invalid aliases must never match")
	}
	if len(rec.warnings) != 2 {
		t.Errorf("expected two warnings, got %v", rec.warnings)
	}
	if got := n.String(); got != "--main, -m, --ok" {
		t.Errorf("String() = %q", got)
	}
}

func TestNotation_SetDescription(t *testing.T) {
	n, err := NewNotation("--main", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := n.SetDescription("runs things"); err != nil {
		t.Fatal(err)
	}
	if n.Description() != "runs things" {
		t.Errorf("Description = %q", n.Description())
	}

	var missing *Notation
	if err := missing.SetDescription("x"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil notation: err = %v, want ErrInvalidArgument", err)
	}
	if missing.HasValue("--main") || missing.Name() != "" {
		t.Error("nil notation must be inert")
	}
}
