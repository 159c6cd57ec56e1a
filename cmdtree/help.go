package cmdtree

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	cmdio "github.com/dzonerzy/cmdtree/io"
)

// Reserved names of the builtin help command
const (
	HelpName  = "--help"
	HelpAlias = "-h"
)

// AddHelp registers the builtin help command. It takes a slot of the
// tree's capacity like any other command.
func (t *Tree) AddHelp() error {
	help, err := DeclareCommand(HelpName, []string{HelpAlias}, 1)
	if err != nil {
		return err
	}
	defer help.Clean()
	if err := help.SetDescription("Show the commands, or the options of one command"); err != nil {
		return err
	}
	return t.AddCommand(help)
}

// HandleHelp prints help when cmd is the builtin help command and reports
// whether it did. With no parameters it lists every command; with one it
// describes the named command. An unknown target is reported, not failed.
func (t *Tree) HandleHelp(cmd *Command) (bool, error) {
	if cmd == nil || !cmd.IsOfFlag(HelpName) {
		return false, nil
	}
	p := NewHelpPrinter(t.IO())

	params := cmd.Parameters()
	if len(params) == 0 {
		return true, p.PrintTree(t)
	}

	target := t.Command(params[0])
	if target == nil {
		cmd.report().Warning("Command `%s` could not be found", params[0])
		return true, nil
	}
	return true, p.PrintCommand(target)
}

// HelpPrinter renders the global and per-command help pages
type HelpPrinter struct {
	io      *cmdio.IOManager
	heading *color.Color
	name    *color.Color
	marker  *color.Color
	dim     *color.Color
}

// NewHelpPrinter creates a printer writing to m.Out()
func NewHelpPrinter(m *cmdio.IOManager) *HelpPrinter {
	p := &HelpPrinter{
		io:      m,
		heading: color.New(color.Bold),
		name:    color.New(color.FgCyan),
		marker:  color.New(color.FgYellow, color.Bold),
		dim:     color.New(color.Faint),
	}
	enable := m.SupportsColor()
	for _, c := range []*color.Color{p.heading, p.name, p.marker, p.dim} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// PrintTree writes the description of t and one line per command
func (p *HelpPrinter) PrintTree(t *Tree) error {
	out := p.io.Out()
	if t.Description() != "" {
		fmt.Fprintf(out, "%s\n\n", t.Description())
	}

	fmt.Fprintln(out, p.heading.Sprint("Commands:"))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range t.Commands() {
		fmt.Fprintf(tw, "  %s\t%s\n", p.name.Sprint(c.Notation().String()), c.Description())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if t.HasCommand(HelpName) {
		fmt.Fprintf(out, "\n%s\n", p.dim.Sprintf("Use \"%s <command>\" to list the options of a command.", HelpName))
	}
	return nil
}

// PrintCommand writes the names, description and options of c. Required
// options are marked with `*`.
func (p *HelpPrinter) PrintCommand(c *Command) error {
	out := p.io.Out()
	fmt.Fprintf(out, "%s:\n", p.heading.Sprint(c.Notation().String()))
	if c.Description() != "" {
		fmt.Fprintf(out, "    %s\n", c.Description())
	}
	if c.OptionCount() == 0 {
		return nil
	}

	fmt.Fprintf(out, "\n%s\n", p.heading.Sprint("Options:"))
	required := p.writeOptions(out, c.Options())
	if required > 0 {
		fmt.Fprintf(out, "\n%s: required option\n", p.marker.Sprint("*"))
	}
	return nil
}

func (p *HelpPrinter) writeOptions(out io.Writer, options []*Option) int {
	required := 0
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	// tabwriter counts escape bytes as width, so every cell of a column
	// is painted by the same color, blank markers included
	for _, o := range options {
		mark := p.marker.Sprint(" ")
		if o.Required() {
			mark = p.marker.Sprint("*")
			required++
		}
		desc := o.Description()
		if def := defaultText(o); def != "" {
			desc += p.dim.Sprintf(" (default: %s)", def)
		}
		fmt.Fprintf(tw, "  %s %s\t%s\t%s\n", mark, p.name.Sprint(o.Notation().String()), o.Kind(), desc)
	}
	//nolint:errcheck // help output is best-effort
	tw.Flush()
	return required
}

// defaultText renders non-zero defaults only
func defaultText(o *Option) string {
	switch v := o.Default().(type) {
	case BoolValue:
		if v {
			return v.String()
		}
	case IntValue:
		if v != 0 {
			return v.String()
		}
	case FloatValue:
		if v != 0 {
			return v.String()
		}
	case StringValue:
		if v != "" {
			return v.String()
		}
	case MultiStringValue:
		if len(v) > 0 {
			return v.String()
		}
	}
	return ""
}
