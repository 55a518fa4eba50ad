package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sevenzing/rust-html-generator/internal/ui/pretty"
)

const usageTemplate = `{{ heading "Usage:" }}{{if .Runnable}}
  {{ command .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}{{if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}{{end}}{{if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{end}}{{if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{end}}{{if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

// helpStyles is the subset of the pretty styles that command help uses.
type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	s := pretty.NewStyles(colorEnabled)
	return helpStyles{
		command: s.Bold,
		heading: s.Warning,
		name:    s.Name,
		flag:    s.SummaryValue,
		dim:     s.Dim,
	}
}

func (s helpStyles) funcs() template.FuncMap {
	return template.FuncMap{
		"command": s.command.Render,
		"heading": s.heading.Render,
		"name":    s.name.Render,
		"example": s.example,
		"flags":   s.flagUsages,
		"rpad":    rpad,
		"trim":    trimTrailingSpace,
	}
}

// example styles each line on its own; lipgloss pads multi-line blocks.
func (s helpStyles) example(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = s.dim.Render(line)
	}
	return strings.Join(lines, "\n")
}

// flagUsages renders one aligned line per visible flag, in the layout
// pflag uses, with flag names and value placeholders styled.
func (s helpStyles) flagUsages(fs *pflag.FlagSet) string {
	type row struct {
		plain, styled, usage string
	}

	var rows []row
	width := 0
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		varname, usage := pflag.UnquoteUsage(f)

		plain, styled := "    ", "    "
		if f.Shorthand != "" {
			plain = "-" + f.Shorthand + ", "
			styled = s.flag.Render("-"+f.Shorthand) + ", "
		}
		plain += "--" + f.Name
		styled += s.flag.Render("--" + f.Name)
		if varname != "" {
			plain += " " + varname
			styled += " " + s.dim.Render(varname)
		}

		width = max(width, len(plain))
		rows = append(rows, row{plain: plain, styled: styled, usage: usage + defaultSuffix(f)})
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		pad := strings.Repeat(" ", width-len(r.plain))
		lines = append(lines, "  "+r.styled+pad+"   "+r.usage)
	}
	return strings.Join(lines, "\n")
}

func defaultSuffix(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf(" (default %q)", f.DefValue)
	}
	return " (default " + f.DefValue + ")"
}

// installHelp replaces the help and usage output of cmd and every
// subcommand. Color is resolved from --color when help is printed.
func installHelp(cmd *cobra.Command) {
	render := func(c *cobra.Command, name, text string) error {
		out := c.OutOrStdout()
		styles := newHelpStyles(pretty.IsColorEnabled(colorFlag(c), out))
		tmpl, err := template.New(name).Funcs(styles.funcs()).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(out, c)
	}

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return render(c, "usage", usageTemplate)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := render(c, "help", helpTemplate); err != nil {
			c.PrintErrln(err)
		}
	})
}

func colorFlag(cmd *cobra.Command) string {
	if f := cmd.Flag("color"); f != nil {
		return f.Value.String()
	}
	return "auto"
}

func rpad(s string, padding int) string {
	if len(s) >= padding {
		return s
	}
	return s + strings.Repeat(" ", padding-len(s))
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
