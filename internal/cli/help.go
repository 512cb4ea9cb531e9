package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Help styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AA00")).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

type helpEntry struct {
	name       string
	help       string
	defaultVal string
}

// StyledHelpPrinter returns a kong help printer with lipgloss styling. It
// describes the selected command, or the application when none is selected.
func StyledHelpPrinter(title string) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		var sb strings.Builder

		sb.WriteString(helpTitleStyle.Render(title))
		sb.WriteString("\n")

		if node.Help != "" {
			sb.WriteString(helpDescStyle.Render(node.Help))
			sb.WriteString("\n")
		}

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(usage(ctx, node))
		sb.WriteString("\n")

		writeSection(&sb, "Arguments:", positionals(node), helpArgStyle)
		writeSection(&sb, "Commands:", commands(node), helpArgStyle)
		writeSection(&sb, "Flags:", flags(node), helpFlagStyle)

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())

		return nil
	}
}

func usage(ctx *kong.Context, node *kong.Node) string {
	parts := []string{ctx.Model.Name}
	if node != ctx.Model.Node {
		parts = append(parts, node.Path())
	}

	if len(node.Children) > 0 {
		parts = append(parts, "<command>")
	}

	parts = append(parts, "[flags]")

	for _, p := range node.Positional {
		parts = append(parts, p.Summary())
	}

	return strings.Join(parts, " ")
}

func writeSection(sb *strings.Builder, title string, entries []helpEntry, style lipgloss.Style) {
	if len(entries) == 0 {
		return
	}

	width := 0
	for _, e := range entries {
		width = max(width, len(e.name))
	}

	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(title))
	sb.WriteString("\n")

	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(style.Render(e.name + strings.Repeat(" ", width-len(e.name))))

		if e.help != "" {
			sb.WriteString("  ")
			sb.WriteString(e.help)
		}

		if e.defaultVal != "" {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(default: " + e.defaultVal + ")"))
		}

		sb.WriteString("\n")
	}
}

func positionals(node *kong.Node) []helpEntry {
	var out []helpEntry
	for _, p := range node.Positional {
		out = append(out, helpEntry{name: p.Summary(), help: p.Help})
	}

	return out
}

func commands(node *kong.Node) []helpEntry {
	var out []helpEntry

	for _, c := range node.Children {
		if c.Hidden {
			continue
		}

		if len(c.Children) > 0 {
			for _, sub := range c.Children {
				if !sub.Hidden {
					out = append(out, helpEntry{name: c.Name + " " + sub.Name, help: sub.Help})
				}
			}

			continue
		}

		out = append(out, helpEntry{name: c.Name, help: c.Help})
	}

	return out
}

func flags(node *kong.Node) []helpEntry {
	out := []helpEntry{{name: "-h, --help", help: "Show context-sensitive help."}}

	for _, group := range node.AllFlags(true) {
		for _, f := range group {
			if f.Name == "help" {
				continue
			}

			name := "--" + f.Name
			if f.Short != 0 {
				name = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}

			if !f.IsBool() && f.PlaceHolder != "" {
				name += "=" + strings.ToUpper(f.PlaceHolder)
			}

			out = append(out, helpEntry{name: name, help: f.Help, defaultVal: f.Default})
		}
	}

	return out
}
