package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Description is the one-line summary shown in help and the banner
const Description = "Render audio as a spectrogram on a musical pitch axis, labelled with note names."

// Custom help styles - jet palette
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(JetYellow).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(JetCyan).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(JetCyan).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(JetYellow).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(JetGreen).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(SlateGray).
				Italic(true)
)

// StyledHelpPrinter creates a custom help printer with Lipgloss styling.
// Flags tagged with a kong group are listed under that group's title.
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return kong.HelpPrinter(func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(helpTitleStyle.Render("Pitchgram 🎼"))
		sb.WriteString("\n")
		sb.WriteString(helpDescStyle.Render(Description))
		sb.WriteString("\n")

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(fmt.Sprintf("%s <input> [<output>] [flags]", ctx.Model.Name))
		sb.WriteString("\n")

		args := getArguments(ctx)
		if len(args) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Arguments:"))
			sb.WriteString("\n")
			for _, arg := range args {
				sb.WriteString("  ")
				sb.WriteString(helpArgStyle.Render(arg.name))
				if arg.help != "" {
					sb.WriteString("  ")
					sb.WriteString(arg.help)
				}
				sb.WriteString("\n")
			}
		}

		for _, section := range getFlagSections(ctx) {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render(section.title + ":"))
			sb.WriteString("\n")
			for _, flag := range section.flags {
				sb.WriteString("  ")
				sb.WriteString(helpFlagStyle.Render(flag.flags))
				if flag.help != "" {
					sb.WriteString("  ")
					sb.WriteString(flag.help)
				}
				if flag.defaultVal != "" {
					sb.WriteString(" ")
					sb.WriteString(helpDefaultStyle.Render("(default: " + flag.defaultVal + ")"))
				}
				sb.WriteString("\n")
			}
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	})
}

type argument struct {
	name string
	help string
}

type flag struct {
	flags      string
	help       string
	defaultVal string
}

type flagSection struct {
	title string
	flags []flag
}

func getArguments(ctx *kong.Context) []argument {
	var args []argument
	for _, arg := range ctx.Model.Node.Positional {
		args = append(args, argument{name: arg.Summary(), help: arg.Help})
	}
	return args
}

// getFlagSections groups flags by kong group, ungrouped flags first
func getFlagSections(ctx *kong.Context) []flagSection {
	sections := []flagSection{{
		title: "Flags",
		flags: []flag{{flags: "-h, --help", help: "Show context-sensitive help."}},
	}}
	index := map[string]int{}

	for _, f := range ctx.Model.Node.Flags {
		if f.Name == "help" || f.Hidden {
			continue
		}

		i := 0
		if f.Group != nil {
			var ok bool
			if i, ok = index[f.Group.Key]; !ok {
				sections = append(sections, flagSection{title: f.Group.Title})
				i = len(sections) - 1
				index[f.Group.Key] = i
			}
		}
		sections[i].flags = append(sections[i].flags, describeFlag(f))
	}

	return sections
}

func describeFlag(f *kong.Flag) flag {
	flagStr := fmt.Sprintf("--%s", f.Name)
	if f.Short != 0 {
		flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
	}

	if !f.IsBool() && f.PlaceHolder != "" {
		flagStr += "=" + strings.ToUpper(f.PlaceHolder)
	}

	// Only show default if it's a meaningful value (not empty, not type placeholder)
	defaultVal := ""
	if f.HasDefault && !f.IsBool() {
		val := f.Default
		if val != "" && val != "STRING" && val != "BOOL" {
			defaultVal = val
		}
	}

	return flag{flags: flagStr, help: f.Help, defaultVal: defaultVal}
}
