package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/dgnsrekt/audiooverview/internal/scenario"
	"github.com/dgnsrekt/audiooverview/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:     "inspect [SCRIPT]",
	Short:   "Show how a script will be narrated",
	Long:    paragraph(fmt.Sprintf("\n%s the dialogue lines that will be narrated, who speaks them and with which voice. Lines that belong to no speaker are left out.", keyword("Preview"))),
	Example: paragraph("audiooverview inspect script.txt"),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := loadScript(args)
		if err != nil {
			return err
		}
		overrides, err := voiceOverrides()
		if err != nil {
			return err
		}
		assignment, err := resolveAssignment(text, overrides, false)
		if err != nil {
			return err
		}
		_, entries, err := scenario.Parse(text, assignment)
		if err != nil {
			return err
		}

		style := styles.AutoStyle
		width := 80
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			style = styles.NoTTYStyle
		} else if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = min(w, 120)
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("unable to create renderer: %w", err)
		}

		out, err := r.Render(dialogueTable(entries))
		if err != nil {
			return fmt.Errorf("unable to render markdown: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	inspectCmd.Flags().StringArrayVarP(&voiceFlags, "voice", "v", nil, "assign a voice to a speaker as Name=voice (repeatable)")
}

// dialogueTable renders entries as a markdown table.
func dialogueTable(entries []scenario.Entry) string {
	var b strings.Builder
	b.WriteString("| # | Line | Speaker | Voice | Text |\n")
	b.WriteString("|--:|-----:|---------|-------|------|\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "| %d | %d | %s | %s | %s |\n",
			i+1, e.Line, utils.EscapeTableCell(e.Speaker.String()), e.Voice, utils.EscapeTableCell(e.Text))
	}
	return b.String()
}
