package main

import (
	"fmt"

	"github.com/dgnsrekt/audiooverview/internal/scenario"
	"github.com/spf13/cobra"
)

var speakersCmd = &cobra.Command{
	Use:     "speakers [SCRIPT]",
	Short:   "List the speakers of a script",
	Long:    paragraph(fmt.Sprintf("\n%s every speaker found in a script, in order of first appearance, with the voice they would get.", keyword("List"))),
	Example: paragraph("audiooverview speakers script.txt\naudiooverview speakers --voice Bob=onyx script.txt"),
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

		for _, s := range scenario.ExtractSpeakerNames(text) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s, assignment[s])
		}
		return nil
	},
}

func init() {
	speakersCmd.Flags().StringArrayVarP(&voiceFlags, "voice", "v", nil, "assign a voice to a speaker as Name=voice (repeatable)")
}
