package main

import (
	"fmt"

	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/spf13/cobra"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the available voices",
	Long:  paragraph(fmt.Sprintf("\n%s the voices speakers can be assigned. Speakers without a --voice get them in this order.", keyword("List"))),
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, v := range tts.Voices() {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	},
}
