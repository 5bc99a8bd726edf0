package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voicegate/internal/api"
	"voicegate/internal/inference"
)

func newVerdictCommand(ctx *commandContext) *cobra.Command {
	var human bool
	var synthetic bool

	cmd := &cobra.Command{
		Use:   "verdict <stored-filename>",
		Short: "Record a classification verdict for a queued file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if human == synthetic {
				return errors.New("exactly one of --human or --synthetic is required")
			}
			filename := strings.TrimSpace(args[0])
			if filename == "" {
				return errors.New("stored filename must not be empty")
			}

			isHuman := human
			payload := inference.Request{Filename: filename, IsHuman: &isHuman}
			var resp api.MessageResponse
			if err := ctx.postJSON("/inference-result", payload, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&human, "human", false, "Mark the recording as a human voice")
	cmd.Flags().BoolVar(&synthetic, "synthetic", false, "Mark the recording as a synthetic voice")
	return cmd
}
