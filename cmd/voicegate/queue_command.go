package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voicegate/internal/api"
	"voicegate/internal/uploads"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show the review queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []api.QueueEntry
			if err := ctx.getJSON("/queue", &entries); err != nil {
				return err
			}
			if jsonOutput || !isTerminal(cmd.OutOrStdout()) {
				return writeJSON(cmd, entries)
			}
			printQueueTable(cmd, entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func printQueueTable(cmd *cobra.Command, entries []api.QueueEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
		return
	}

	headers := []string{"Title", "File", "Verdict", "Observed", "Download"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		verdict, observed := verdictCells(entry.InferenceResult)
		rows = append(rows, []string{
			uploads.DisplayTitle(entry.OriginalName),
			entry.OriginalName,
			verdict,
			observed,
			entry.DownloadURL,
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
}

func verdictCells(result *api.InferenceResult) (verdict, observed string) {
	if result == nil {
		return "pending", "-"
	}
	observed = result.Timestamp
	if strings.TrimSpace(observed) == "" {
		observed = "-"
	}
	if result.IsHuman {
		return "human", observed
	}
	return "synthetic", observed
}
