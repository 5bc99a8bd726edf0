package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"voicegate/internal/api"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var status api.DaemonStatus
			if err := ctx.getJSON("/api/status", &status); err != nil {
				return err
			}
			if jsonOutput || !isTerminal(cmd.OutOrStdout()) {
				return writeJSON(cmd, status)
			}
			printStatus(cmd, status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}

func printStatus(cmd *cobra.Command, status api.DaemonStatus) {
	out := cmd.OutOrStdout()

	state := "stopped"
	if status.Running {
		state = "running"
	}
	fmt.Fprintf(out, "Daemon: %s (pid %d)\n", state, status.PID)
	fmt.Fprintf(out, "API: %s\n", status.Bind)
	fmt.Fprintf(out, "Upload dir: %s\n", status.UploadDir)

	total := 0
	for _, count := range status.QueueStats {
		total += count
	}
	fmt.Fprintf(out, "Queue: %d total", total)
	if total > 0 {
		fmt.Fprintf(out, " (%d awaiting verdict, %d classified)",
			status.QueueStats["queued"], status.QueueStats["classified"])
	}
	fmt.Fprintln(out)

	if len(status.Dependencies) > 0 {
		fmt.Fprintln(out, "Dependencies:")
		for _, dep := range status.Dependencies {
			marker := "ok"
			if !dep.Available {
				marker = "missing"
			}
			fmt.Fprintf(out, "  %-10s %s", dep.Name, marker)
			if dep.Detail != "" {
				fmt.Fprintf(out, " (%s)", dep.Detail)
			}
			fmt.Fprintln(out)
		}
	}
}
