package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const defaultConfigPath = "gats.yaml"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gats",
		Short: "GATs: projects, sprints and tasks",
		Long:  "GATs tracks projects, their sprints and tasks, and the members who contribute to them.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newProjectCmd())
	cmd.AddCommand(newSprintCmd())
	cmd.AddCommand(newTaskCmd())
	cmd.AddCommand(newMemberCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gats %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
