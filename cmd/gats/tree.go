package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newTreeCmd() *cobra.Command {
	var (
		configPath string
		members    bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show projects, sprints and tasks",
		Long:  "Loads the full hierarchy and prints it as an outline with task status and hours.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, configPath, members)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().BoolVarP(&members, "members", "m", false, "include project members")
	return cmd
}

func runTree(cmd *cobra.Command, configPath string, members bool) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	tree, err := repo.LoadAll(context.Background())
	if err != nil {
		return err
	}

	writeTree(cmd.OutOrStdout(), tree, members)
	return nil
}
