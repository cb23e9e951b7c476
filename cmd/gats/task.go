package main

import (
	"context"
	"fmt"

	"github.com/dridley/gats/internal/hierarchy"
	"github.com/spf13/cobra"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
	}

	cmd.AddCommand(newTaskCreateCmd())
	cmd.AddCommand(newTaskUpdateCmd())
	cmd.AddCommand(newTaskDeleteCmd())
	return cmd
}

func newTaskCreateCmd() *cobra.Command {
	var (
		configPath  string
		sprintID    uint
		title       string
		status      string
		description string
		committed   int
		estimated   int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task in a sprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskCreate(cmd, configPath, sprintID, hierarchy.TaskInput{
				Title:          title,
				Status:         hierarchy.ParseStatus(status),
				Description:    description,
				CommittedHours: committed,
				EstimatedHours: estimated,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().UintVar(&sprintID, "sprint", 0, "owning sprint id (required)")
	cmd.Flags().StringVar(&title, "title", "", "task title (required)")
	cmd.Flags().StringVar(&status, "status", "", "status (NotStarted, InProgress, Completed)")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().IntVar(&committed, "committed", 0, "committed hours")
	cmd.Flags().IntVar(&estimated, "estimated", 0, "estimated hours")
	cmd.MarkFlagRequired("sprint")
	cmd.MarkFlagRequired("title")
	return cmd
}

func runTaskCreate(cmd *cobra.Command, configPath string, sprintID uint, in hierarchy.TaskInput) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	id, err := repo.CreateTask(context.Background(), sprintID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created task %d in sprint %d: %s\n", id, sprintID, in.Title)
	return nil
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		configPath  string
		title       string
		status      string
		description string
		committed   int
		estimated   int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Long:  "Updates the given fields of a task. Fields whose flags are not passed keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			return runTaskUpdate(cmd, configPath, id, func(in *hierarchy.TaskInput) {
				if cmd.Flags().Changed("title") {
					in.Title = title
				}
				if cmd.Flags().Changed("status") {
					in.Status = hierarchy.ParseStatus(status)
				}
				if cmd.Flags().Changed("description") {
					in.Description = description
				}
				if cmd.Flags().Changed("committed") {
					in.CommittedHours = committed
				}
				if cmd.Flags().Changed("estimated") {
					in.EstimatedHours = estimated
				}
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().IntVar(&committed, "committed", 0, "new committed hours")
	cmd.Flags().IntVar(&estimated, "estimated", 0, "new estimated hours")
	return cmd
}

func runTaskUpdate(cmd *cobra.Command, configPath string, id uint, edit func(*hierarchy.TaskInput)) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	current, err := repo.GetTask(ctx, id)
	if err != nil {
		return err
	}
	in := hierarchy.TaskInput{
		Title:          current.Title,
		Status:         current.Status,
		Description:    current.Description,
		CommittedHours: current.CommittedHours,
		EstimatedHours: current.EstimatedHours,
	}
	edit(&in)

	if err := repo.UpdateTask(ctx, id, in); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d\n", id)
	return nil
}

func newTaskDeleteCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			return runTaskDelete(cmd, configPath, id, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runTaskDelete(cmd *cobra.Command, configPath string, id uint, yes bool) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	t, err := repo.GetTask(ctx, id)
	if err != nil {
		return err
	}
	ok, err := confirm(cmd, yes, fmt.Sprintf("This will delete task %q.", t.Title))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}

	if err := repo.DeleteTask(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
	return nil
}
