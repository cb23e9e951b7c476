package main

import (
	"context"
	"fmt"

	"github.com/dridley/gats/internal/hierarchy"
	"github.com/spf13/cobra"
)

func newSprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Sprint management commands",
	}

	cmd.AddCommand(newSprintCreateCmd())
	cmd.AddCommand(newSprintUpdateCmd())
	cmd.AddCommand(newSprintDeleteCmd())
	return cmd
}

func newSprintCreateCmd() *cobra.Command {
	var (
		configPath string
		projectID  uint
		title      string
		start      string
		end        string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a sprint in a project",
		Long:  "Creates a sprint and links it to the given project. Dates use YYYY-MM-DD.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := sprintInput(title, start, end)
			if err != nil {
				return err
			}
			return runSprintCreate(cmd, configPath, projectID, in)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().UintVar(&projectID, "project", 0, "owning project id (required)")
	cmd.Flags().StringVar(&title, "title", "", "sprint title (required)")
	cmd.Flags().StringVar(&start, "start", "", "start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "end date, YYYY-MM-DD (required)")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func sprintInput(title, start, end string) (hierarchy.SprintInput, error) {
	s, err := hierarchy.ParseDate("start date", start)
	if err != nil {
		return hierarchy.SprintInput{}, err
	}
	e, err := hierarchy.ParseDate("end date", end)
	if err != nil {
		return hierarchy.SprintInput{}, err
	}
	return hierarchy.SprintInput{Title: title, Start: s, End: e}, nil
}

func runSprintCreate(cmd *cobra.Command, configPath string, projectID uint, in hierarchy.SprintInput) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	id, err := repo.CreateSprint(context.Background(), projectID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created sprint %d in project %d: %s\n", id, projectID, in.Title)
	return nil
}

func newSprintUpdateCmd() *cobra.Command {
	var (
		configPath string
		title      string
		start      string
		end        string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a sprint",
		Long:  "Updates the given fields of a sprint. Fields whose flags are not passed keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("sprint", args[0])
			if err != nil {
				return err
			}
			return runSprintUpdate(cmd, configPath, id, func(in *hierarchy.SprintInput) error {
				if cmd.Flags().Changed("title") {
					in.Title = title
				}
				if cmd.Flags().Changed("start") {
					t, err := hierarchy.ParseDate("start date", start)
					if err != nil {
						return err
					}
					in.Start = t
				}
				if cmd.Flags().Changed("end") {
					t, err := hierarchy.ParseDate("end date", end)
					if err != nil {
						return err
					}
					in.End = t
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&start, "start", "", "new start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "new end date, YYYY-MM-DD")
	return cmd
}

func runSprintUpdate(cmd *cobra.Command, configPath string, id uint, edit func(*hierarchy.SprintInput) error) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	current, err := repo.GetSprint(ctx, id)
	if err != nil {
		return err
	}
	in := hierarchy.SprintInput{Title: current.Title, Start: current.StartDate, End: current.EndDate}
	if err := edit(&in); err != nil {
		return err
	}

	if err := repo.UpdateSprint(ctx, id, in); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated sprint %d\n", id)
	return nil
}

func newSprintDeleteCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sprint with its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("sprint", args[0])
			if err != nil {
				return err
			}
			return runSprintDelete(cmd, configPath, id, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runSprintDelete(cmd *cobra.Command, configPath string, id uint, yes bool) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	s, err := repo.GetSprint(ctx, id)
	if err != nil {
		return err
	}
	ok, err := confirm(cmd, yes, fmt.Sprintf("This will delete sprint %q with all of its tasks.", s.Title))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}

	if err := repo.DeleteSprint(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted sprint %d\n", id)
	return nil
}
