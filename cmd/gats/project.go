package main

import (
	"context"
	"fmt"

	"github.com/dridley/gats/internal/hierarchy"
	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project management commands",
	}

	cmd.AddCommand(newProjectCreateCmd())
	cmd.AddCommand(newProjectUpdateCmd())
	cmd.AddCommand(newProjectDeleteCmd())
	return cmd
}

func newProjectCreateCmd() *cobra.Command {
	var (
		configPath  string
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectCreate(cmd, configPath, hierarchy.ProjectInput{
				Title:       title,
				Description: description,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().StringVar(&title, "title", "", "project title (required)")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.MarkFlagRequired("title")
	return cmd
}

func runProjectCreate(cmd *cobra.Command, configPath string, in hierarchy.ProjectInput) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	id, err := repo.CreateProject(context.Background(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created project %d: %s\n", id, in.Title)
	return nil
}

func newProjectUpdateCmd() *cobra.Command {
	var (
		configPath  string
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Long:  "Updates the given fields of a project. Fields whose flags are not passed keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project", args[0])
			if err != nil {
				return err
			}
			return runProjectUpdate(cmd, configPath, id, func(in *hierarchy.ProjectInput) {
				if cmd.Flags().Changed("title") {
					in.Title = title
				}
				if cmd.Flags().Changed("description") {
					in.Description = description
				}
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	return cmd
}

func runProjectUpdate(cmd *cobra.Command, configPath string, id uint, edit func(*hierarchy.ProjectInput)) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	current, err := repo.GetProject(ctx, id)
	if err != nil {
		return err
	}
	in := hierarchy.ProjectInput{Title: current.Title, Description: current.Description}
	edit(&in)

	if err := repo.UpdateProject(ctx, id, in); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated project %d\n", id)
	return nil
}

func newProjectDeleteCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project with its sprints and tasks",
		Long:  "Deletes a project, every sprint in it, every task in those sprints, and its membership rows. Members themselves are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project", args[0])
			if err != nil {
				return err
			}
			return runProjectDelete(cmd, configPath, id, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runProjectDelete(cmd *cobra.Command, configPath string, id uint, yes bool) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	p, err := repo.GetProject(ctx, id)
	if err != nil {
		return err
	}
	ok, err := confirm(cmd, yes, fmt.Sprintf("This will delete project %q with all of its sprints and tasks.", p.Title))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}

	if err := repo.DeleteProject(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %d\n", id)
	return nil
}
