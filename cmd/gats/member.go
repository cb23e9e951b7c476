package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dridley/gats/internal/hierarchy"
	"github.com/spf13/cobra"
)

func newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Member directory and project membership commands",
	}

	cmd.AddCommand(newMemberListCmd())
	cmd.AddCommand(newMemberCreateCmd())
	cmd.AddCommand(newMemberUpdateCmd())
	cmd.AddCommand(newMemberDeleteCmd())
	cmd.AddCommand(newMemberAddCmd())
	cmd.AddCommand(newMemberRemoveCmd())
	return cmd
}

func newMemberListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every member",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemberList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	return cmd
}

func runMemberList(cmd *cobra.Command, configPath string) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	members, err := repo.ListMembers(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(members) == 0 {
		fmt.Fprintln(out, "No members found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, m := range members {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, truncate(m.FullName(), 40), m.Email, m.Phone)
	}
	return w.Flush()
}

type memberFlags struct {
	first string
	last  string
	email string
	phone string
}

func (f *memberFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.first, "first", "", "first name")
	cmd.Flags().StringVar(&f.last, "last", "", "last name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
}

func newMemberCreateCmd() *cobra.Command {
	var (
		configPath string
		f          memberFlags
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a member to the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemberCreate(cmd, configPath, hierarchy.MemberInput{
				FirstName: f.first,
				LastName:  f.last,
				Email:     f.email,
				Phone:     f.phone,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	f.register(cmd)
	cmd.MarkFlagRequired("first")
	cmd.MarkFlagRequired("last")
	return cmd
}

func runMemberCreate(cmd *cobra.Command, configPath string, in hierarchy.MemberInput) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	id, err := repo.CreateMember(context.Background(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created member %d: %s %s\n", id, in.FirstName, in.LastName)
	return nil
}

func newMemberUpdateCmd() *cobra.Command {
	var (
		configPath string
		f          memberFlags
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a member",
		Long:  "Updates the given fields of a member. Fields whose flags are not passed keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("member", args[0])
			if err != nil {
				return err
			}
			return runMemberUpdate(cmd, configPath, id, func(in *hierarchy.MemberInput) {
				if cmd.Flags().Changed("first") {
					in.FirstName = f.first
				}
				if cmd.Flags().Changed("last") {
					in.LastName = f.last
				}
				if cmd.Flags().Changed("email") {
					in.Email = f.email
				}
				if cmd.Flags().Changed("phone") {
					in.Phone = f.phone
				}
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	f.register(cmd)
	return cmd
}

func runMemberUpdate(cmd *cobra.Command, configPath string, id uint, edit func(*hierarchy.MemberInput)) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	current, err := repo.GetMember(ctx, id)
	if err != nil {
		return err
	}
	in := hierarchy.MemberInput{
		FirstName: current.FirstName,
		LastName:  current.LastName,
		Email:     current.Email,
		Phone:     current.Phone,
	}
	edit(&in)

	if err := repo.UpdateMember(ctx, id, in); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated member %d\n", id)
	return nil
}

func newMemberDeleteCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a member from the directory and from every project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("member", args[0])
			if err != nil {
				return err
			}
			return runMemberDelete(cmd, configPath, id, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runMemberDelete(cmd *cobra.Command, configPath string, id uint, yes bool) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	m, err := repo.GetMember(ctx, id)
	if err != nil {
		return err
	}
	ok, err := confirm(cmd, yes, fmt.Sprintf("This will delete member %s and all of their project memberships.", m.FullName()))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}

	if err := repo.DeleteMember(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted member %d\n", id)
	return nil
}

func newMemberAddCmd() *cobra.Command {
	var (
		configPath string
		projectID  uint
		memberID   uint
		role       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemberAdd(cmd, configPath, projectID, memberID, role)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().UintVar(&projectID, "project", 0, "project id (required)")
	cmd.Flags().UintVar(&memberID, "member", 0, "member id (required)")
	cmd.Flags().StringVar(&role, "role", "", "role on the project")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("member")
	return cmd
}

func runMemberAdd(cmd *cobra.Command, configPath string, projectID, memberID uint, role string) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := repo.AddMember(context.Background(), projectID, memberID, role); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added member %d to project %d\n", memberID, projectID)
	return nil
}

func newMemberRemoveCmd() *cobra.Command {
	var (
		configPath string
		projectID  uint
		memberID   uint
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a member from a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemberRemove(cmd, configPath, projectID, memberID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to GATs config file")
	cmd.Flags().UintVar(&projectID, "project", 0, "project id (required)")
	cmd.Flags().UintVar(&memberID, "member", 0, "member id (required)")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("member")
	return cmd
}

func runMemberRemove(cmd *cobra.Command, configPath string, projectID, memberID uint) error {
	_, repo, closeDB, err := openRepository(cmd, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := repo.RemoveMember(context.Background(), projectID, memberID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed member %d from project %d\n", memberID, projectID)
	return nil
}
