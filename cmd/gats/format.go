package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dridley/gats/internal/hierarchy"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// errNotInteractive is returned when a destructive command needs a
// confirmation that cannot be asked for.
var errNotInteractive = errors.New("stdin is not a terminal; pass --yes to confirm")

// confirm asks the user to type "yes" before a destructive action. It
// refuses when stdin is a file or pipe that is not a terminal.
func confirm(cmd *cobra.Command, skip bool, warning string) (bool, error) {
	if skip {
		return true, nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, errNotInteractive
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "WARNING: %s\n", warning)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes", nil
	}
	return false, nil
}

// writeTree prints the hierarchy as an indented outline.
func writeTree(out io.Writer, tree hierarchy.Tree, members bool) {
	if tree.ProjectCount() == 0 {
		fmt.Fprintln(out, "No projects found.")
		return
	}
	for _, p := range tree.Projects {
		fmt.Fprintf(out, "%s (#%d)\n", p.Title, p.ID)
		if members {
			for _, m := range p.Members {
				role := ""
				if m.Role != "" {
					role = ", " + m.Role
				}
				fmt.Fprintf(out, "  @ %s (#%d%s)\n", m.FullName(), m.ID, role)
			}
		}
		if len(p.Sprints) == 0 {
			fmt.Fprintln(out, "  (no sprints)")
		}
		for _, s := range p.Sprints {
			fmt.Fprintf(out, "  %s (#%d) %s..%s\n", s.Title, s.ID,
				s.StartDate.Format(hierarchy.DateLayout), s.EndDate.Format(hierarchy.DateLayout))
			for _, t := range s.Tasks {
				fmt.Fprintf(out, "    %s %s (#%d) %d/%dh\n",
					t.Status.Glyph(), truncate(t.Title, 60), t.ID, t.CommittedHours, t.EstimatedHours)
			}
		}
	}
}
