package main

import (
	"strings"
	"testing"

	"github.com/dridley/gats/internal/hierarchy"
)

func TestProjectCmd_Help(t *testing.T) {
	for _, group := range []string{"project", "sprint", "task"} {
		out := mustRun(t, group, "--help")
		for _, sub := range []string{"create", "update", "delete"} {
			if !strings.Contains(out, sub) {
				t.Errorf("%s help missing %q subcommand: %s", group, sub, out)
			}
		}
	}
}

func TestProjectCreate_RequiresTitle(t *testing.T) {
	cfgPath := writeTestConfig(t)
	_, err := run(t, "", "project", "create", "-c", cfgPath)
	if err == nil {
		t.Fatal("expected error without --title")
	}
	if !strings.Contains(err.Error(), "title") {
		t.Errorf("error = %q, want to mention title", err)
	}
}

func TestProjectLifecycle(t *testing.T) {
	cfgPath := seededConfig(t)

	out := mustRun(t, "project", "create", "-c", cfgPath, "--title", "Beta", "--description", "second")
	if !strings.Contains(out, "Created project 2: Beta") {
		t.Errorf("create output = %q", out)
	}

	mustRun(t, "project", "update", "2", "-c", cfgPath, "--title", "Gamma")
	tree := mustRun(t, "tree", "-c", cfgPath)
	if !strings.Contains(tree, "Gamma (#2)") || strings.Contains(tree, "Beta") {
		t.Errorf("tree after rename = %s", tree)
	}

	mustRun(t, "project", "delete", "1", "-c", cfgPath, "--yes")
	tree = mustRun(t, "tree", "-c", cfgPath)
	if strings.Contains(tree, "Alpha") || strings.Contains(tree, "Sprint 1") {
		t.Errorf("cascade left rows behind: %s", tree)
	}

	members := mustRun(t, "member", "list", "-c", cfgPath)
	if !strings.Contains(members, "Ada Lovelace") {
		t.Errorf("project delete removed a member: %s", members)
	}
}

func TestProjectUpdate_KeepsUnchangedFields(t *testing.T) {
	cfgPath := seededConfig(t)
	mustRun(t, "project", "update", "1", "-c", cfgPath, "--description", "changed")

	tree := mustRun(t, "tree", "-c", cfgPath)
	if !strings.Contains(tree, "Alpha (#1)") {
		t.Errorf("title should survive a description-only update: %s", tree)
	}
}

func TestProjectUpdate_NotFound(t *testing.T) {
	cfgPath := seededConfig(t)
	_, err := run(t, "", "project", "update", "99", "-c", cfgPath, "--title", "x")
	if !hierarchy.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestProjectDelete_InvalidID(t *testing.T) {
	cfgPath := seededConfig(t)
	for _, arg := range []string{"abc", "0", "-1"} {
		if _, err := run(t, "", "project", "delete", arg, "-c", cfgPath, "--yes"); err == nil {
			t.Errorf("delete %q: expected error", arg)
		}
	}
}

func TestProjectDelete_Aborted(t *testing.T) {
	cfgPath := seededConfig(t)
	out, err := run(t, "nope\n", "project", "delete", "1", "-c", cfgPath)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "Aborted.") {
		t.Errorf("expected Aborted., got: %s", out)
	}

	out, err = run(t, "yes\n", "project", "delete", "1", "-c", cfgPath)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "Deleted project 1") {
		t.Errorf("expected deletion after typing yes, got: %s", out)
	}
}

func TestSprintLifecycle(t *testing.T) {
	cfgPath := seededConfig(t)

	out := mustRun(t, "sprint", "create", "-c", cfgPath,
		"--project", "1", "--title", "Sprint 3", "--start", "2024-04-01", "--end", "2024-04-14")
	if !strings.Contains(out, "Created sprint 3 in project 1") {
		t.Errorf("create output = %q", out)
	}

	mustRun(t, "sprint", "update", "3", "-c", cfgPath, "--end", "2024-04-21")
	tree := mustRun(t, "tree", "-c", cfgPath)
	if !strings.Contains(tree, "Sprint 3 (#3) 2024-04-01..2024-04-21") {
		t.Errorf("tree after end date update = %s", tree)
	}

	mustRun(t, "sprint", "delete", "1", "-c", cfgPath, "-y")
	tree = mustRun(t, "tree", "-c", cfgPath)
	if strings.Contains(tree, "Sprint 1 ") {
		t.Errorf("sprint 1 still present: %s", tree)
	}
	if got := strings.Count(tree, "Design schema"); got != 1 {
		t.Errorf("Design schema appears %d times after deleting sprint 1, want 1", got)
	}
}

func TestSprintCreate_Validation(t *testing.T) {
	cfgPath := seededConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad date", []string{"--start", "04/01/2024", "--end", "2024-04-14"}, "start date"},
		{"end before start", []string{"--start", "2024-04-14", "--end", "2024-04-01"}, "end date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"sprint", "create", "-c", cfgPath, "--project", "1", "--title", "S"}, tt.args...)
			_, err := run(t, "", args...)
			if !hierarchy.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want to mention %q", err, tt.want)
			}
		})
	}
}

func TestSprintCreate_UnknownProject(t *testing.T) {
	cfgPath := seededConfig(t)
	_, err := run(t, "", "sprint", "create", "-c", cfgPath,
		"--project", "42", "--title", "S", "--start", "2024-04-01", "--end", "2024-04-02")
	if !hierarchy.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	cfgPath := seededConfig(t)

	out := mustRun(t, "task", "create", "-c", cfgPath,
		"--sprint", "2", "--title", "Ship it", "--status", "in progress", "--estimated", "4")
	if !strings.Contains(out, "Created task 7 in sprint 2") {
		t.Errorf("create output = %q", out)
	}

	mustRun(t, "task", "update", "7", "-c", cfgPath, "--status", "done", "--committed", "5")
	tree := mustRun(t, "tree", "-c", cfgPath)
	if !strings.Contains(tree, "✅ Ship it (#7) 5/4h") {
		t.Errorf("tree after task update = %s", tree)
	}

	mustRun(t, "task", "delete", "7", "-c", cfgPath, "--yes")
	tree = mustRun(t, "tree", "-c", cfgPath)
	if strings.Contains(tree, "Ship it") {
		t.Errorf("task still present: %s", tree)
	}
}

func TestTaskCreate_NegativeHours(t *testing.T) {
	cfgPath := seededConfig(t)
	_, err := run(t, "", "task", "create", "-c", cfgPath, "--sprint", "1", "--title", "x", "--committed=-1")
	if !hierarchy.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestTaskDelete_NotFound(t *testing.T) {
	cfgPath := seededConfig(t)
	_, err := run(t, "", "task", "delete", "99", "-c", cfgPath, "--yes")
	if !hierarchy.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}
