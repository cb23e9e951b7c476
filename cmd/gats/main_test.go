package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "gats dev") {
		t.Errorf("expected output to contain 'gats dev', got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected output to contain 'commit: none', got: %s", out)
	}
}

func TestVersionCmdWithCustomValues(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.0.0", "abc123", "2026-01-01"
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"gats 1.0.0", "commit: abc123", "built: 2026-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestRootCmdHelp(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help command failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "GATs") {
		t.Errorf("expected help output to contain 'GATs', got: %s", out)
	}
	for _, sub := range []string{"version", "db", "tree", "project", "sprint", "task", "member", "report", "serve"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help output to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestExecute_ReturnsExitCode(t *testing.T) {
	ok := newRootCmd()
	ok.SetOut(new(bytes.Buffer))
	ok.SetArgs([]string{"version"})
	if code := execute(ok); code != 0 {
		t.Errorf("execute(version) = %d, want 0", code)
	}

	bad := newRootCmd()
	buf := new(bytes.Buffer)
	bad.SetOut(buf)
	bad.SetErr(buf)
	bad.SetArgs([]string{"no-such-command"})
	if code := execute(bad); code != 1 {
		t.Errorf("execute(no-such-command) = %d, want 1", code)
	}
}

// writeTestConfig writes a sqlite config into a temp dir and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gats.yaml")
	body := "database:\n  driver: sqlite\n  path: " + filepath.Join(dir, "gats.db") + "\nlog:\n  level: error\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// seededConfig returns a config path for a freshly initialized and seeded
// database.
func seededConfig(t *testing.T) string {
	t.Helper()
	cfgPath := writeTestConfig(t)
	if out, err := run(t, "", "db", "init", "-c", cfgPath, "--seed"); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}
	return cfgPath
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}
