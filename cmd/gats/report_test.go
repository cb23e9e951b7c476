package main

import (
	"strings"
	"testing"
)

func TestReportCmd_Once(t *testing.T) {
	cfgPath := seededConfig(t)

	out := mustRun(t, "report", "-c", cfgPath)
	for _, want := range []string{"Sprint report", "Alpha", "Sprint 1", "Sprint 2", "Total: 6 tasks, 2 completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q: %s", want, out)
		}
	}
}

func TestReportCmd_ScheduleWithoutCron(t *testing.T) {
	cfgPath := seededConfig(t)

	_, err := run(t, "", "report", "-c", cfgPath, "--schedule")
	if err == nil {
		t.Fatal("expected error when report.cron is unset")
	}
	if !strings.Contains(err.Error(), "report.cron") {
		t.Errorf("error = %q, want to mention report.cron", err)
	}
}

func TestReportCmd_BadCron(t *testing.T) {
	cfgPath := seededConfig(t)

	_, err := run(t, "", "report", "-c", cfgPath, "--cron", "every tuesday")
	if err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestServeCmd_Flags(t *testing.T) {
	out := mustRun(t, "serve", "--help")
	for _, want := range []string{"--port", "--config"} {
		if !strings.Contains(out, want) {
			t.Errorf("serve help missing %q: %s", want, out)
		}
	}
}
