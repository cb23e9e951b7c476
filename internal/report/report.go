// Package report summarizes sprint progress from a loaded hierarchy and
// prints the summary on a cron schedule.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dridley/gats/internal/hierarchy"
	"github.com/dridley/gats/internal/models"
)

// SprintSummary holds task counts and hours for one sprint.
type SprintSummary struct {
	ProjectID      uint
	Project        string
	SprintID       uint
	Sprint         string
	Start          time.Time
	End            time.Time
	Active         bool
	Tasks          int
	NotStarted     int
	InProgress     int
	Completed      int
	Unrecognized   int
	CommittedHours int
	EstimatedHours int
}

// Report is a point-in-time summary of every sprint in the tree.
type Report struct {
	GeneratedAt time.Time
	Sprints     []SprintSummary
}

// Build summarizes tree as of now. Sprints keep the tree's order.
func Build(tree hierarchy.Tree, now time.Time) *Report {
	r := &Report{GeneratedAt: now}
	for _, p := range tree.Projects {
		for _, s := range p.Sprints {
			sum := SprintSummary{
				ProjectID: p.ID,
				Project:   p.Title,
				SprintID:  s.ID,
				Sprint:    s.Title,
				Start:     s.StartDate,
				End:       s.EndDate,
				Active:    activeOn(s.Sprint, now),
				Tasks:     len(s.Tasks),
			}
			for _, t := range s.Tasks {
				switch t.Status {
				case models.StatusNotStarted:
					sum.NotStarted++
				case models.StatusInProgress:
					sum.InProgress++
				case models.StatusCompleted:
					sum.Completed++
				default:
					sum.Unrecognized++
				}
				sum.CommittedHours += t.CommittedHours
				sum.EstimatedHours += t.EstimatedHours
			}
			r.Sprints = append(r.Sprints, sum)
		}
	}
	return r
}

// activeOn reports whether now falls on a day between the sprint's start and
// end dates, inclusive.
func activeOn(s models.Sprint, now time.Time) bool {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(s.StartDate.Year(), s.StartDate.Month(), s.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(s.EndDate.Year(), s.EndDate.Month(), s.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}

// Progress is the completed share of tasks, 0 for an empty sprint.
func (s SprintSummary) Progress() float64 {
	if s.Tasks == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Tasks)
}

// Totals sums every sprint in the report.
func (r *Report) Totals() SprintSummary {
	var t SprintSummary
	for _, s := range r.Sprints {
		t.Tasks += s.Tasks
		t.NotStarted += s.NotStarted
		t.InProgress += s.InProgress
		t.Completed += s.Completed
		t.Unrecognized += s.Unrecognized
		t.CommittedHours += s.CommittedHours
		t.EstimatedHours += s.EstimatedHours
	}
	return t
}

// Write renders the report as a table.
func Write(w io.Writer, r *Report) error {
	if len(r.Sprints) == 0 {
		_, err := fmt.Fprintln(w, "No sprints found.")
		return err
	}

	fmt.Fprintf(w, "Sprint report (%s)\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tSPRINT\tDATES\tTASKS\t"+statusHeader()+"\tHOURS\tDONE")
	for _, s := range r.Sprints {
		name := truncate(s.Sprint, 30)
		if s.Active {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s..%s\t%d\t%d/%d/%d/%d\t%d/%d\t%3.0f%%\n",
			truncate(s.Project, 24), name,
			s.Start.Format(hierarchy.DateLayout), s.End.Format(hierarchy.DateLayout),
			s.Tasks, s.NotStarted, s.InProgress, s.Completed, s.Unrecognized,
			s.CommittedHours, s.EstimatedHours, s.Progress()*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	t := r.Totals()
	_, err := fmt.Fprintf(w, "\nTotal: %d tasks, %d completed, %d committed of %d estimated hours\n",
		t.Tasks, t.Completed, t.CommittedHours, t.EstimatedHours)
	return err
}

// statusHeader lists the status glyphs in column order.
func statusHeader() string {
	return strings.Join([]string{
		models.StatusNotStarted.Glyph(),
		models.StatusInProgress.Glyph(),
		models.StatusCompleted.Glyph(),
		models.TaskStatus("").Glyph(),
	}, "/")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
