package hierarchy

import (
	"strings"
	"time"

	"github.com/dridley/gats/internal/models"
)

// DateLayout is the calendar date format accepted for sprint dates.
const DateLayout = "2006-01-02"

// ProjectInput carries the editable fields of a project.
type ProjectInput struct {
	Title       string
	Description string
}

// Validate checks the input against the project rules.
func (in ProjectInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// SprintInput carries the editable fields of a sprint.
type SprintInput struct {
	Title string
	Start time.Time
	End   time.Time
}

// Validate checks the input against the sprint rules. A sprint must not end
// before it starts.
func (in SprintInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Start.IsZero() {
		return &ValidationError{Field: "start date", Reason: "is required"}
	}
	if in.End.IsZero() {
		return &ValidationError{Field: "end date", Reason: "is required"}
	}
	if in.End.Before(in.Start) {
		return &ValidationError{
			Field:  "end date",
			Reason: in.End.Format(DateLayout) + " is before start date " + in.Start.Format(DateLayout),
		}
	}
	return nil
}

// TaskInput carries the editable fields of a task. An empty Status means
// NotStarted.
type TaskInput struct {
	Title          string
	Status         models.TaskStatus
	Description    string
	CommittedHours int
	EstimatedHours int
}

// Validate checks the input against the task rules.
func (in TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.CommittedHours < 0 {
		return &ValidationError{Field: "committed hours", Reason: "must not be negative"}
	}
	if in.EstimatedHours < 0 {
		return &ValidationError{Field: "estimated hours", Reason: "must not be negative"}
	}
	return nil
}

func (in TaskInput) status() models.TaskStatus {
	if s := models.TaskStatus(strings.TrimSpace(string(in.Status))); s != "" {
		return s
	}
	return models.StatusNotStarted
}

// MemberInput carries the editable fields of a member.
type MemberInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Validate checks the input against the member rules.
func (in MemberInput) Validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return &ValidationError{Field: "first name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.LastName) == "" {
		return &ValidationError{Field: "last name", Reason: "must not be empty"}
	}
	if e := strings.TrimSpace(in.Email); e != "" && !strings.Contains(e, "@") {
		return &ValidationError{Field: "email", Reason: "must contain @"}
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date. field names the input in the
// returned ValidationError.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Reason: "want YYYY-MM-DD, got " + strings.TrimSpace(s)}
	}
	return t, nil
}

// ParseStatus maps user input onto the status vocabulary, accepting the
// canonical names case-insensitively along with a few common spellings.
// Anything else is kept verbatim.
func ParseStatus(s string) models.TaskStatus {
	norm := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.TrimSpace(s)))
	switch norm {
	case "", "notstarted", "todo":
		return models.StatusNotStarted
	case "inprogress", "doing":
		return models.StatusInProgress
	case "completed", "done":
		return models.StatusCompleted
	}
	return models.TaskStatus(strings.TrimSpace(s))
}
