package models

// TaskStatus is the progress state of a task. Values outside the known
// vocabulary are stored as-is and reported as unrecognized.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "NotStarted"
	StatusInProgress TaskStatus = "InProgress"
	StatusCompleted  TaskStatus = "Completed"
)

// Known reports whether s is one of the recognized statuses.
func (s TaskStatus) Known() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Glyph returns the single-character marker used in listings.
func (s TaskStatus) Glyph() string {
	switch s {
	case StatusNotStarted:
		return "⏳"
	case StatusInProgress:
		return "🚧"
	case StatusCompleted:
		return "✅"
	default:
		return "❓"
	}
}

// Task is a unit of work inside a sprint.
type Task struct {
	ID             uint       `gorm:"column:TaskID;primaryKey;autoIncrement" json:"id"`
	Title          string     `gorm:"column:Title;size:255;not null" json:"title"`
	Status         TaskStatus `gorm:"column:Status;size:32;default:NotStarted" json:"status"`
	Description    string     `gorm:"column:Description;type:text" json:"description"`
	CommittedHours int        `gorm:"column:committedHours;default:0" json:"committed_hours"`
	EstimatedHours int        `gorm:"column:estimatedHours;default:0" json:"estimated_hours"`
}

func (Task) TableName() string { return "Task" }
