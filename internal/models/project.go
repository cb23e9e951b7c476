package models

// Project is the root of the hierarchy. Sprints hang off it through
// ProjectSprint rows and members through ContributesTo rows.
type Project struct {
	ID          uint   `gorm:"column:ProjectID;primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"column:Title;size:255;not null" json:"title"`
	Description string `gorm:"column:Description;type:text" json:"description"`
}

func (Project) TableName() string { return "Project" }
