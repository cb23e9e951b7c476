package models

import "time"

// Sprint is a dated iteration within a project.
type Sprint struct {
	ID        uint      `gorm:"column:SprintID;primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"column:Title;size:255;not null" json:"title"`
	StartDate time.Time `gorm:"column:startDate;type:date" json:"start_date"`
	EndDate   time.Time `gorm:"column:endDate;type:date" json:"end_date"`
}

func (Sprint) TableName() string { return "Sprint" }
