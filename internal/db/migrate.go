package db

import (
	"fmt"
	"time"

	"github.com/dridley/gats/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every table of the project hierarchy for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Project{},
		&models.Sprint{},
		&models.Task{},
		&models.Member{},
		&models.ProjectSprint{},
		&models.PartOf{},
		&models.ContributesTo{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedDemo inserts a small sample hierarchy in one transaction: one project
// with two sprints, a handful of tasks and two members.
func SeedDemo(db *gorm.DB) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		project := models.Project{Title: "Alpha", Description: "Sample project"}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
		for i, title := range []string{"Sprint 1", "Sprint 2"} {
			sprint := models.Sprint{
				Title:     title,
				StartDate: start.AddDate(0, 0, 14*i),
				EndDate:   start.AddDate(0, 0, 14*i+13),
			}
			if err := tx.Create(&sprint).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.ProjectSprint{ProjectID: project.ID, SprintID: sprint.ID}).Error; err != nil {
				return err
			}
			tasks := []models.Task{
				{Title: "Design schema", Status: models.StatusCompleted, CommittedHours: 6, EstimatedHours: 5},
				{Title: "Build cursor", Status: models.StatusInProgress, CommittedHours: 3, EstimatedHours: 8},
				{Title: "Write docs", Status: models.StatusNotStarted, EstimatedHours: 2},
			}
			for j := range tasks {
				if err := tx.Create(&tasks[j]).Error; err != nil {
					return err
				}
				if err := tx.Create(&models.PartOf{SprintID: sprint.ID, TaskID: tasks[j].ID}).Error; err != nil {
					return err
				}
			}
		}

		members := []models.Member{
			{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"},
		}
		for i := range members {
			if err := tx.Create(&members[i]).Error; err != nil {
				return err
			}
		}
		return tx.Create(&models.ContributesTo{ProjectID: project.ID, MemberID: members[0].ID, Role: "lead"}).Error
	})
	if err != nil {
		return fmt.Errorf("db: seed demo data: %w", err)
	}
	return nil
}
