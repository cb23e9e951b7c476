package hierarchy

import (
	"context"
	"fmt"

	"github.com/dridley/gats/internal/models"
	"gorm.io/gorm"
)

// DeleteProject removes a project with every sprint and task below it.
// Association rows go first so a store that enforces foreign keys accepts
// each statement: ContributesTo, ProjectSprint, PartOf of the project's
// sprints, those tasks, those sprints, and finally the project row.
func (r *Repository) DeleteProject(ctx context.Context, id uint) error {
	return r.withTx(ctx, "delete", KindProject, id, func(tx *gorm.DB) error {
		var sprintIDs []uint
		if err := tx.Model(&models.ProjectSprint{}).Where("ProjectID = ?", id).Pluck("SprintID", &sprintIDs).Error; err != nil {
			return fmt.Errorf("collect sprints: %w", err)
		}
		taskIDs, err := taskIDsOf(tx, sprintIDs)
		if err != nil {
			return err
		}

		if err := tx.Where("ProjectID = ?", id).Delete(&models.ContributesTo{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := tx.Where("ProjectID = ?", id).Delete(&models.ProjectSprint{}).Error; err != nil {
			return fmt.Errorf("delete project sprints: %w", err)
		}
		if len(sprintIDs) > 0 {
			if err := tx.Where("SprintID IN ?", sprintIDs).Delete(&models.PartOf{}).Error; err != nil {
				return fmt.Errorf("delete sprint tasks: %w", err)
			}
			if len(taskIDs) > 0 {
				if err := tx.Where("TaskID IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
					return fmt.Errorf("delete tasks: %w", err)
				}
			}
			if err := tx.Where("SprintID IN ?", sprintIDs).Delete(&models.Sprint{}).Error; err != nil {
				return fmt.Errorf("delete sprints: %w", err)
			}
		}

		res := tx.Where("ProjectID = ?", id).Delete(&models.Project{})
		if res.Error != nil {
			return fmt.Errorf("delete project: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Kind: KindProject, ID: id}
		}
		r.log.Debug("project deleted", "id", id, "sprints", len(sprintIDs), "tasks", len(taskIDs))
		return nil
	})
}

// DeleteSprint removes a sprint and its tasks: PartOf rows, the
// ProjectSprint row, the tasks those PartOf rows pointed at, then the sprint.
func (r *Repository) DeleteSprint(ctx context.Context, id uint) error {
	return r.withTx(ctx, "delete", KindSprint, id, func(tx *gorm.DB) error {
		taskIDs, err := taskIDsOf(tx, []uint{id})
		if err != nil {
			return err
		}

		if err := tx.Where("SprintID = ?", id).Delete(&models.PartOf{}).Error; err != nil {
			return fmt.Errorf("delete sprint tasks: %w", err)
		}
		if err := tx.Where("SprintID = ?", id).Delete(&models.ProjectSprint{}).Error; err != nil {
			return fmt.Errorf("delete project sprint: %w", err)
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("TaskID IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
				return fmt.Errorf("delete tasks: %w", err)
			}
		}

		res := tx.Where("SprintID = ?", id).Delete(&models.Sprint{})
		if res.Error != nil {
			return fmt.Errorf("delete sprint: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Kind: KindSprint, ID: id}
		}
		r.log.Debug("sprint deleted", "id", id, "tasks", len(taskIDs))
		return nil
	})
}

// DeleteTask removes the task's PartOf row, then the task.
func (r *Repository) DeleteTask(ctx context.Context, id uint) error {
	return r.withTx(ctx, "delete", KindTask, id, func(tx *gorm.DB) error {
		if err := tx.Where("TaskID = ?", id).Delete(&models.PartOf{}).Error; err != nil {
			return fmt.Errorf("delete sprint task: %w", err)
		}
		res := tx.Where("TaskID = ?", id).Delete(&models.Task{})
		if res.Error != nil {
			return fmt.Errorf("delete task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Kind: KindTask, ID: id}
		}
		r.log.Debug("task deleted", "id", id)
		return nil
	})
}

// DeleteMember removes a member from every project, then the member row.
func (r *Repository) DeleteMember(ctx context.Context, id uint) error {
	return r.withTx(ctx, "delete", KindMember, id, func(tx *gorm.DB) error {
		if err := tx.Where("MemberID = ?", id).Delete(&models.ContributesTo{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		res := tx.Where("MemberID = ?", id).Delete(&models.Member{})
		if res.Error != nil {
			return fmt.Errorf("delete member: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Kind: KindMember, ID: id}
		}
		r.log.Debug("member deleted", "id", id)
		return nil
	})
}

// taskIDsOf returns the ids of every task linked to the given sprints.
func taskIDsOf(tx *gorm.DB, sprintIDs []uint) ([]uint, error) {
	if len(sprintIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := tx.Model(&models.PartOf{}).Where("SprintID IN ?", sprintIDs).Pluck("TaskID", &ids).Error; err != nil {
		return nil, fmt.Errorf("collect tasks: %w", err)
	}
	return ids, nil
}
