package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dridley/gats/internal/models"
	"gorm.io/gorm"
)

// CreateProject inserts a project and returns its id.
func (r *Repository) CreateProject(ctx context.Context, in ProjectInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	project := models.Project{Title: strings.TrimSpace(in.Title), Description: in.Description}
	err := r.withTx(ctx, "create", KindProject, 0, func(tx *gorm.DB) error {
		return tx.Create(&project).Error
	})
	if err != nil {
		return 0, err
	}
	r.log.Debug("project created", "id", project.ID)
	return project.ID, nil
}

// UpdateProject replaces a project's title and description.
func (r *Repository) UpdateProject(ctx context.Context, id uint, in ProjectInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return r.withTx(ctx, "update", KindProject, id, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Project{}, "ProjectID", KindProject, id); err != nil {
			return err
		}
		return tx.Model(&models.Project{}).Where("ProjectID = ?", id).Updates(map[string]interface{}{
			"Title":       strings.TrimSpace(in.Title),
			"Description": in.Description,
		}).Error
	})
}

// CreateSprint inserts a sprint and its ProjectSprint row in one transaction,
// so the sprint is never visible without its project.
func (r *Repository) CreateSprint(ctx context.Context, projectID uint, in SprintInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	sprint := models.Sprint{Title: strings.TrimSpace(in.Title), StartDate: in.Start, EndDate: in.End}
	err := r.withTx(ctx, "create", KindSprint, 0, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Project{}, "ProjectID", KindProject, projectID); err != nil {
			return err
		}
		if err := tx.Create(&sprint).Error; err != nil {
			return fmt.Errorf("insert sprint: %w", err)
		}
		if err := tx.Create(&models.ProjectSprint{ProjectID: projectID, SprintID: sprint.ID}).Error; err != nil {
			return fmt.Errorf("link sprint to project %d: %w", projectID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	r.log.Debug("sprint created", "id", sprint.ID, "project", projectID)
	return sprint.ID, nil
}

// UpdateSprint replaces a sprint's title and dates.
func (r *Repository) UpdateSprint(ctx context.Context, id uint, in SprintInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return r.withTx(ctx, "update", KindSprint, id, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Sprint{}, "SprintID", KindSprint, id); err != nil {
			return err
		}
		return tx.Model(&models.Sprint{}).Where("SprintID = ?", id).Updates(map[string]interface{}{
			"Title":     strings.TrimSpace(in.Title),
			"startDate": in.Start,
			"endDate":   in.End,
		}).Error
	})
}

// CreateTask inserts a task and its PartOf row in one transaction.
func (r *Repository) CreateTask(ctx context.Context, sprintID uint, in TaskInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	task := models.Task{
		Title:          strings.TrimSpace(in.Title),
		Status:         in.status(),
		Description:    in.Description,
		CommittedHours: in.CommittedHours,
		EstimatedHours: in.EstimatedHours,
	}
	err := r.withTx(ctx, "create", KindTask, 0, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Sprint{}, "SprintID", KindSprint, sprintID); err != nil {
			return err
		}
		if err := tx.Create(&task).Error; err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		if err := tx.Create(&models.PartOf{SprintID: sprintID, TaskID: task.ID}).Error; err != nil {
			return fmt.Errorf("link task to sprint %d: %w", sprintID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	r.log.Debug("task created", "id", task.ID, "sprint", sprintID)
	return task.ID, nil
}

// UpdateTask replaces every editable field of a task.
func (r *Repository) UpdateTask(ctx context.Context, id uint, in TaskInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return r.withTx(ctx, "update", KindTask, id, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Task{}, "TaskID", KindTask, id); err != nil {
			return err
		}
		return tx.Model(&models.Task{}).Where("TaskID = ?", id).Updates(map[string]interface{}{
			"Title":          strings.TrimSpace(in.Title),
			"Status":         in.status(),
			"Description":    in.Description,
			"committedHours": in.CommittedHours,
			"estimatedHours": in.EstimatedHours,
		}).Error
	})
}

// AddMember records that a member contributes to a project. Both must exist
// and the pair must not already be linked.
func (r *Repository) AddMember(ctx context.Context, projectID, memberID uint, role string) error {
	return r.withTx(ctx, "add", KindMembership, memberID, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Project{}, "ProjectID", KindProject, projectID); err != nil {
			return err
		}
		if err := mustExist(tx, &models.Member{}, "MemberID", KindMember, memberID); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.ContributesTo{}).
			Where("ProjectID = ? AND MemberID = ?", projectID, memberID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return &ValidationError{
				Field:  "member",
				Reason: fmt.Sprintf("member %d already contributes to project %d", memberID, projectID),
			}
		}
		err := tx.Create(&models.ContributesTo{
			ProjectID: projectID,
			MemberID:  memberID,
			Role:      strings.TrimSpace(role),
		}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &ValidationError{
				Field:  "member",
				Reason: fmt.Sprintf("member %d already contributes to project %d", memberID, projectID),
			}
		}
		return err
	})
}

// RemoveMember deletes the ContributesTo row linking member and project.
func (r *Repository) RemoveMember(ctx context.Context, projectID, memberID uint) error {
	return r.withTx(ctx, "remove", KindMembership, memberID, func(tx *gorm.DB) error {
		res := tx.Where("ProjectID = ? AND MemberID = ?", projectID, memberID).Delete(&models.ContributesTo{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Kind: KindMembership, ID: memberID}
		}
		return nil
	})
}
