package hierarchy

import (
	"context"
	"errors"

	"github.com/dridley/gats/internal/models"
	"gorm.io/gorm"
)

// GetProject reads one project row.
func (r *Repository) GetProject(ctx context.Context, id uint) (models.Project, error) {
	var p models.Project
	err := r.take(ctx, &p, "ProjectID", KindProject, id)
	return p, err
}

// GetSprint reads one sprint row.
func (r *Repository) GetSprint(ctx context.Context, id uint) (models.Sprint, error) {
	var s models.Sprint
	err := r.take(ctx, &s, "SprintID", KindSprint, id)
	return s, err
}

// GetTask reads one task row.
func (r *Repository) GetTask(ctx context.Context, id uint) (models.Task, error) {
	var t models.Task
	err := r.take(ctx, &t, "TaskID", KindTask, id)
	return t, err
}

// GetMember reads one member row.
func (r *Repository) GetMember(ctx context.Context, id uint) (models.Member, error) {
	var m models.Member
	err := r.take(ctx, &m, "MemberID", KindMember, id)
	return m, err
}

func (r *Repository) take(ctx context.Context, dest interface{}, column string, kind Kind, id uint) error {
	err := r.db.WithContext(ctx).Where(column+" = ?", id).Take(dest).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{Kind: kind, ID: id}
	default:
		return &StoreError{Op: "load", Kind: kind, ID: id, Err: err}
	}
}
