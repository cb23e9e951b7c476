// Package hierarchy maps the flat Project/Sprint/Task/Member tables onto a
// nested Tree and owns every write against them, including the cascade
// deletes that keep association rows free of orphans.
package hierarchy

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dridley/gats/internal/models"
	"gorm.io/gorm"
)

// Repository reads and writes the project hierarchy.
type Repository struct {
	db  *gorm.DB
	log *slog.Logger
}

// New returns a Repository backed by db. A nil logger discards output.
func New(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{db: db, log: logger}
}

// withTx runs fn inside one transaction. fn's statements are committed
// together or not at all. A failed rollback is logged and does not replace
// the error that caused it.
func (r *Repository) withTx(ctx context.Context, op string, kind Kind, id uint, fn func(tx *gorm.DB) error) (err error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return &StoreError{Op: op, Kind: kind, ID: id, Err: fmt.Errorf("begin: %w", tx.Error)}
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			r.log.Warn("rollback failed", "op", op, "kind", kind, "id", id, "error", rbErr)
		}
		return classify(op, kind, id, err)
	}
	if err := tx.Commit().Error; err != nil {
		return &StoreError{Op: op, Kind: kind, ID: id, Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

// LoadAll reads the whole hierarchy in one read transaction. Projects,
// sprints, tasks and members are ordered by id so that two loads with no
// write in between produce identical trees. On any failure the partial
// result is discarded.
func (r *Repository) LoadAll(ctx context.Context) (Tree, error) {
	var tree Tree
	err := r.withTx(ctx, "load", "", 0, func(tx *gorm.DB) error {
		t, err := loadTree(tx)
		if err != nil {
			return err
		}
		tree = t
		return nil
	})
	if err != nil {
		return Tree{}, err
	}
	return tree, nil
}

func loadTree(tx *gorm.DB) (Tree, error) {
	var projects []models.Project
	if err := tx.Order("ProjectID ASC").Find(&projects).Error; err != nil {
		return Tree{}, fmt.Errorf("read projects: %w", err)
	}

	nodes := make([]ProjectNode, 0, len(projects))
	for _, p := range projects {
		sprints, err := loadSprints(tx, p.ID)
		if err != nil {
			return Tree{}, err
		}
		members, err := loadMembers(tx, p.ID)
		if err != nil {
			return Tree{}, err
		}
		nodes = append(nodes, ProjectNode{Project: p, Sprints: sprints, Members: members})
	}
	return Tree{Projects: nodes}, nil
}

func loadSprints(tx *gorm.DB, projectID uint) ([]SprintNode, error) {
	var sprints []models.Sprint
	if err := tx.Model(&models.Sprint{}).
		Select("Sprint.*").
		Joins("JOIN ProjectSprint ON ProjectSprint.SprintID = Sprint.SprintID").
		Where("ProjectSprint.ProjectID = ?", projectID).
		Order("Sprint.SprintID ASC").
		Find(&sprints).Error; err != nil {
		return nil, fmt.Errorf("read sprints of project %d: %w", projectID, err)
	}

	nodes := make([]SprintNode, 0, len(sprints))
	for _, s := range sprints {
		tasks, err := loadTasks(tx, s.ID)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, SprintNode{Sprint: s, Tasks: tasks})
	}
	return nodes, nil
}

func loadTasks(tx *gorm.DB, sprintID uint) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := tx.Model(&models.Task{}).
		Select("Task.*").
		Joins("JOIN PartOf ON PartOf.TaskID = Task.TaskID").
		Where("PartOf.SprintID = ?", sprintID).
		Order("Task.TaskID ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("read tasks of sprint %d: %w", sprintID, err)
	}
	return tasks, nil
}

func loadMembers(tx *gorm.DB, projectID uint) ([]MemberNode, error) {
	members := []MemberNode{}
	if err := tx.Model(&models.Member{}).
		Select("Member.*, ContributesTo.role AS role").
		Joins("JOIN ContributesTo ON ContributesTo.MemberID = Member.MemberID").
		Where("ContributesTo.ProjectID = ?", projectID).
		Order("Member.MemberID ASC").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("read members of project %d: %w", projectID, err)
	}
	return members, nil
}

// exists reports whether a row with the given key is present.
func exists(tx *gorm.DB, model interface{}, column string, id uint) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// mustExist returns a NotFoundError when the row is absent.
func mustExist(tx *gorm.DB, model interface{}, column string, kind Kind, id uint) error {
	ok, err := exists(tx, model, column, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return nil
}
