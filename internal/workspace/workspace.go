// Package workspace couples the loaded hierarchy with the cursor over it and
// sequences every change as mutate, reload, renormalize.
package workspace

import (
	"context"
	"io"
	"log/slog"

	"github.com/dridley/gats/internal/cursor"
	"github.com/dridley/gats/internal/hierarchy"
	"github.com/dridley/gats/internal/models"
)

// Store is the persistence the workspace drives. *hierarchy.Repository
// satisfies it.
type Store interface {
	LoadAll(ctx context.Context) (hierarchy.Tree, error)

	CreateProject(ctx context.Context, in hierarchy.ProjectInput) (uint, error)
	UpdateProject(ctx context.Context, id uint, in hierarchy.ProjectInput) error
	DeleteProject(ctx context.Context, id uint) error

	CreateSprint(ctx context.Context, projectID uint, in hierarchy.SprintInput) (uint, error)
	UpdateSprint(ctx context.Context, id uint, in hierarchy.SprintInput) error
	DeleteSprint(ctx context.Context, id uint) error

	CreateTask(ctx context.Context, sprintID uint, in hierarchy.TaskInput) (uint, error)
	UpdateTask(ctx context.Context, id uint, in hierarchy.TaskInput) error
	DeleteTask(ctx context.Context, id uint) error

	AddMember(ctx context.Context, projectID, memberID uint, role string) error
	RemoveMember(ctx context.Context, projectID, memberID uint) error

	ListMembers(ctx context.Context) ([]models.Member, error)
	CreateMember(ctx context.Context, in hierarchy.MemberInput) (uint, error)
	UpdateMember(ctx context.Context, id uint, in hierarchy.MemberInput) error
	DeleteMember(ctx context.Context, id uint) error
}

// Workspace owns one Tree and one Cursor. It is not safe for concurrent use;
// callers with several goroutines must serialize access.
type Workspace struct {
	store Store
	log   *slog.Logger
	tree  hierarchy.Tree
	cur   cursor.Cursor
}

// New returns an empty workspace. Call Load before navigating.
func New(store Store, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Workspace{store: store, log: logger, cur: cursor.New()}
}

// Load replaces the tree with a fresh read of the store. On failure the
// previous tree and cursor are kept.
func (w *Workspace) Load(ctx context.Context) error {
	tree, err := w.store.LoadAll(ctx)
	if err != nil {
		w.log.Warn("reload failed, keeping last tree", "error", err)
		return asStoreError(err)
	}
	w.tree = tree
	w.cur = w.cur.Renormalize(tree)
	w.log.Debug("tree loaded", "projects", tree.ProjectCount(), "cursor", w.cur.String())
	return nil
}

// Tree returns the current snapshot.
func (w *Workspace) Tree() hierarchy.Tree { return w.tree }

// Cursor returns the current focus.
func (w *Workspace) Cursor() cursor.Cursor { return w.cur }

func (w *Workspace) MoveNext()       { w.cur = w.cur.MoveNext(w.tree) }
func (w *Workspace) MovePrevious()   { w.cur = w.cur.MovePrevious(w.tree) }
func (w *Workspace) IncreaseDepth()  { w.cur = w.cur.IncreaseDepth(w.tree) }
func (w *Workspace) DecreaseDepth()  { w.cur = w.cur.DecreaseDepth() }
func (w *Workspace) NextMember()     { w.cur = w.cur.NextMember(w.tree) }
func (w *Workspace) PreviousMember() { w.cur = w.cur.PreviousMember(w.tree) }

// CurrentProject returns the focused project, if any.
func (w *Workspace) CurrentProject() (hierarchy.ProjectNode, bool) {
	p, ok := w.cur.Project().Index()
	if !ok {
		return hierarchy.ProjectNode{}, false
	}
	return w.tree.Project(p)
}

// CurrentSprint returns the focused sprint, if any.
func (w *Workspace) CurrentSprint() (hierarchy.SprintNode, bool) {
	p, ok := w.cur.Project().Index()
	if !ok {
		return hierarchy.SprintNode{}, false
	}
	s, ok := w.cur.Sprint().Index()
	if !ok {
		return hierarchy.SprintNode{}, false
	}
	return w.tree.Sprint(p, s)
}

// CurrentTask returns the focused task, if any.
func (w *Workspace) CurrentTask() (models.Task, bool) {
	pos, ok := w.cur.Position().(cursor.TaskLevel)
	if !ok {
		return models.Task{}, false
	}
	k, ok := pos.Task.Index()
	if !ok {
		return models.Task{}, false
	}
	return w.tree.Task(pos.Project, pos.Sprint, k)
}

// CurrentMember returns the focused member of the current project, if any.
func (w *Workspace) CurrentMember() (hierarchy.MemberNode, bool) {
	p, ok := w.cur.Project().Index()
	if !ok {
		return hierarchy.MemberNode{}, false
	}
	m, ok := w.cur.Member().Index()
	if !ok {
		return hierarchy.MemberNode{}, false
	}
	return w.tree.Member(p, m)
}

// focusFunc picks the cursor to use against the reloaded tree, typically to
// land on an entity that was just created.
type focusFunc func(tree hierarchy.Tree, cur cursor.Cursor) cursor.Cursor

// apply runs one mutation, then reloads and renormalizes. A failed mutation
// leaves tree and cursor untouched. A failed reload keeps the last tree and
// cursor and is reported as a StoreError.
func (w *Workspace) apply(ctx context.Context, op string, mutate func(ctx context.Context) error, focus focusFunc) error {
	if err := mutate(ctx); err != nil {
		w.log.Warn("mutation failed", "op", op, "error", err)
		return err
	}
	tree, err := w.store.LoadAll(ctx)
	if err != nil {
		w.log.Warn("reload after mutation failed, keeping last tree", "op", op, "error", err)
		return asStoreError(err)
	}
	w.tree = tree
	cur := w.cur
	if focus != nil {
		cur = focus(tree, cur)
	}
	w.cur = cur.Renormalize(tree)
	w.log.Debug("mutation applied", "op", op, "cursor", w.cur.String())
	return nil
}

func asStoreError(err error) error {
	if hierarchy.IsStore(err) {
		return err
	}
	return &hierarchy.StoreError{Op: "load", Err: err}
}
