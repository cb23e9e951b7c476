package workspace

import (
	"context"

	"github.com/dridley/gats/internal/cursor"
	"github.com/dridley/gats/internal/hierarchy"
	"github.com/dridley/gats/internal/models"
)

// selected resolves the concrete entity under the cursor at each level.
// ok is false when the slot is None or the create-new row; err is set when
// the slot points past the loaded tree.
func (w *Workspace) selectedProject() (hierarchy.ProjectNode, int, bool, error) {
	p, ok := w.cur.Project().Index()
	if !ok {
		return hierarchy.ProjectNode{}, 0, false, nil
	}
	node, found := w.tree.Project(p)
	if !found {
		return hierarchy.ProjectNode{}, 0, false, &hierarchy.NotFoundError{Kind: hierarchy.KindProject}
	}
	return node, p, true, nil
}

func (w *Workspace) selectedSprint() (hierarchy.SprintNode, int, int, bool, error) {
	_, p, ok, err := w.selectedProject()
	if !ok || err != nil {
		return hierarchy.SprintNode{}, 0, 0, false, err
	}
	s, ok := w.cur.Sprint().Index()
	if !ok {
		return hierarchy.SprintNode{}, 0, 0, false, nil
	}
	node, found := w.tree.Sprint(p, s)
	if !found {
		return hierarchy.SprintNode{}, 0, 0, false, &hierarchy.NotFoundError{Kind: hierarchy.KindSprint}
	}
	return node, p, s, true, nil
}

func (w *Workspace) selectedTask() (models.Task, bool, error) {
	_, p, s, ok, err := w.selectedSprint()
	if !ok || err != nil {
		return models.Task{}, false, err
	}
	k, ok := w.cur.Task().Index()
	if !ok {
		return models.Task{}, false, nil
	}
	task, found := w.tree.Task(p, s, k)
	if !found {
		return models.Task{}, false, &hierarchy.NotFoundError{Kind: hierarchy.KindTask}
	}
	return task, true, nil
}

func (w *Workspace) selectedMember() (hierarchy.ProjectNode, hierarchy.MemberNode, bool, error) {
	project, p, ok, err := w.selectedProject()
	if !ok || err != nil {
		return hierarchy.ProjectNode{}, hierarchy.MemberNode{}, false, err
	}
	m, ok := w.cur.Member().Index()
	if !ok {
		return hierarchy.ProjectNode{}, hierarchy.MemberNode{}, false, nil
	}
	member, found := w.tree.Member(p, m)
	if !found {
		return hierarchy.ProjectNode{}, hierarchy.MemberNode{}, false, &hierarchy.NotFoundError{Kind: hierarchy.KindMember}
	}
	return project, member, true, nil
}

// CreateProject adds a project and focuses it.
func (w *Workspace) CreateProject(ctx context.Context, in hierarchy.ProjectInput) error {
	var id uint
	return w.apply(ctx, "create project", func(ctx context.Context) (err error) {
		id, err = w.store.CreateProject(ctx, in)
		return err
	}, func(tree hierarchy.Tree, cur cursor.Cursor) cursor.Cursor {
		if p, ok := tree.ProjectIndex(id); ok {
			return cursor.AtProject(p)
		}
		return cur
	})
}

// CreateSprint adds a sprint to the current project and focuses it.
func (w *Workspace) CreateSprint(ctx context.Context, in hierarchy.SprintInput) error {
	project, _, ok, err := w.selectedProject()
	if !ok || err != nil {
		return err
	}
	var id uint
	return w.apply(ctx, "create sprint", func(ctx context.Context) (err error) {
		id, err = w.store.CreateSprint(ctx, project.ID, in)
		return err
	}, func(tree hierarchy.Tree, cur cursor.Cursor) cursor.Cursor {
		p, ok := tree.ProjectIndex(project.ID)
		if !ok {
			return cur
		}
		if s, ok := tree.SprintIndex(p, id); ok {
			return cursor.AtSprint(p, s).WithMember(cur.Member())
		}
		return cur
	})
}

// CreateTask adds a task to the current sprint and focuses it.
func (w *Workspace) CreateTask(ctx context.Context, in hierarchy.TaskInput) error {
	sprint, _, _, ok, err := w.selectedSprint()
	if !ok || err != nil {
		return err
	}
	project, _, _, _ := w.selectedProject()
	var id uint
	return w.apply(ctx, "create task", func(ctx context.Context) (err error) {
		id, err = w.store.CreateTask(ctx, sprint.ID, in)
		return err
	}, func(tree hierarchy.Tree, cur cursor.Cursor) cursor.Cursor {
		p, ok := tree.ProjectIndex(project.ID)
		if !ok {
			return cur
		}
		s, ok := tree.SprintIndex(p, sprint.ID)
		if !ok {
			return cur
		}
		if k, ok := tree.TaskIndex(p, s, id); ok {
			return cursor.AtTask(p, s, k).WithMember(cur.Member())
		}
		return cur
	})
}

// UpdateProject edits the current project.
func (w *Workspace) UpdateProject(ctx context.Context, in hierarchy.ProjectInput) error {
	project, _, ok, err := w.selectedProject()
	if !ok || err != nil {
		return err
	}
	return w.apply(ctx, "update project", func(ctx context.Context) error {
		return w.store.UpdateProject(ctx, project.ID, in)
	}, nil)
}

// UpdateSprint edits the current sprint.
func (w *Workspace) UpdateSprint(ctx context.Context, in hierarchy.SprintInput) error {
	sprint, _, _, ok, err := w.selectedSprint()
	if !ok || err != nil {
		return err
	}
	return w.apply(ctx, "update sprint", func(ctx context.Context) error {
		return w.store.UpdateSprint(ctx, sprint.ID, in)
	}, nil)
}

// UpdateTask edits the current task.
func (w *Workspace) UpdateTask(ctx context.Context, in hierarchy.TaskInput) error {
	task, ok, err := w.selectedTask()
	if !ok || err != nil {
		return err
	}
	return w.apply(ctx, "update task", func(ctx context.Context) error {
		return w.store.UpdateTask(ctx, task.ID, in)
	}, nil)
}

// DeleteSelected deletes the entity focused at the cursor's depth together
// with everything below it.
func (w *Workspace) DeleteSelected(ctx context.Context) error {
	switch w.cur.Depth() {
	case cursor.DepthProject:
		project, _, ok, err := w.selectedProject()
		if !ok || err != nil {
			return err
		}
		return w.apply(ctx, "delete project", func(ctx context.Context) error {
			return w.store.DeleteProject(ctx, project.ID)
		}, nil)
	case cursor.DepthSprint:
		sprint, _, _, ok, err := w.selectedSprint()
		if !ok || err != nil {
			return err
		}
		return w.apply(ctx, "delete sprint", func(ctx context.Context) error {
			return w.store.DeleteSprint(ctx, sprint.ID)
		}, nil)
	default:
		task, ok, err := w.selectedTask()
		if !ok || err != nil {
			return err
		}
		return w.apply(ctx, "delete task", func(ctx context.Context) error {
			return w.store.DeleteTask(ctx, task.ID)
		}, nil)
	}
}

// AddMember links a directory member to the current project and focuses
// them in the project's member list.
func (w *Workspace) AddMember(ctx context.Context, memberID uint, role string) error {
	project, _, ok, err := w.selectedProject()
	if !ok || err != nil {
		return err
	}
	return w.apply(ctx, "add member", func(ctx context.Context) error {
		return w.store.AddMember(ctx, project.ID, memberID, role)
	}, func(tree hierarchy.Tree, cur cursor.Cursor) cursor.Cursor {
		p, ok := tree.ProjectIndex(project.ID)
		if !ok {
			return cur
		}
		if m, ok := tree.MemberIndex(p, memberID); ok {
			return cur.WithMember(cursor.At(m))
		}
		return cur
	})
}

// RemoveSelectedMember unlinks the focused member from the current project.
func (w *Workspace) RemoveSelectedMember(ctx context.Context) error {
	project, member, ok, err := w.selectedMember()
	if !ok || err != nil {
		return err
	}
	return w.apply(ctx, "remove member", func(ctx context.Context) error {
		return w.store.RemoveMember(ctx, project.ID, member.ID)
	}, nil)
}

// Members lists the member directory.
func (w *Workspace) Members(ctx context.Context) ([]models.Member, error) {
	return w.store.ListMembers(ctx)
}

// CreateMember adds a member to the directory and returns their id. The id
// is returned even when only the reload failed.
func (w *Workspace) CreateMember(ctx context.Context, in hierarchy.MemberInput) (uint, error) {
	var id uint
	err := w.apply(ctx, "create member", func(ctx context.Context) (err error) {
		id, err = w.store.CreateMember(ctx, in)
		return err
	}, nil)
	return id, err
}

// UpdateMember edits a directory member. Project member lists show the
// change after the reload.
func (w *Workspace) UpdateMember(ctx context.Context, id uint, in hierarchy.MemberInput) error {
	return w.apply(ctx, "update member", func(ctx context.Context) error {
		return w.store.UpdateMember(ctx, id, in)
	}, nil)
}

// DeleteMember removes a member from the directory and from every project.
func (w *Workspace) DeleteMember(ctx context.Context, id uint) error {
	return w.apply(ctx, "delete member", func(ctx context.Context) error {
		return w.store.DeleteMember(ctx, id)
	}, nil)
}
