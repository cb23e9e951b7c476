package hierarchy

import "github.com/dridley/gats/internal/models"

// Tree is a full snapshot of the hierarchy as read from the store. It is
// rebuilt from scratch on every load and never patched in place.
type Tree struct {
	Projects []ProjectNode `json:"projects"`
}

// ProjectNode is a project with its sprints and contributing members.
type ProjectNode struct {
	models.Project
	Sprints []SprintNode `json:"sprints"`
	Members []MemberNode `json:"members"`
}

// SprintNode is a sprint with its tasks.
type SprintNode struct {
	models.Sprint
	Tasks []models.Task `json:"tasks"`
}

// MemberNode is a member as seen from one project, carrying the role
// recorded on the ContributesTo row.
type MemberNode struct {
	models.Member
	Role string `gorm:"column:role" json:"role"`
}

func (t Tree) ProjectCount() int { return len(t.Projects) }

func (t Tree) SprintCount(project int) int {
	p, ok := t.Project(project)
	if !ok {
		return 0
	}
	return len(p.Sprints)
}

func (t Tree) TaskCount(project, sprint int) int {
	s, ok := t.Sprint(project, sprint)
	if !ok {
		return 0
	}
	return len(s.Tasks)
}

func (t Tree) MemberCount(project int) int {
	p, ok := t.Project(project)
	if !ok {
		return 0
	}
	return len(p.Members)
}

// Project returns the project at index i.
func (t Tree) Project(i int) (ProjectNode, bool) {
	if i < 0 || i >= len(t.Projects) {
		return ProjectNode{}, false
	}
	return t.Projects[i], true
}

// Sprint returns sprint s of project p.
func (t Tree) Sprint(p, s int) (SprintNode, bool) {
	proj, ok := t.Project(p)
	if !ok || s < 0 || s >= len(proj.Sprints) {
		return SprintNode{}, false
	}
	return proj.Sprints[s], true
}

// Task returns task k of sprint s of project p.
func (t Tree) Task(p, s, k int) (models.Task, bool) {
	sprint, ok := t.Sprint(p, s)
	if !ok || k < 0 || k >= len(sprint.Tasks) {
		return models.Task{}, false
	}
	return sprint.Tasks[k], true
}

// Member returns member m of project p.
func (t Tree) Member(p, m int) (MemberNode, bool) {
	proj, ok := t.Project(p)
	if !ok || m < 0 || m >= len(proj.Members) {
		return MemberNode{}, false
	}
	return proj.Members[m], true
}

// ProjectIndex returns the position of the project with the given id.
func (t Tree) ProjectIndex(id uint) (int, bool) {
	for i, p := range t.Projects {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}

// SprintIndex returns the position of sprint id within project p.
func (t Tree) SprintIndex(p int, id uint) (int, bool) {
	proj, ok := t.Project(p)
	if !ok {
		return 0, false
	}
	for i, s := range proj.Sprints {
		if s.ID == id {
			return i, true
		}
	}
	return 0, false
}

// TaskIndex returns the position of task id within sprint s of project p.
func (t Tree) TaskIndex(p, s int, id uint) (int, bool) {
	sprint, ok := t.Sprint(p, s)
	if !ok {
		return 0, false
	}
	for i, task := range sprint.Tasks {
		if task.ID == id {
			return i, true
		}
	}
	return 0, false
}

// MemberIndex returns the position of member id within project p.
func (t Tree) MemberIndex(p int, id uint) (int, bool) {
	proj, ok := t.Project(p)
	if !ok {
		return 0, false
	}
	for i, m := range proj.Members {
		if m.ID == id {
			return i, true
		}
	}
	return 0, false
}
