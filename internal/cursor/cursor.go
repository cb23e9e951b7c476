// Package cursor tracks focus within the Project → Sprint → Task tree and
// within the current project's member list. A Cursor is a value: every
// transition returns a new Cursor and never touches the tree.
package cursor

import "fmt"

// Depth is the level of the hierarchy being navigated.
type Depth int

const (
	DepthProject Depth = iota
	DepthSprint
	DepthTask
)

func (d Depth) String() string {
	switch d {
	case DepthProject:
		return "project"
	case DepthSprint:
		return "sprint"
	case DepthTask:
		return "task"
	default:
		return fmt.Sprintf("Depth(%d)", int(d))
	}
}

// Shape reports collection sizes of a tree. Out-of-range parents report 0.
type Shape interface {
	ProjectCount() int
	SprintCount(project int) int
	TaskCount(project, sprint int) int
	MemberCount(project int) int
}

// Position is the focus within the hierarchy. It is one of ProjectLevel,
// SprintLevel or TaskLevel; parents below the current depth are always
// concrete indices.
type Position interface {
	Depth() Depth
	isPosition()
}

// ProjectLevel navigates the project list.
type ProjectLevel struct {
	Project Slot
}

// SprintLevel navigates the sprints of one project.
type SprintLevel struct {
	Project int
	Sprint  Slot
}

// TaskLevel navigates the tasks of one sprint.
type TaskLevel struct {
	Project int
	Sprint  int
	Task    Slot
}

func (ProjectLevel) Depth() Depth { return DepthProject }
func (SprintLevel) Depth() Depth  { return DepthSprint }
func (TaskLevel) Depth() Depth    { return DepthTask }

func (ProjectLevel) isPosition() {}
func (SprintLevel) isPosition()  {}
func (TaskLevel) isPosition()    {}

// Cursor is the combined hierarchy and member focus. The zero value sits at
// project depth with nothing focused.
type Cursor struct {
	pos    Position
	member Slot
}

// New returns a cursor on the first project. Renormalize it against the
// loaded tree before use.
func New() Cursor {
	return Cursor{pos: ProjectLevel{Project: At(0)}}
}

// AtProject focuses project p.
func AtProject(p int) Cursor {
	return Cursor{pos: ProjectLevel{Project: At(p)}}
}

// AtSprint focuses sprint s of project p.
func AtSprint(p, s int) Cursor {
	return Cursor{pos: SprintLevel{Project: p, Sprint: At(s)}}
}

// AtTask focuses task k of sprint s of project p.
func AtTask(p, s, k int) Cursor {
	return Cursor{pos: TaskLevel{Project: p, Sprint: s, Task: At(k)}}
}

// WithMember returns c with the member slot replaced.
func (c Cursor) WithMember(m Slot) Cursor {
	c.member = m
	return c
}

// Position returns the hierarchy focus.
func (c Cursor) Position() Position {
	if c.pos == nil {
		return ProjectLevel{}
	}
	return c.pos
}

func (c Cursor) Depth() Depth { return c.Position().Depth() }

// Project returns the project slot. Below project depth it is always At.
func (c Cursor) Project() Slot {
	switch p := c.Position().(type) {
	case SprintLevel:
		return At(p.Project)
	case TaskLevel:
		return At(p.Project)
	case ProjectLevel:
		return p.Project
	}
	return None()
}

// Sprint returns the sprint slot, None at project depth.
func (c Cursor) Sprint() Slot {
	switch p := c.Position().(type) {
	case SprintLevel:
		return p.Sprint
	case TaskLevel:
		return At(p.Sprint)
	}
	return None()
}

// Task returns the task slot, None above task depth.
func (c Cursor) Task() Slot {
	if p, ok := c.Position().(TaskLevel); ok {
		return p.Task
	}
	return None()
}

// Member returns the focus within the current project's member list.
func (c Cursor) Member() Slot { return c.member }

func (c Cursor) String() string {
	switch p := c.Position().(type) {
	case SprintLevel:
		return fmt.Sprintf("sprint[p=%d s=%s m=%s]", p.Project, p.Sprint, c.member)
	case TaskLevel:
		return fmt.Sprintf("task[p=%d s=%d t=%s m=%s]", p.Project, p.Sprint, p.Task, c.member)
	case ProjectLevel:
		return fmt.Sprintf("project[p=%s m=%s]", p.Project, c.member)
	}
	return "cursor[?]"
}

// MoveNext advances within the collection at the current depth, passing
// through the create-new row after the last element.
func (c Cursor) MoveNext(t Shape) Cursor {
	switch p := c.Position().(type) {
	case ProjectLevel:
		c.pos = ProjectLevel{Project: p.Project.next(t.ProjectCount())}
		c.member = None()
	case SprintLevel:
		p.Sprint = p.Sprint.next(t.SprintCount(p.Project))
		c.pos = p
	case TaskLevel:
		p.Task = p.Task.next(t.TaskCount(p.Project, p.Sprint))
		c.pos = p
	}
	return c
}

// MovePrevious steps back within the collection at the current depth,
// stopping at the first element.
func (c Cursor) MovePrevious(t Shape) Cursor {
	switch p := c.Position().(type) {
	case ProjectLevel:
		c.pos = ProjectLevel{Project: p.Project.prev(t.ProjectCount())}
		c.member = None()
	case SprintLevel:
		p.Sprint = p.Sprint.prev(t.SprintCount(p.Project))
		c.pos = p
	case TaskLevel:
		p.Task = p.Task.prev(t.TaskCount(p.Project, p.Sprint))
		c.pos = p
	}
	return c
}

// IncreaseDepth descends into the focused element. Only an existing element
// can be entered; task depth is the deepest level.
func (c Cursor) IncreaseDepth(t Shape) Cursor {
	switch p := c.Position().(type) {
	case ProjectLevel:
		i, ok := p.Project.Index()
		if !ok || i >= t.ProjectCount() {
			return c
		}
		c.pos = SprintLevel{Project: i, Sprint: first(t.SprintCount(i))}
	case SprintLevel:
		i, ok := p.Sprint.Index()
		if !ok || i >= t.SprintCount(p.Project) {
			return c
		}
		c.pos = TaskLevel{Project: p.Project, Sprint: i, Task: first(t.TaskCount(p.Project, i))}
	}
	return c
}

// DecreaseDepth returns to the parent level, keeping the parent focused.
func (c Cursor) DecreaseDepth() Cursor {
	switch p := c.Position().(type) {
	case SprintLevel:
		c.pos = ProjectLevel{Project: At(p.Project)}
	case TaskLevel:
		c.pos = SprintLevel{Project: p.Project, Sprint: At(p.Sprint)}
	}
	return c
}

// NextMember advances within the current project's members. Without a
// current project it does nothing.
func (c Cursor) NextMember(t Shape) Cursor {
	p, ok := c.Project().Index()
	if !ok {
		return c
	}
	c.member = c.member.next(t.MemberCount(p))
	return c
}

// PreviousMember steps back within the current project's members.
func (c Cursor) PreviousMember(t Shape) Cursor {
	p, ok := c.Project().Index()
	if !ok {
		return c
	}
	c.member = c.member.prev(t.MemberCount(p))
	return c
}

// Renormalize fits the cursor to a freshly loaded tree. Indices past the end
// of their collection move to the last element; a level whose collection is
// now empty becomes None, and a level whose parent no longer exists collapses
// onto that parent. None and the create-new row are kept as they are.
func (c Cursor) Renormalize(t Shape) Cursor {
	np := t.ProjectCount()

	switch p := c.Position().(type) {
	case ProjectLevel:
		c.pos = ProjectLevel{Project: p.Project.clamp(np)}
	case SprintLevel:
		if np == 0 {
			c.pos = ProjectLevel{Project: None()}
			break
		}
		p.Project = min(p.Project, np-1)
		p.Sprint = p.Sprint.clamp(t.SprintCount(p.Project))
		c.pos = p
	case TaskLevel:
		if np == 0 {
			c.pos = ProjectLevel{Project: None()}
			break
		}
		p.Project = min(p.Project, np-1)
		ns := t.SprintCount(p.Project)
		if ns == 0 {
			c.pos = SprintLevel{Project: p.Project, Sprint: None()}
			break
		}
		p.Sprint = min(p.Sprint, ns-1)
		p.Task = p.Task.clamp(t.TaskCount(p.Project, p.Sprint))
		c.pos = p
	}

	if i, ok := c.Project().Index(); ok {
		c.member = c.member.clamp(t.MemberCount(i))
	} else {
		c.member = None()
	}
	return c
}
