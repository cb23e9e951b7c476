package dashboard

import (
	"net/http"
	"strconv"

	"github.com/dridley/gats/internal/cursor"
	"github.com/dridley/gats/internal/hierarchy"
	"github.com/dridley/gats/internal/models"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, s *server) {
	api := router.Group("/api")

	api.GET("/tree", s.handleState)
	api.GET("/cursor", s.handleCursor)
	api.POST("/reload", s.handleReload)
	api.POST("/cursor/:move", s.handleMove)

	api.POST("/projects", s.handleCreateProject)
	api.POST("/sprints", s.handleCreateSprint)
	api.POST("/tasks", s.handleCreateTask)
	api.PUT("/selection", s.handleUpdateSelection)
	api.DELETE("/selection", s.handleDeleteSelection)

	api.GET("/members", s.handleListMembers)
	api.POST("/members", s.handleCreateMember)
	api.PUT("/members/:id", s.handleUpdateMember)
	api.DELETE("/members/:id", s.handleDeleteMember)
	api.POST("/project-members", s.handleAddProjectMember)
	api.DELETE("/project-members", s.handleRemoveProjectMember)
}

// cursorView is the JSON form of a cursor. Slots render as an index, "new"
// for the create-new row, or "none".
type cursorView struct {
	Depth   string `json:"depth"`
	Project string `json:"project"`
	Sprint  string `json:"sprint"`
	Task    string `json:"task"`
	Member  string `json:"member"`
}

func viewCursor(c cursor.Cursor) cursorView {
	return cursorView{
		Depth:   c.Depth().String(),
		Project: c.Project().String(),
		Sprint:  c.Sprint().String(),
		Task:    c.Task().String(),
		Member:  c.Member().String(),
	}
}

type stateView struct {
	Tree   hierarchy.Tree `json:"tree"`
	Cursor cursorView     `json:"cursor"`
}

type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r projectRequest) input() hierarchy.ProjectInput {
	return hierarchy.ProjectInput{Title: r.Title, Description: r.Description}
}

type sprintRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r sprintRequest) input() (hierarchy.SprintInput, error) {
	start, err := hierarchy.ParseDate("start date", r.StartDate)
	if err != nil {
		return hierarchy.SprintInput{}, err
	}
	end, err := hierarchy.ParseDate("end date", r.EndDate)
	if err != nil {
		return hierarchy.SprintInput{}, err
	}
	return hierarchy.SprintInput{Title: r.Title, Start: start, End: end}, nil
}

type taskRequest struct {
	Title          string `json:"title"`
	Status         string `json:"status"`
	Description    string `json:"description"`
	CommittedHours int    `json:"committed_hours"`
	EstimatedHours int    `json:"estimated_hours"`
}

func (r taskRequest) input() hierarchy.TaskInput {
	return hierarchy.TaskInput{
		Title:          r.Title,
		Status:         hierarchy.ParseStatus(r.Status),
		Description:    r.Description,
		CommittedHours: r.CommittedHours,
		EstimatedHours: r.EstimatedHours,
	}
}

// selectionRequest carries the fields of whichever entity is selected.
type selectionRequest struct {
	projectRequest
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Status         string `json:"status"`
	CommittedHours int    `json:"committed_hours"`
	EstimatedHours int    `json:"estimated_hours"`
}

type memberRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (r memberRequest) input() hierarchy.MemberInput {
	return hierarchy.MemberInput{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Phone: r.Phone}
}

type projectMemberRequest struct {
	MemberID uint   `json:"member_id"`
	Role     string `json:"role"`
}

// writeError maps hierarchy errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case hierarchy.IsValidation(err):
		status = http.StatusBadRequest
	case hierarchy.IsNotFound(err):
		status = http.StatusNotFound
	case hierarchy.IsStore(err):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// writeState responds with the tree and cursor after a successful call.
func (s *server) writeState(c *gin.Context, status int) {
	c.JSON(status, stateView{Tree: s.ws.Tree(), Cursor: viewCursor(s.ws.Cursor())})
}

func (s *server) handleState(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeState(c, http.StatusOK)
}

func (s *server) handleCursor(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, viewCursor(s.ws.Cursor()))
}

func (s *server) handleReload(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.Load(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	s.writeState(c, http.StatusOK)
}

func (s *server) handleMove(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch c.Param("move") {
	case "next":
		s.ws.MoveNext()
	case "prev":
		s.ws.MovePrevious()
	case "in":
		s.ws.IncreaseDepth()
	case "out":
		s.ws.DecreaseDepth()
	case "member-next":
		s.ws.NextMember()
	case "member-prev":
		s.ws.PreviousMember()
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown move " + strconv.Quote(c.Param("move"))})
		return
	}
	c.JSON(http.StatusOK, viewCursor(s.ws.Cursor()))
}

func (s *server) handleCreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.CreateProject(c.Request.Context(), req.input()); err != nil {
		writeError(c, err)
		return
	}
	s.writeState(c, http.StatusCreated)
}

func (s *server) handleCreateSprint(c *gin.Context) {
	var req sprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.CreateSprint(c.Request.Context(), in); err != nil {
		writeError(c, err)
		return
	}
	s.writeState(c, http.StatusCreated)
}

func (s *server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.CreateTask(c.Request.Context(), req.input()); err != nil {
		writeError(c, err)
		return
	}
	s.writeState(c, http.StatusCreated)
}

// handleUpdateSelection edits the entity at the cursor's depth.
func (s *server) handleUpdateSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := c.Request.Context()
	var err error
	switch s.ws.Cursor().Depth() {
	case cursor.DepthProject:
		err = s.ws.UpdateProject(ctx, req.projectRequest.input())
	case cursor.DepthSprint:
		var in hierarchy.SprintInput
		in, err = sprintRequest{Title: req.Title, StartDate: req.StartDate, EndDate: req.EndDate}.input()
		if err == nil {
			err = s.ws.UpdateSprint(ctx, in)
		}
	default:
		err = s.ws.UpdateTask(ctx, taskRequest{
			Title:          req.Title,
			Status:         req.Status,
			Description:    req.Description,
			CommittedHours: req.CommittedHours,
			EstimatedHours: req.EstimatedHours,
		}.input())
	}
	if err != nil {
		writeError(c, err)
		return
	}
	s.writeState(c, http.StatusOK)
}

func (s *server) handleDeleteSelection(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.DeleteSelected(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	s.writeState(c, http.StatusOK)
}

func (s *server) handleListMembers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, err := s.ws.Members(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *server) handleCreateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.ws.CreateMember(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"member": models.Member{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}})
}

func memberID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id " + strconv.Quote(c.Param("id"))})
		return 0, false
	}
	return uint(id), true
}

func (s *server) handleUpdateMember(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.UpdateMember(c.Request.Context(), id, req.input()); err != nil {
		writeError(c, err)
		return
	}
	s.writeState(c, http.StatusOK)
}

func (s *server) handleDeleteMember(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.DeleteMember(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	s.writeState(c, http.StatusOK)
}

func (s *server) handleAddProjectMember(c *gin.Context) {
	var req projectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.AddMember(c.Request.Context(), req.MemberID, req.Role); err != nil {
		writeError(c, err)
		return
	}
	s.writeState(c, http.StatusOK)
}

func (s *server) handleRemoveProjectMember(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.RemoveSelectedMember(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	s.writeState(c, http.StatusOK)
}
