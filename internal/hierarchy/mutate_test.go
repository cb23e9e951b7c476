package hierarchy

import (
	"context"
	"errors"
	"testing"

	"github.com/dridley/gats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	repo, _ := testRepo(t)
	ctx := context.Background()

	id, err := repo.CreateProject(ctx, ProjectInput{Title: "  Gamma  ", Description: "third"})
	require.NoError(t, err)
	assert.NotZero(t, id)

	tree := loadAll(t, repo)
	require.Equal(t, 1, tree.ProjectCount())
	assert.Equal(t, id, tree.Projects[0].ID)
	assert.Equal(t, "Gamma", tree.Projects[0].Title)
	assert.Equal(t, "third", tree.Projects[0].Description)
}

func TestCreateProject_Validation(t *testing.T) {
	repo, gormDB := testRepo(t)

	_, err := repo.CreateProject(context.Background(), ProjectInput{Title: "   "})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "title", ve.Field)
	assert.Empty(t, dump(t, gormDB).Projects)
}

func TestUpdateProject(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)
	ctx := context.Background()

	require.NoError(t, repo.UpdateProject(ctx, 2, ProjectInput{Title: "Beta prime", Description: "renamed"}))
	tree := loadAll(t, repo)
	assert.Equal(t, "Beta prime", tree.Projects[1].Title)

	// Writing identical values still succeeds.
	require.NoError(t, repo.UpdateProject(ctx, 2, ProjectInput{Title: "Beta prime", Description: "renamed"}))

	err := repo.UpdateProject(ctx, 99, ProjectInput{Title: "x"})
	assert.True(t, IsNotFound(err), "got %v", err)
}

func TestCreateSprint(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)

	id, err := repo.CreateSprint(context.Background(), 2, SprintInput{
		Title: "B2",
		Start: day("2024-02-15"),
		End:   day("2024-02-28"),
	})
	require.NoError(t, err)

	tree := loadAll(t, repo)
	require.Equal(t, 2, tree.SprintCount(1))
	s, _ := tree.Sprint(1, 1)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, "B2", s.Title)
	assert.Equal(t, "2024-02-28", s.EndDate.Format(DateLayout))
	assert.Empty(t, s.Tasks)
}

func TestCreateSprint_MissingProject(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)
	before := dump(t, gormDB)

	_, err := repo.CreateSprint(context.Background(), 99, SprintInput{Title: "x", Start: day("2024-01-01"), End: day("2024-01-01")})
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, KindProject, nf.Kind)
	assert.Equal(t, before, dump(t, gormDB))
}

// A failure between the Sprint insert and the ProjectSprint insert must not
// leave an orphaned sprint behind.
func TestCreateSprint_FailureBetweenInserts(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)
	before := dump(t, gormDB)
	failCreatesOn(t, gormDB, "ProjectSprint")

	_, err := repo.CreateSprint(context.Background(), 1, SprintInput{Title: "A3", Start: day("2024-02-01"), End: day("2024-02-02")})

	require.Error(t, err)
	assert.True(t, IsStore(err), "got %T: %v", err, err)
	assert.ErrorIs(t, err, errInjected)
	assert.Equal(t, before, dump(t, gormDB))
}

func TestCreateSprint_EndBeforeStart(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)

	_, err := repo.CreateSprint(context.Background(), 1, SprintInput{Title: "A3", Start: day("2024-02-10"), End: day("2024-02-01")})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "end date", ve.Field)
}

func TestUpdateSprint(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)
	ctx := context.Background()

	require.NoError(t, repo.UpdateSprint(ctx, 11, SprintInput{Title: "A2b", Start: day("2024-01-16"), End: day("2024-01-30")}))
	s, _ := loadAll(t, repo).Sprint(0, 1)
	assert.Equal(t, "A2b", s.Title)
	assert.Equal(t, "2024-01-16", s.StartDate.Format(DateLayout))
	assert.Equal(t, "2024-01-30", s.EndDate.Format(DateLayout))

	assert.True(t, IsNotFound(repo.UpdateSprint(ctx, 99, SprintInput{Title: "x", Start: day("2024-01-01"), End: day("2024-01-01")})))
}

func TestCreateTask(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)

	id, err := repo.CreateTask(context.Background(), 11, TaskInput{Title: "review", EstimatedHours: 4})
	require.NoError(t, err)

	s, _ := loadAll(t, repo).Sprint(0, 1)
	require.Len(t, s.Tasks, 2)
	assert.Equal(t, id, s.Tasks[1].ID)
	assert.Equal(t, models.StatusNotStarted, s.Tasks[1].Status)
	assert.Equal(t, 4, s.Tasks[1].EstimatedHours)
}

func TestCreateTask_Failures(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)
	ctx := context.Background()
	before := dump(t, gormDB)

	_, err := repo.CreateTask(ctx, 99, TaskInput{Title: "x"})
	assert.True(t, IsNotFound(err), "missing sprint: %v", err)

	_, err = repo.CreateTask(ctx, 10, TaskInput{Title: "x", CommittedHours: -1})
	assert.True(t, IsValidation(err), "negative hours: %v", err)

	failCreatesOn(t, gormDB, "PartOf")
	_, err = repo.CreateTask(ctx, 10, TaskInput{Title: "x"})
	assert.True(t, IsStore(err), "link failure: %v", err)

	assert.Equal(t, before, dump(t, gormDB))
}

func TestUpdateTask(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)
	ctx := context.Background()

	in := TaskInput{Title: "cursor", Status: models.StatusCompleted, Description: "done", CommittedHours: 6, EstimatedHours: 5}
	require.NoError(t, repo.UpdateTask(ctx, 101, in))

	task, _ := loadAll(t, repo).Task(0, 0, 1)
	assert.Equal(t, models.StatusCompleted, task.Status)
	assert.Equal(t, "done", task.Description)
	assert.Equal(t, 6, task.CommittedHours)

	assert.True(t, IsNotFound(repo.UpdateTask(ctx, 999, in)))
}

func TestAddMember(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)
	ctx := context.Background()

	require.NoError(t, repo.AddMember(ctx, 2, 8, " dev "))
	beta := loadAll(t, repo).Projects[1]
	require.Len(t, beta.Members, 2)
	assert.Equal(t, uint(8), beta.Members[1].ID)
	assert.Equal(t, "dev", beta.Members[1].Role)

	err := repo.AddMember(ctx, 2, 8, "dev")
	assert.True(t, IsValidation(err), "duplicate: %v", err)

	var nf *NotFoundError
	require.True(t, errors.As(repo.AddMember(ctx, 99, 8, ""), &nf))
	assert.Equal(t, KindProject, nf.Kind)
	require.True(t, errors.As(repo.AddMember(ctx, 1, 99, ""), &nf))
	assert.Equal(t, KindMember, nf.Kind)
}

func TestRemoveMember(t *testing.T) {
	repo, gormDB := testRepo(t)
	fixture(t, gormDB)
	ctx := context.Background()

	require.NoError(t, repo.RemoveMember(ctx, 1, 7))
	alpha := loadAll(t, repo).Projects[0]
	require.Len(t, alpha.Members, 1)
	assert.Equal(t, uint(8), alpha.Members[0].ID)
	assert.Len(t, dump(t, gormDB).Members, 2, "member row is kept")

	var nf *NotFoundError
	require.True(t, errors.As(repo.RemoveMember(ctx, 1, 7), &nf))
	assert.Equal(t, KindMembership, nf.Kind)
}

func TestMemberDirectory(t *testing.T) {
	repo, _ := testRepo(t)
	ctx := context.Background()

	members, err := repo.ListMembers(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)

	id, err := repo.CreateMember(ctx, MemberInput{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateMember(ctx, id, MemberInput{FirstName: "Grace", LastName: "Hopper", Phone: "555-0100"}))
	members, err = repo.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "555-0100", members[0].Phone)
	assert.Equal(t, "", members[0].Email)

	_, err = repo.CreateMember(ctx, MemberInput{FirstName: "X", LastName: "Y", Email: "not-an-address"})
	assert.True(t, IsValidation(err))
	assert.True(t, IsNotFound(repo.UpdateMember(ctx, 99, MemberInput{FirstName: "X", LastName: "Y"})))
}
