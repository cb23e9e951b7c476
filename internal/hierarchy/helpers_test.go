package hierarchy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dridley/gats/internal/config"
	"github.com/dridley/gats/internal/db"
	"github.com/dridley/gats/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errInjected = errors.New("injected failure")

// testDB opens a migrated in-memory SQLite store.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Connect(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(gormDB) })
	require.NoError(t, db.AutoMigrate(gormDB))
	return gormDB
}

func testRepo(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	gormDB := testDB(t)
	return New(gormDB, nil), gormDB
}

func day(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

// fixture is a store laid out with explicit ids:
//
//	project 1 ── sprint 10 ── tasks 100, 101
//	          └─ sprint 11 ── task 110
//	project 2 ── sprint 20 ── task 200
//	member 7 contributes to projects 1 and 2, member 8 to project 1.
func fixture(t *testing.T, gormDB *gorm.DB) {
	t.Helper()
	rows := []interface{}{
		&models.Project{ID: 1, Title: "Alpha"},
		&models.Project{ID: 2, Title: "Beta"},
		&models.Sprint{ID: 10, Title: "A1", StartDate: day("2024-01-01"), EndDate: day("2024-01-14")},
		&models.Sprint{ID: 11, Title: "A2", StartDate: day("2024-01-15"), EndDate: day("2024-01-28")},
		&models.Sprint{ID: 20, Title: "B1", StartDate: day("2024-02-01"), EndDate: day("2024-02-14")},
		&models.Task{ID: 100, Title: "schema", Status: models.StatusCompleted, CommittedHours: 3, EstimatedHours: 2},
		&models.Task{ID: 101, Title: "cursor", Status: models.StatusInProgress, EstimatedHours: 5},
		&models.Task{ID: 110, Title: "docs", Status: models.StatusNotStarted},
		&models.Task{ID: 200, Title: "deploy", Status: "Blocked"},
		&models.Member{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		&models.Member{ID: 8, FirstName: "Alan", LastName: "Turing"},
		&models.ProjectSprint{ProjectID: 1, SprintID: 10},
		&models.ProjectSprint{ProjectID: 1, SprintID: 11},
		&models.ProjectSprint{ProjectID: 2, SprintID: 20},
		&models.PartOf{SprintID: 10, TaskID: 100},
		&models.PartOf{SprintID: 10, TaskID: 101},
		&models.PartOf{SprintID: 11, TaskID: 110},
		&models.PartOf{SprintID: 20, TaskID: 200},
		&models.ContributesTo{ProjectID: 1, MemberID: 7, Role: "lead"},
		&models.ContributesTo{ProjectID: 1, MemberID: 8},
		&models.ContributesTo{ProjectID: 2, MemberID: 7, Role: "reviewer"},
	}
	for _, row := range rows {
		require.NoError(t, gormDB.Create(row).Error, "insert %T", row)
	}
}

// tables is every row of every table, ordered by key.
type tables struct {
	Projects       []models.Project
	Sprints        []models.Sprint
	Tasks          []models.Task
	Members        []models.Member
	ProjectSprints []models.ProjectSprint
	PartOfs        []models.PartOf
	Contributions  []models.ContributesTo
}

func dump(t *testing.T, gormDB *gorm.DB) tables {
	t.Helper()
	var d tables
	require.NoError(t, gormDB.Order("ProjectID").Find(&d.Projects).Error)
	require.NoError(t, gormDB.Order("SprintID").Find(&d.Sprints).Error)
	require.NoError(t, gormDB.Order("TaskID").Find(&d.Tasks).Error)
	require.NoError(t, gormDB.Order("MemberID").Find(&d.Members).Error)
	require.NoError(t, gormDB.Order("ProjectID, SprintID").Find(&d.ProjectSprints).Error)
	require.NoError(t, gormDB.Order("SprintID, TaskID").Find(&d.PartOfs).Error)
	require.NoError(t, gormDB.Order("ProjectID, MemberID").Find(&d.Contributions).Error)
	return d
}

// failDeletesOn makes every DELETE against table fail until the test ends.
func failDeletesOn(t *testing.T, gormDB *gorm.DB, table string) {
	t.Helper()
	name := "test:fail_delete_" + table
	err := gormDB.Callback().Delete().Before("gorm:delete").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errInjected)
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { gormDB.Callback().Delete().Remove(name) })
}

// failCreatesOn makes every INSERT into table fail until the test ends.
func failCreatesOn(t *testing.T, gormDB *gorm.DB, table string) {
	t.Helper()
	name := "test:fail_create_" + table
	err := gormDB.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errInjected)
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { gormDB.Callback().Create().Remove(name) })
}

func loadAll(t *testing.T, r *Repository) Tree {
	t.Helper()
	tree, err := r.LoadAll(context.Background())
	require.NoError(t, err)
	return tree
}
