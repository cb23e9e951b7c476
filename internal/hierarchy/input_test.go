package hierarchy

import (
	"errors"
	"testing"

	"github.com/dridley/gats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("start date", " 2024-03-04 ")
	require.NoError(t, err)
	assert.Equal(t, day("2024-03-04"), got)

	_, err = ParseDate("start date", "03/04/2024")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "start date", ve.Field)
	assert.Contains(t, err.Error(), "want YYYY-MM-DD")
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want models.TaskStatus
	}{
		{"", models.StatusNotStarted},
		{"not started", models.StatusNotStarted},
		{"NotStarted", models.StatusNotStarted},
		{"in_progress", models.StatusInProgress},
		{"IN-PROGRESS", models.StatusInProgress},
		{"done", models.StatusCompleted},
		{"Completed", models.StatusCompleted},
		{" Blocked ", "Blocked"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseStatus(tt.in), "ParseStatus(%q)", tt.in)
	}
}

func TestSprintInput_Validate(t *testing.T) {
	tests := []struct {
		name  string
		in    SprintInput
		field string
	}{
		{"ok", SprintInput{Title: "S", Start: day("2024-01-01"), End: day("2024-01-01")}, ""},
		{"no title", SprintInput{Start: day("2024-01-01"), End: day("2024-01-02")}, "title"},
		{"no start", SprintInput{Title: "S", End: day("2024-01-02")}, "start date"},
		{"no end", SprintInput{Title: "S", Start: day("2024-01-02")}, "end date"},
		{"reversed", SprintInput{Title: "S", Start: day("2024-01-02"), End: day("2024-01-01")}, "end date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestMemberInput_Validate(t *testing.T) {
	assert.NoError(t, MemberInput{FirstName: "A", LastName: "B"}.Validate())
	assert.True(t, IsValidation(MemberInput{LastName: "B"}.Validate()))
	assert.True(t, IsValidation(MemberInput{FirstName: "A"}.Validate()))
	assert.True(t, IsValidation(MemberInput{FirstName: "A", LastName: "B", Email: "nope"}.Validate()))
}

func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, "hierarchy: project 4 not found", (&NotFoundError{Kind: KindProject, ID: 4}).Error())
	assert.Equal(t, "hierarchy: sprint not found", (&NotFoundError{Kind: KindSprint}).Error())
	assert.Equal(t, "hierarchy: invalid title: must not be empty", (&ValidationError{Field: "title", Reason: "must not be empty"}).Error())

	se := &StoreError{Op: "delete", Kind: KindTask, ID: 9, Err: errInjected}
	assert.Equal(t, "hierarchy: delete task 9: injected failure", se.Error())
	assert.ErrorIs(t, se, errInjected)
	assert.Equal(t, "hierarchy: load: injected failure", (&StoreError{Op: "load", Err: errInjected}).Error())
}

func TestClassify(t *testing.T) {
	nf := &NotFoundError{Kind: KindTask, ID: 1}
	assert.Same(t, nf, classify("delete", KindTask, 1, nf))

	err := classify("delete", KindTask, 1, errInjected)
	assert.True(t, IsStore(err))
}
