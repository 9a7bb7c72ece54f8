package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionTransitions(t *testing.T) {
	assert.True(t, SubmissionPending.CanTransition(SubmissionInProgress))
	assert.True(t, SubmissionPending.CanTransition(SubmissionSubmitted))
	assert.True(t, SubmissionInProgress.CanTransition(SubmissionSubmitted))
	assert.True(t, SubmissionSubmitted.CanTransition(SubmissionGraded))

	assert.False(t, SubmissionSubmitted.CanTransition(SubmissionPending))
	assert.False(t, SubmissionGraded.CanTransition(SubmissionSubmitted))
	assert.False(t, SubmissionInProgress.CanTransition(SubmissionGraded))
	assert.False(t, SubmissionPending.CanTransition(SubmissionGraded))
}

func TestSubmissionTerminal(t *testing.T) {
	assert.False(t, SubmissionPending.Terminal())
	assert.False(t, SubmissionInProgress.Terminal())
	assert.True(t, SubmissionSubmitted.Terminal())
	assert.True(t, SubmissionGraded.Terminal())
}

func TestHomeworkRollup(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("completed when every submission is terminal", func(t *testing.T) {
		a := HomeworkAssignment{
			DueDate: now.AddDate(0, 0, -1),
			Submissions: []HomeworkSubmission{
				{Status: SubmissionSubmitted},
				{Status: SubmissionGraded},
			},
		}
		assert.Equal(t, AssignmentCompleted, a.Rollup(now))
	})

	t.Run("overdue when past due with an open submission", func(t *testing.T) {
		a := HomeworkAssignment{
			DueDate: now.AddDate(0, 0, -1),
			Submissions: []HomeworkSubmission{
				{Status: SubmissionSubmitted},
				{Status: SubmissionPending},
			},
		}
		assert.Equal(t, AssignmentOverdue, a.Rollup(now))
	})

	t.Run("active before due date with open submissions", func(t *testing.T) {
		a := HomeworkAssignment{
			DueDate: now.AddDate(0, 0, 3),
			Submissions: []HomeworkSubmission{
				{Status: SubmissionInProgress},
			},
		}
		assert.Equal(t, AssignmentActive, a.Rollup(now))
	})

	t.Run("no submissions follows the due date", func(t *testing.T) {
		a := HomeworkAssignment{DueDate: now.AddDate(0, 0, 3)}
		assert.Equal(t, AssignmentActive, a.Rollup(now))

		a.DueDate = now.AddDate(0, 0, -3)
		assert.Equal(t, AssignmentOverdue, a.Rollup(now))
	})
}

func TestSubmissionOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, -1)

	open := HomeworkSubmission{Status: SubmissionInProgress}
	assert.True(t, open.Overdue(due, now))

	done := HomeworkSubmission{Status: SubmissionSubmitted}
	assert.False(t, done.Overdue(due, now))
}
