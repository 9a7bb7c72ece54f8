package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoalClampProgress(t *testing.T) {
	g := Goal{Progress: -5, Status: "active"}
	g.ClampProgress()
	assert.Equal(t, 0, g.Progress)
	assert.Equal(t, "active", g.Status)

	g.Progress = 140
	g.ClampProgress()
	assert.Equal(t, 100, g.Progress)
	assert.Equal(t, "completed", g.Status)
}

func TestActionableItemOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)

	i := ActionableItem{Status: "pending", DueDate: &past}
	assert.True(t, i.Overdue(now))

	i.Status = "completed"
	assert.False(t, i.Overdue(now))

	i = ActionableItem{Status: "pending"}
	assert.False(t, i.Overdue(now))
}
