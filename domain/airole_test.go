package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveAutonomy(t *testing.T) {
	t.Run("most restrictive capability wins", func(t *testing.T) {
		caps := []AICapability{
			{AutonomyLevel: AutonomyFull},
			{AutonomyLevel: AutonomyAssisted},
			{AutonomyLevel: AutonomyFull},
		}
		assert.Equal(t, AutonomyAssisted, EffectiveAutonomy(caps))

		caps = append(caps, AICapability{AutonomyLevel: AutonomyProfessional})
		assert.Equal(t, AutonomyProfessional, EffectiveAutonomy(caps))
	})

	t.Run("no capabilities means no autonomy", func(t *testing.T) {
		assert.Equal(t, AutonomyProfessional, EffectiveAutonomy(nil))
	})
}

func TestMoreRestrictiveThan(t *testing.T) {
	assert.True(t, AutonomyProfessional.MoreRestrictiveThan(AutonomyAssisted))
	assert.True(t, AutonomyAssisted.MoreRestrictiveThan(AutonomyFull))
	assert.False(t, AutonomyFull.MoreRestrictiveThan(AutonomyAssisted))
	assert.False(t, AutonomyAssisted.MoreRestrictiveThan(AutonomyAssisted))
}

func TestResolveDecision(t *testing.T) {
	assert.Equal(t, DecisionAutonomous, ResolveDecision(AutonomyFull, 90, 80))
	assert.Equal(t, DecisionAutonomous, ResolveDecision(AutonomyFull, 80, 80))
	assert.Equal(t, DecisionFindProfessional, ResolveDecision(AutonomyFull, 79, 80))
	assert.Equal(t, DecisionFindProfessional, ResolveDecision(AutonomyAssisted, 95, 80))
	assert.Equal(t, DecisionEscalate, ResolveDecision(AutonomyProfessional, 100, 80))
}

func TestRankProfessionals(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	network := []ProfessionalContact{
		{ContactID: "far-high", Specializations: []string{"pediatrics"}, Rating: 4.9, Location: "Uptown", NextAvailable: now},
		{ContactID: "near-low", Specializations: []string{"pediatrics"}, Rating: 4.2, Location: "Downtown", NextAvailable: now},
		{ContactID: "near-high", Specializations: []string{"pediatrics"}, Rating: 4.8, Location: "Downtown", NextAvailable: now.Add(48 * time.Hour)},
		{ContactID: "near-high-soon", Specializations: []string{"pediatrics"}, Rating: 4.8, Location: "Downtown", NextAvailable: now},
		{ContactID: "other-spec", Specializations: []string{"dentistry"}, Rating: 5.0, Location: "Downtown", NextAvailable: now},
	}

	ranked := RankProfessionals(network, "pediatrics", "Downtown")

	assert.Len(t, ranked, 4)
	assert.Equal(t, "near-high-soon", ranked[0].ContactID)
	assert.Equal(t, "near-high", ranked[1].ContactID)
	assert.Equal(t, "near-low", ranked[2].ContactID)
	assert.Equal(t, "far-high", ranked[3].ContactID)
}

func TestRankProfessionalsNoMatch(t *testing.T) {
	network := []ProfessionalContact{
		{ContactID: "a", Specializations: []string{"dentistry"}},
	}
	assert.Empty(t, RankProfessionals(network, "pediatrics", ""))
}

func TestResolveSteps(t *testing.T) {
	t.Run("all steps complete autonomously", func(t *testing.T) {
		task := AITask{
			Confidence: 90,
			Steps: []AITaskStep{
				{Description: "draft message", Status: StepPending},
				{Description: "send message", Status: StepPending},
			},
		}
		assert.Equal(t, DecisionAutonomous, task.ResolveSteps(AutonomyFull, 80))
		assert.Equal(t, StepCompleted, task.Steps[0].Status)
		assert.Equal(t, StepCompleted, task.Steps[1].Status)
	})

	t.Run("walk stops at the first step needing a human", func(t *testing.T) {
		task := AITask{
			Confidence: 90,
			Steps: []AITaskStep{
				{Description: "gather symptoms", Status: StepPending},
				{Description: "book appointment", Status: StepPending, AutonomyLevel: AutonomyProfessional},
				{Description: "notify family", Status: StepPending},
			},
		}
		assert.Equal(t, DecisionEscalate, task.ResolveSteps(AutonomyFull, 80))
		assert.Equal(t, StepCompleted, task.Steps[0].Status)
		assert.Equal(t, StepBlocked, task.Steps[1].Status)
		assert.Equal(t, StepPending, task.Steps[2].Status)
	})

	t.Run("low step confidence goes to review", func(t *testing.T) {
		task := AITask{
			Confidence: 90,
			Steps: []AITaskStep{
				{Description: "pick a gift", Status: StepPending, Confidence: 40},
			},
		}
		assert.Equal(t, DecisionFindProfessional, task.ResolveSteps(AutonomyFull, 80))
		assert.Equal(t, StepBlocked, task.Steps[0].Status)
	})

	t.Run("retry resumes from the blocked step", func(t *testing.T) {
		task := AITask{
			Confidence: 90,
			Steps: []AITaskStep{
				{Description: "done earlier", Status: StepCompleted},
				{Description: "was blocked", Status: StepBlocked},
			},
		}
		assert.Equal(t, DecisionAutonomous, task.ResolveSteps(AutonomyFull, 80))
		assert.Equal(t, StepCompleted, task.Steps[1].Status)
	})

	t.Run("no steps falls back to the task-level policy", func(t *testing.T) {
		task := AITask{Confidence: 90}
		assert.Equal(t, DecisionAutonomous, task.ResolveSteps(AutonomyFull, 80))
		task.Confidence = 50
		assert.Equal(t, DecisionFindProfessional, task.ResolveSteps(AutonomyFull, 80))
	})
}
