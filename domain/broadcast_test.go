package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampaignTransitions(t *testing.T) {
	assert.True(t, CampaignDraft.CanTransition(CampaignScheduled))
	assert.True(t, CampaignScheduled.CanTransition(CampaignSending))
	assert.True(t, CampaignScheduled.CanTransition(CampaignDraft))
	assert.True(t, CampaignSending.CanTransition(CampaignSent))
	assert.True(t, CampaignSending.CanTransition(CampaignFailed))

	assert.False(t, CampaignDraft.CanTransition(CampaignSending))
	assert.False(t, CampaignSending.CanTransition(CampaignDraft))
	assert.False(t, CampaignSent.CanTransition(CampaignDraft))
	assert.False(t, CampaignFailed.CanTransition(CampaignSending))
}

func TestCampaignFrozen(t *testing.T) {
	assert.False(t, CampaignDraft.Frozen())
	assert.False(t, CampaignScheduled.Frozen())
	assert.True(t, CampaignSending.Frozen())
	assert.True(t, CampaignSent.Frozen())
	assert.True(t, CampaignFailed.Frozen())
}

func TestTemplateRender(t *testing.T) {
	tmpl := BroadcastTemplate{
		Body: "Hello {{name}}, the {{event}} starts soon.",
		Variables: []TemplateVariable{
			{Name: "name", DefaultValue: "parent"},
			{Name: "event", DefaultValue: "meeting"},
		},
	}

	out := tmpl.Render(map[string]string{"name": "Amina"})
	assert.Equal(t, "Hello Amina, the meeting starts soon.", out)

	out = tmpl.Render(nil)
	assert.Equal(t, "Hello parent, the meeting starts soon.", out)
}

func TestComputeAnalytics(t *testing.T) {
	recipients := make([]CampaignRecipient, 0, 150)
	add := func(status RecipientStatus, n int) {
		for i := 0; i < n; i++ {
			recipients = append(recipients, CampaignRecipient{Status: status})
		}
	}
	add(RecipientDelivered, 50)
	add(RecipientRead, 60)
	add(RecipientReplied, 38)
	add(RecipientFailed, 2)

	a := ComputeAnalytics(recipients)

	assert.Equal(t, 150, a.TotalSent)
	// Read and replied messages were also delivered.
	assert.Equal(t, 148, a.Delivered)
	assert.Equal(t, 98, a.Read)
	assert.Equal(t, 38, a.Replied)
	assert.Equal(t, 2, a.Failed)
	assert.Equal(t, 98.7, a.DeliveryRate)
	assert.LessOrEqual(t, a.Delivered+a.Failed, a.TotalSent)
}

func TestComputeAnalyticsEmpty(t *testing.T) {
	a := ComputeAnalytics(nil)
	assert.Equal(t, 0, a.TotalSent)
	assert.Equal(t, 0.0, a.DeliveryRate)
	assert.Equal(t, 0.0, a.ReadRate)
	assert.Equal(t, 0.0, a.ResponseRate)
}

func TestComputeAnalyticsQueuedNotCounted(t *testing.T) {
	recipients := []CampaignRecipient{
		{Status: RecipientQueued},
		{Status: RecipientQueued},
		{Status: RecipientDelivered},
	}
	a := ComputeAnalytics(recipients)
	assert.Equal(t, 1, a.TotalSent)
	assert.Equal(t, 1, a.Delivered)
}
