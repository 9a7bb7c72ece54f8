package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"assistant/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroadcastRepo struct {
	mu         sync.Mutex
	campaign   *domain.BroadcastCampaign
	recipients []domain.CampaignRecipient
	timeline   []domain.AnalyticsPoint
	finished   chan domain.CampaignStatus
	updates    chan string
}

func newFakeBroadcastRepo(campaign *domain.BroadcastCampaign, recipients []domain.CampaignRecipient) *fakeBroadcastRepo {
	return &fakeBroadcastRepo{
		campaign:   campaign,
		recipients: recipients,
		finished:   make(chan domain.CampaignStatus, 1),
		updates:    make(chan string, 32),
	}
}

func (f *fakeBroadcastRepo) GetTemplates(ctx context.Context) (*[]domain.BroadcastTemplate, error) {
	return &[]domain.BroadcastTemplate{}, nil
}

func (f *fakeBroadcastRepo) CreateTemplate(ctx context.Context, payload *domain.BroadcastTemplate) (*domain.BroadcastTemplate, error) {
	return payload, nil
}

func (f *fakeBroadcastRepo) ApproveTemplate(ctx context.Context, templateID string) (*domain.BroadcastTemplate, error) {
	return nil, nil
}

func (f *fakeBroadcastRepo) GetCampaigns(ctx context.Context) (*[]domain.BroadcastCampaign, error) {
	return &[]domain.BroadcastCampaign{*f.campaign}, nil
}

func (f *fakeBroadcastRepo) GetCampaign(ctx context.Context, campaignID string) (*domain.BroadcastCampaign, error) {
	return f.campaign, nil
}

func (f *fakeBroadcastRepo) CreateCampaign(ctx context.Context, payload *domain.BroadcastCampaign) (*domain.BroadcastCampaign, error) {
	return payload, nil
}

func (f *fakeBroadcastRepo) UpdateCampaign(ctx context.Context, campaignID string, payload *domain.CampaignUpdatePayload) (*domain.BroadcastCampaign, error) {
	return f.campaign, nil
}

func (f *fakeBroadcastRepo) ScheduleCampaign(ctx context.Context, campaignID string, at time.Time) (*domain.BroadcastCampaign, error) {
	return f.campaign, nil
}

func (f *fakeBroadcastRepo) BeginSending(ctx context.Context, campaignID string) (*domain.BroadcastCampaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.campaign.Status = domain.CampaignSending
	return f.campaign, nil
}

func (f *fakeBroadcastRepo) PendingRecipients(ctx context.Context, campaignID string) (*[]domain.CampaignRecipient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pending []domain.CampaignRecipient
	for _, r := range f.recipients {
		if !r.Status.Dispatched() {
			pending = append(pending, r)
		}
	}
	return &pending, nil
}

func (f *fakeBroadcastRepo) UpdateRecipientStatus(ctx context.Context, campaignID, userID string, status domain.RecipientStatus, sendErr error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.recipients {
		if f.recipients[i].UserID == userID {
			f.recipients[i].Status = status
		}
	}
	f.updates <- userID
	return nil
}

func (f *fakeBroadcastRepo) AppendTimelinePoint(ctx context.Context, campaignID string, point domain.AnalyticsPoint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeline = append(f.timeline, point)
	return nil
}

func (f *fakeBroadcastRepo) FinishSending(ctx context.Context, campaignID string, status domain.CampaignStatus) error {
	f.mu.Lock()
	f.campaign.Status = status
	f.mu.Unlock()
	f.finished <- status
	return nil
}

func (f *fakeBroadcastRepo) GetCampaignAnalytics(ctx context.Context, campaignID string) (*domain.BroadcastAnalytics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := domain.ComputeAnalytics(f.recipients)
	return &a, nil
}

func (f *fakeBroadcastRepo) ResolveAudience(ctx context.Context, audience domain.CampaignAudience) (*[]domain.User, error) {
	return &[]domain.User{}, nil
}

func (f *fakeBroadcastRepo) waitForFinish(t *testing.T) domain.CampaignStatus {
	t.Helper()
	select {
	case status := <-f.finished:
		return status
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch did not finish in time")
		return ""
	}
}

func queuedRecipients(phones ...string) []domain.CampaignRecipient {
	out := make([]domain.CampaignRecipient, 0, len(phones))
	for i, p := range phones {
		out = append(out, domain.CampaignRecipient{
			CampaignID: "camp-1",
			UserID:     string(rune('a' + i)),
			Name:       "Parent",
			Phone:      p,
			Status:     domain.RecipientQueued,
		})
	}
	return out
}

func approvedCampaign() *domain.BroadcastCampaign {
	return &domain.BroadcastCampaign{
		CampaignID: "camp-1",
		Name:       "Term Opening",
		Status:     domain.CampaignScheduled,
		Template: domain.BroadcastTemplate{
			Body:       "Hello {{name}}, school resumes Monday.",
			IsApproved: true,
			Variables:  []domain.TemplateVariable{{Name: "name", DefaultValue: "parent"}},
		},
	}
}

func TestSendCampaignDeliversAll(t *testing.T) {
	repo := newFakeBroadcastRepo(approvedCampaign(), queuedRecipients("0811", "0812", "0813"))
	sender := &fakeSender{}
	uc := NewBroadcastUseCase(repo, sender, time.Second)

	require.NoError(t, uc.SendCampaign(context.Background(), "camp-1"))

	status := repo.waitForFinish(t)
	assert.Equal(t, domain.CampaignSent, status)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, r := range repo.recipients {
		assert.Equal(t, domain.RecipientDelivered, r.Status)
	}
	assert.NotEmpty(t, repo.timeline)
}

func TestSendCampaignPartialFailure(t *testing.T) {
	repo := newFakeBroadcastRepo(approvedCampaign(), queuedRecipients("0811", "0812", "0813"))
	sender := &fakeSender{failPhones: map[string]bool{"0812": true}}
	uc := NewBroadcastUseCase(repo, sender, time.Second)

	require.NoError(t, uc.SendCampaign(context.Background(), "camp-1"))

	// One unreachable recipient must not fail the whole campaign.
	status := repo.waitForFinish(t)
	assert.Equal(t, domain.CampaignSent, status)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	var failed int
	for _, r := range repo.recipients {
		if r.Status == domain.RecipientFailed {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}

func TestSendCampaignAllFailed(t *testing.T) {
	repo := newFakeBroadcastRepo(approvedCampaign(), queuedRecipients("0811", "0812"))
	sender := &fakeSender{failPhones: map[string]bool{"0811": true, "0812": true}}
	uc := NewBroadcastUseCase(repo, sender, time.Second)

	require.NoError(t, uc.SendCampaign(context.Background(), "camp-1"))

	status := repo.waitForFinish(t)
	assert.Equal(t, domain.CampaignFailed, status)
}

func TestSendCampaignSkipsDispatchedRecipients(t *testing.T) {
	recipients := queuedRecipients("0811", "0812")
	recipients[0].Status = domain.RecipientDelivered
	repo := newFakeBroadcastRepo(approvedCampaign(), recipients)
	sender := &fakeSender{}
	uc := NewBroadcastUseCase(repo, sender, time.Second)

	require.NoError(t, uc.SendCampaign(context.Background(), "camp-1"))
	repo.waitForFinish(t)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Equal(t, []string{"0812"}, sender.sent)
}

func TestStopDispatchesLeavesCampaignResumable(t *testing.T) {
	repo := newFakeBroadcastRepo(approvedCampaign(), queuedRecipients("0811", "0812", "0813"))
	sender := &fakeSender{
		blockPhones: map[string]bool{"0812": true},
		blocked:     make(chan struct{}, 1),
	}
	uc := NewBroadcastUseCase(repo, sender, time.Second)

	require.NoError(t, uc.SendCampaign(context.Background(), "camp-1"))

	// First recipient goes out, then the sender parks on the second
	// recipient until the dispatch is stopped.
	<-sender.blocked
	uc.StopDispatches()
	<-repo.updates
	<-repo.updates

	// Wait for the dispatch goroutine to unregister itself.
	impl := uc.(*broadcastUseCase)
	deadline := time.After(5 * time.Second)
	for {
		impl.mu.Lock()
		running := len(impl.dispatches)
		impl.mu.Unlock()
		if running == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("dispatch did not stop in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	// Interrupted, not finished: the campaign stays in sending and the
	// untouched recipient stays queued for the next run.
	assert.Empty(t, repo.finished)
	assert.Equal(t, domain.CampaignSending, repo.campaign.Status)
	assert.Equal(t, domain.RecipientDelivered, repo.recipients[0].Status)
	assert.Equal(t, domain.RecipientFailed, repo.recipients[1].Status)
	assert.Equal(t, domain.RecipientQueued, repo.recipients[2].Status)
}
