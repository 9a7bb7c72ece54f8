package usecase

import (
	"context"
	"sync"
	"time"

	"assistant/config"
	"assistant/domain"
)

type broadcastUseCase struct {
	repo    domain.BroadcastRepo
	sender  domain.MessageSender
	TimeOut time.Duration

	mu         sync.Mutex
	dispatches map[string]context.CancelFunc
}

func NewBroadcastUseCase(repo domain.BroadcastRepo, sender domain.MessageSender, to time.Duration) domain.BroadcastUseCase {
	return &broadcastUseCase{
		repo:       repo,
		sender:     sender,
		TimeOut:    to,
		dispatches: make(map[string]context.CancelFunc),
	}
}

func (bu *broadcastUseCase) GetTemplates(ctx context.Context) (*[]domain.BroadcastTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	v, err := bu.repo.GetTemplates(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (bu *broadcastUseCase) CreateTemplate(ctx context.Context, payload *domain.BroadcastTemplate) (*domain.BroadcastTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	v, err := bu.repo.CreateTemplate(ctx, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (bu *broadcastUseCase) ApproveTemplate(ctx context.Context, templateID string) (*domain.BroadcastTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	v, err := bu.repo.ApproveTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (bu *broadcastUseCase) GetCampaigns(ctx context.Context) (*[]domain.BroadcastCampaign, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	v, err := bu.repo.GetCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (bu *broadcastUseCase) CreateCampaign(ctx context.Context, payload *domain.BroadcastCampaign) (*domain.BroadcastCampaign, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	v, err := bu.repo.CreateCampaign(ctx, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (bu *broadcastUseCase) UpdateCampaign(ctx context.Context, campaignID string, payload *domain.CampaignUpdatePayload) (*domain.BroadcastCampaign, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	v, err := bu.repo.UpdateCampaign(ctx, campaignID, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (bu *broadcastUseCase) ScheduleCampaign(ctx context.Context, campaignID string, at time.Time) (*domain.BroadcastCampaign, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	v, err := bu.repo.ScheduleCampaign(ctx, campaignID, at)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (bu *broadcastUseCase) GetCampaignAnalytics(ctx context.Context, campaignID string) (*domain.BroadcastAnalytics, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	v, err := bu.repo.GetCampaignAnalytics(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// SendCampaign freezes the campaign, queues its recipients and hands the
// bulk dispatch to a background job. The request returns as soon as the
// campaign is in sending; an interrupted dispatch can be resumed by calling
// SendCampaign again, already-processed recipients are skipped.
func (bu *broadcastUseCase) SendCampaign(ctx context.Context, campaignID string) error {
	startCtx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	campaign, err := bu.repo.BeginSending(startCtx, campaignID)
	if err != nil {
		return err
	}

	bu.mu.Lock()
	if _, running := bu.dispatches[campaignID]; running {
		bu.mu.Unlock()
		return nil
	}
	dispatchCtx, stop := context.WithCancel(context.Background())
	bu.dispatches[campaignID] = stop
	bu.mu.Unlock()

	go bu.dispatch(dispatchCtx, campaign)
	return nil
}

// StopDispatches cancels every running dispatch. Interrupted campaigns
// stay in sending and resume on the next SendCampaign call. Called on
// graceful shutdown.
func (bu *broadcastUseCase) StopDispatches() {
	bu.mu.Lock()
	defer bu.mu.Unlock()
	for id, stop := range bu.dispatches {
		stop()
		delete(bu.dispatches, id)
	}
}

// timelineTick controls how often a timeline point is appended while a
// dispatch is running.
const timelineTick = 25

func (bu *broadcastUseCase) dispatch(ctx context.Context, campaign *domain.BroadcastCampaign) {
	log := config.GetLogrusInstance()

	defer func() {
		bu.mu.Lock()
		delete(bu.dispatches, campaign.CampaignID)
		bu.mu.Unlock()
	}()

	pending, err := bu.repo.PendingRecipients(ctx, campaign.CampaignID)
	if err != nil {
		log.Errorf("campaign %s: failed to load pending recipients: %v", campaign.CampaignID, err)
		return
	}

	var sent, delivered, failed int
	for i, recipient := range *pending {
		select {
		case <-ctx.Done():
			// Interrupted: the campaign stays in sending with a
			// consistent partial snapshot and resumes later.
			log.Warnf("campaign %s: dispatch interrupted after %d recipients", campaign.CampaignID, i)
			return
		default:
		}

		body := campaign.Template.Render(map[string]string{
			"name": recipient.Name,
		})

		sent++
		sendErr := bu.sender.SendText(ctx, recipient.Phone, sendBodyOrDefault(body, campaign.Name))
		status := domain.RecipientDelivered
		if sendErr != nil {
			status = domain.RecipientFailed
			failed++
			log.Warnf("campaign %s: send to %s failed: %v", campaign.CampaignID, recipient.UserID, sendErr)
		} else {
			delivered++
		}

		// Per-recipient failures are recorded without aborting the batch.
		if err := bu.repo.UpdateRecipientStatus(ctx, campaign.CampaignID, recipient.UserID, status, sendErr); err != nil {
			log.Errorf("campaign %s: failed to persist recipient status: %v", campaign.CampaignID, err)
			return
		}

		if sent%timelineTick == 0 {
			bu.appendTick(ctx, campaign.CampaignID, sent, delivered, failed)
		}
	}

	bu.appendTick(ctx, campaign.CampaignID, sent, delivered, failed)

	final := domain.CampaignSent
	if delivered == 0 && failed > 0 {
		final = domain.CampaignFailed
	}
	if err := bu.repo.FinishSending(ctx, campaign.CampaignID, final); err != nil {
		log.Errorf("campaign %s: failed to finalize: %v", campaign.CampaignID, err)
		return
	}
	log.Infof("campaign %s: dispatch finished (%d delivered, %d failed)", campaign.CampaignID, delivered, failed)
}

func (bu *broadcastUseCase) appendTick(ctx context.Context, campaignID string, sent, delivered, failed int) {
	point := domain.AnalyticsPoint{
		Timestamp: time.Now(),
		Sent:      sent,
		Delivered: delivered,
		Failed:    failed,
	}
	if err := bu.repo.AppendTimelinePoint(ctx, campaignID, point); err != nil {
		config.GetLogrusInstance().Warnf("campaign %s: failed to append timeline point: %v", campaignID, err)
	}
}

func sendBodyOrDefault(body, fallback string) string {
	if body == "" {
		return fallback
	}
	return body
}
