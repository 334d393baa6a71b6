// internal/service/campaign_service.go
package service

import (
    "context"
    "log"
    "time"

    appErrors "github.com/farmacliq/crm-backend/internal/errors"
    "github.com/farmacliq/crm-backend/internal/lock"
    "github.com/farmacliq/crm-backend/internal/model"
    "github.com/farmacliq/crm-backend/internal/repository"
)

// MessageCreator is the slice of MessageService the dispatch engine uses.
type MessageCreator interface {
    Create(ctx context.Context, in CreateMessageInput, companyID *string) (*model.Message, error)
}

// CampaignService owns the campaign lifecycle and the batch fan-out. It is
// a batch client of the message service; it never talks to the provider or
// the message store directly.
type CampaignService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    ClientRepo   repository.ClientRepositoryInterface
    Messages     MessageCreator
    Locks        lock.DispatchLock
}

type CreateCampaignInput struct {
    Name        string               `json:"name"`
    Type        model.CampaignType   `json:"type,omitempty"`
    Status      model.CampaignStatus `json:"status,omitempty"`
    Target      string               `json:"target,omitempty"`
    Message     string               `json:"message,omitempty"`
    Trigger     string               `json:"trigger,omitempty"`
    ScheduledAt *time.Time           `json:"scheduledAt,omitempty"`
}

type UpdateCampaignInput struct {
    Name        *string               `json:"name,omitempty"`
    Type        *model.CampaignType   `json:"type,omitempty"`
    Status      *model.CampaignStatus `json:"status,omitempty"`
    Target      *string               `json:"target,omitempty"`
    Message     *string               `json:"message,omitempty"`
    Trigger     *string               `json:"trigger,omitempty"`
    ScheduledAt *time.Time            `json:"scheduledAt,omitempty"`
}

// Create persists a campaign. A one-shot campaign created already running
// is dispatched immediately in the background.
func (s *CampaignService) Create(ctx context.Context, in CreateCampaignInput, companyID *string) (*model.Campaign, error) {
    if in.Name == "" {
        return nil, appErrors.NewValidation("name", "is required")
    }
    if in.Type != "" && !model.ValidCampaignType(in.Type) {
        return nil, appErrors.NewValidation("type", "must be one-shot or automation")
    }
    if in.Status != "" && !model.ValidCampaignStatus(in.Status) {
        return nil, appErrors.NewValidation("status", "is not a known campaign status")
    }

    c := &model.Campaign{
        Name:        in.Name,
        Type:        in.Type,
        Status:      in.Status,
        Target:      in.Target,
        Message:     in.Message,
        Trigger:     in.Trigger,
        ScheduledAt: in.ScheduledAt,
        CompanyID:   companyID,
    }
    if err := s.CampaignRepo.Create(c); err != nil {
        return nil, err
    }

    if c.Type == model.CampaignOneShot && c.Status == model.CampaignRunning {
        go func() {
            // Detached from the request; the dispatch lock still applies.
            if _, err := s.Dispatch(context.Background(), c.ID, companyID, false); err != nil {
                log.Println("⚠️ immediate dispatch of campaign", c.ID, "failed:", err)
            }
        }()
    }

    return c, nil
}

func (s *CampaignService) FindAll(companyID *string) ([]model.Campaign, error) {
    return s.CampaignRepo.List(companyID)
}

func (s *CampaignService) FindOne(id string, companyID *string) (*model.Campaign, error) {
    return s.CampaignRepo.GetByID(id, companyID)
}

func (s *CampaignService) Update(id string, in UpdateCampaignInput, companyID *string) (*model.Campaign, error) {
    c, err := s.CampaignRepo.GetByID(id, companyID)
    if err != nil {
        return nil, err
    }

    if in.Name != nil {
        c.Name = *in.Name
    }
    if in.Type != nil {
        if !model.ValidCampaignType(*in.Type) {
            return nil, appErrors.NewValidation("type", "must be one-shot or automation")
        }
        c.Type = *in.Type
    }
    if in.Status != nil {
        if !model.ValidCampaignStatus(*in.Status) {
            return nil, appErrors.NewValidation("status", "is not a known campaign status")
        }
        c.Status = *in.Status
    }
    if in.Target != nil {
        c.Target = *in.Target
    }
    if in.Message != nil {
        c.Message = *in.Message
    }
    if in.Trigger != nil {
        c.Trigger = *in.Trigger
    }
    if in.ScheduledAt != nil {
        c.ScheduledAt = in.ScheduledAt
    }

    if err := s.CampaignRepo.Update(c); err != nil {
        return nil, err
    }
    return c, nil
}

func (s *CampaignService) Remove(id string, companyID *string) error {
    if _, err := s.CampaignRepo.GetByID(id, companyID); err != nil {
        return err
    }
    return s.CampaignRepo.Delete(id)
}

// Dispatch fans the campaign message out to the resolved audience and
// returns the number of per-target sends that succeeded. The whole run is
// single-flight per campaign id; per-target failures are logged and the
// batch continues. A missing campaign is a no-op, not an error.
func (s *CampaignService) Dispatch(ctx context.Context, id string, companyID *string, resend bool) (int, error) {
    acquired, err := s.Locks.TryAcquire(ctx, id)
    if err != nil {
        return 0, err
    }
    if !acquired {
        return 0, appErrors.NewDispatchInProgress(id)
    }
    defer func() {
        if err := s.Locks.Release(ctx, id); err != nil {
            log.Println("⚠️ failed to release dispatch lock for campaign", id, ":", err)
        }
    }()

    campaign, err := s.CampaignRepo.GetByID(id, companyID)
    if err != nil {
        if appErrors.IsNotFound(err) {
            return 0, nil
        }
        return 0, err
    }

    if campaign.Status == model.CampaignCompleted && !resend {
        return 0, appErrors.NewCampaignAlreadyCompleted(id)
    }

    clients, err := s.ClientRepo.ListByCompany(companyID)
    if err != nil {
        return 0, err
    }

    predicate := ParseTarget(campaign.Target)
    sent := 0
    for i := range clients {
        client := &clients[i]
        if client.Phone == "" || !predicate.Evaluate(client) {
            continue
        }

        _, err := s.Messages.Create(ctx, CreateMessageInput{
            Content:  RenderForClient(campaign.Message, client),
            ClientID: client.ID,
            Type:     model.MessageTypeText,
            Sender:   model.SenderSystem,
        }, companyID)
        if err != nil {
            log.Println("⚠️ failed to send campaign message to client", client.ID, ":", err)
            continue
        }
        sent++
    }

    if err := s.CampaignRepo.CompleteDispatch(id, sent); err != nil {
        return sent, err
    }

    log.Printf("📣 campaign %s dispatched to %d client(s)", id, sent)
    return sent, nil
}
