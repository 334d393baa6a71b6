// internal/service/message_service.go
package service

import (
    "context"
    "log"

    appErrors "github.com/farmacliq/crm-backend/internal/errors"
    "github.com/farmacliq/crm-backend/internal/model"
    "github.com/farmacliq/crm-backend/internal/provider"
    "github.com/farmacliq/crm-backend/internal/repository"
)

// Relay receives every persisted message for room broadcast. The websocket
// hub implements it; a nil relay disables broadcasting (worker, tests).
type Relay interface {
    BroadcastMessage(msg *model.Message)
}

// MessageService is the unit of work for a single message: it is the sole
// writer of the message store and the sole caller of the channel provider.
type MessageService struct {
    MessageRepo repository.MessageRepositoryInterface
    Provider    provider.ChatProvider
    Relay       Relay
}

type CreateMessageInput struct {
    Content  string              `json:"content,omitempty"`
    Type     model.MessageType   `json:"type,omitempty"`
    Sender   model.MessageSender `json:"sender"`
    ClientID string              `json:"clientId"`
    FileName string              `json:"fileName,omitempty"`
    FileURL  string              `json:"fileUrl,omitempty"`
}

type UpdateMessageInput struct {
    Content  *string `json:"content,omitempty"`
    FileName *string `json:"fileName,omitempty"`
    FileURL  *string `json:"fileUrl,omitempty"`
}

// Create validates, dispatches outbound traffic to the channel provider and
// persists the row. Provider failures are logged and never block the local
// record: at-least-once locally, best-effort externally. Inbound (user)
// messages skip the provider entirely.
func (s *MessageService) Create(ctx context.Context, in CreateMessageInput, companyID *string) (*model.Message, error) {
    if in.Sender == "" {
        return nil, appErrors.NewValidation("sender", "is required")
    }
    if !model.ValidSender(in.Sender) {
        return nil, appErrors.NewValidation("sender", "must be agent, user or system")
    }
    if in.ClientID == "" {
        return nil, appErrors.NewValidation("clientId", "is required")
    }
    if in.Type == "" {
        in.Type = model.MessageTypeText
    }
    if !model.ValidMessageType(in.Type) {
        return nil, appErrors.NewValidation("type", "must be text, image, audio or document")
    }
    if in.Type == model.MessageTypeText && in.Content == "" {
        return nil, appErrors.NewValidation("content", "is required for text messages")
    }

    msg := &model.Message{
        Content:   in.Content,
        Type:      in.Type,
        Sender:    in.Sender,
        FileName:  in.FileName,
        FileURL:   in.FileURL,
        ClientID:  in.ClientID,
        CompanyID: companyID,
    }

    if in.Sender == model.SenderAgent || in.Sender == model.SenderSystem {
        if _, err := s.Provider.SendMessage(ctx, msg); err != nil {
            log.Println("⚠️ provider delivery failed for client", in.ClientID, ":", err)
        }
    }

    if err := s.MessageRepo.Create(msg); err != nil {
        return nil, err
    }

    if s.Relay != nil {
        s.Relay.BroadcastMessage(msg)
    }
    return msg, nil
}

// FindAll replays one conversation, oldest first. No rows is an empty
// slice, not an error.
func (s *MessageService) FindAll(clientID string, companyID *string) ([]model.Message, error) {
    return s.MessageRepo.ListByConversation(clientID, companyID)
}

func (s *MessageService) FindOne(id string, companyID *string) (*model.Message, error) {
    return s.MessageRepo.GetByID(id, companyID)
}

// Update mutates local fields only after an ownership lookup succeeds, so a
// foreign tenant observes plain not-found.
func (s *MessageService) Update(id string, in UpdateMessageInput, companyID *string) (*model.Message, error) {
    msg, err := s.MessageRepo.GetByID(id, companyID)
    if err != nil {
        return nil, err
    }

    if in.Content != nil {
        msg.Content = *in.Content
    }
    if in.FileName != nil {
        msg.FileName = *in.FileName
    }
    if in.FileURL != nil {
        msg.FileURL = *in.FileURL
    }

    if err := s.MessageRepo.Update(msg); err != nil {
        return nil, err
    }
    return msg, nil
}

func (s *MessageService) Remove(id string, companyID *string) error {
    if _, err := s.MessageRepo.GetByID(id, companyID); err != nil {
        return err
    }
    return s.MessageRepo.Delete(id)
}
