// internal/controller/message_controller.go
package controller

import (
    "encoding/json"
    "net/http"

    "github.com/go-chi/chi/v5"

    "github.com/farmacliq/crm-backend/internal/ai"
    "github.com/farmacliq/crm-backend/internal/auth"
    "github.com/farmacliq/crm-backend/internal/model"
    "github.com/farmacliq/crm-backend/internal/service"
)

type MessageController struct {
    MessageService *service.MessageService
    Suggester      *ai.Suggester
}

func (c *MessageController) CreateMessage(w http.ResponseWriter, r *http.Request) {
    var in service.CreateMessageInput
    if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    msg, err := c.MessageService.Create(r.Context(), in, auth.CompanyID(r.Context()))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusCreated, msg)
}

// ListMessages replays one conversation. Without a clientId there is no
// conversation to replay, so the response is an empty list.
func (c *MessageController) ListMessages(w http.ResponseWriter, r *http.Request) {
    clientID := r.URL.Query().Get("clientId")
    if clientID == "" {
        writeJSON(w, http.StatusOK, []model.Message{})
        return
    }

    messages, err := c.MessageService.FindAll(clientID, auth.CompanyID(r.Context()))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, messages)
}

func (c *MessageController) GetMessage(w http.ResponseWriter, r *http.Request) {
    msg, err := c.MessageService.FindOne(chi.URLParam(r, "id"), auth.CompanyID(r.Context()))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, msg)
}

func (c *MessageController) UpdateMessage(w http.ResponseWriter, r *http.Request) {
    var in service.UpdateMessageInput
    if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    msg, err := c.MessageService.Update(chi.URLParam(r, "id"), in, auth.CompanyID(r.Context()))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, msg)
}

func (c *MessageController) DeleteMessage(w http.ResponseWriter, r *http.Request) {
    if err := c.MessageService.Remove(chi.URLParam(r, "id"), auth.CompanyID(r.Context())); err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// SuggestReply asks the text-generation collaborator for a draft agent
// reply. An unavailable generator yields an empty suggestion, not an error.
func (c *MessageController) SuggestReply(w http.ResponseWriter, r *http.Request) {
    suggestion, err := c.Suggester.SuggestReply(r.Context(), chi.URLParam(r, "clientId"), auth.CompanyID(r.Context()))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]string{"suggestion": suggestion})
}
