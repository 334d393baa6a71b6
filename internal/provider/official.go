package provider

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "time"

    "github.com/farmacliq/crm-backend/internal/model"
)

// OfficialProvider talks to the Meta Cloud style messages endpoint.
type OfficialProvider struct {
    baseURL       string
    token         string
    phoneNumberID string
    client        *http.Client
}

func NewOfficialProvider(baseURL, token, phoneNumberID string) *OfficialProvider {
    return &OfficialProvider{
        baseURL:       baseURL,
        token:         token,
        phoneNumberID: phoneNumberID,
        client:        &http.Client{Timeout: 15 * time.Second},
    }
}

type officialPayload struct {
    MessagingProduct string        `json:"messaging_product"`
    To               string        `json:"to"`
    Type             string        `json:"type"`
    Text             *officialText `json:"text,omitempty"`
    Link             string        `json:"link,omitempty"`
}

type officialText struct {
    Body string `json:"body"`
}

func (p *OfficialProvider) SendMessage(ctx context.Context, msg *model.Message) (*Result, error) {
    payload := officialPayload{
        MessagingProduct: "whatsapp",
        To:               msg.ClientID,
        Type:             string(msg.Type),
    }
    if msg.Type == model.MessageTypeText {
        payload.Text = &officialText{Body: msg.Content}
    } else {
        payload.Link = msg.FileURL
    }

    body, err := json.Marshal(payload)
    if err != nil {
        return nil, err
    }

    url := fmt.Sprintf("%s/%s/messages", p.baseURL, p.phoneNumberID)
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
    if err != nil {
        return nil, err
    }
    req.Header.Set("Authorization", "Bearer "+p.token)
    req.Header.Set("Content-Type", "application/json")

    resp, err := p.client.Do(req)
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return &Result{Status: "failed", Provider: "official"},
            fmt.Errorf("official API returned %d for client %s", resp.StatusCode, msg.ClientID)
    }

    log.Printf("[OFFICIAL API] sent %s message to client %s", msg.Type, msg.ClientID)
    return &Result{Status: "sent", Provider: "official"}, nil
}

var _ ChatProvider = (*OfficialProvider)(nil)
