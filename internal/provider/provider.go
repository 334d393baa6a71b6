// Package provider abstracts the external messaging transport. One provider
// is selected per process at startup and injected into the message service;
// variants are swappable without touching the service.
package provider

import (
    "context"

    "github.com/farmacliq/crm-backend/internal/config"
    "github.com/farmacliq/crm-backend/internal/model"
)

// Result is what the active channel reported for one outbound message.
type Result struct {
    Status   string `json:"status"`
    Provider string `json:"provider"`
}

// ChatProvider sends one message over the external channel. Delivery is
// best effort: errors are reported to the caller, which logs them and
// persists the message regardless.
type ChatProvider interface {
    SendMessage(ctx context.Context, msg *model.Message) (*Result, error)
}

// FromConfig builds the one provider this process will use.
func FromConfig(cfg *config.Config) (ChatProvider, error) {
    if cfg.WhatsApp.Provider == "official" {
        return NewOfficialProvider(cfg.WhatsApp.APIURL, cfg.WhatsApp.APIToken, cfg.WhatsApp.PhoneNumberID), nil
    }
    return NewGatewayProvider(cfg.AMQP.URL, cfg.AMQP.Queue)
}
