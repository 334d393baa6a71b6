// internal/errors/errors.go
package appErrors

import (
    "errors"
    "fmt"
)

// ErrMessageNotFound is a sentinel error
type ErrMessageNotFound struct {
    MessageID string
}

func (e *ErrMessageNotFound) Error() string {
    return fmt.Sprintf("message with ID %s not found", e.MessageID)
}

func NewMessageNotFound(id string) error {
    return &ErrMessageNotFound{MessageID: id}
}

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %s not found", e.CampaignID)
}

func NewCampaignNotFound(id string) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrClientNotFound is a sentinel error
type ErrClientNotFound struct {
    ClientID string
}

func (e *ErrClientNotFound) Error() string {
    return fmt.Sprintf("client with ID %s not found", e.ClientID)
}

func NewClientNotFound(id string) error {
    return &ErrClientNotFound{ClientID: id}
}

// ErrValidation reports a rejected request field before persistence.
type ErrValidation struct {
    Field  string
    Reason string
}

func (e *ErrValidation) Error() string {
    return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) error {
    return &ErrValidation{Field: field, Reason: reason}
}

// ErrDispatchInProgress means a second dispatch was attempted while one was
// already in flight for the same campaign.
type ErrDispatchInProgress struct {
    CampaignID string
}

func (e *ErrDispatchInProgress) Error() string {
    return fmt.Sprintf("dispatch already in progress for campaign %s", e.CampaignID)
}

func NewDispatchInProgress(id string) error {
    return &ErrDispatchInProgress{CampaignID: id}
}

// ErrCampaignAlreadyCompleted means a dispatch hit a completed campaign
// without the explicit resend flag.
type ErrCampaignAlreadyCompleted struct {
    CampaignID string
}

func (e *ErrCampaignAlreadyCompleted) Error() string {
    return fmt.Sprintf("campaign %s already completed; pass resend to dispatch again", e.CampaignID)
}

func NewCampaignAlreadyCompleted(id string) error {
    return &ErrCampaignAlreadyCompleted{CampaignID: id}
}

// IsNotFound matches any of the not-found sentinels.
func IsNotFound(err error) bool {
    var m *ErrMessageNotFound
    var c *ErrCampaignNotFound
    var cl *ErrClientNotFound
    return errors.As(err, &m) || errors.As(err, &c) || errors.As(err, &cl)
}

// IsValidation matches rejected-input errors.
func IsValidation(err error) bool {
    var v *ErrValidation
    return errors.As(err, &v)
}

// IsConflict matches dispatch races and resend-required conditions.
func IsConflict(err error) bool {
    var p *ErrDispatchInProgress
    var d *ErrCampaignAlreadyCompleted
    return errors.As(err, &p) || errors.As(err, &d)
}
