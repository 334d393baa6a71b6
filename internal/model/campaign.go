// internal/model/campaign.go
package model

import "time"

type CampaignType string

const (
    CampaignOneShot    CampaignType = "one-shot"
    CampaignAutomation CampaignType = "automation"
)

type CampaignStatus string

const (
    CampaignDraft     CampaignStatus = "draft"
    CampaignScheduled CampaignStatus = "scheduled"
    CampaignRunning   CampaignStatus = "running"
    CampaignCompleted CampaignStatus = "completed"
    CampaignPaused    CampaignStatus = "paused"
)

// Campaign is a tenant-scoped broadcast of one message template.
// Reach only grows; the dispatch engine is the sole writer of Reach and of
// the transition to completed.
type Campaign struct {
    ID          string         `db:"id" json:"id"`
    Name        string         `db:"name" json:"name"`
    Type        CampaignType   `db:"type" json:"type"`
    Status      CampaignStatus `db:"status" json:"status"`
    Target      string         `db:"target" json:"target,omitempty"` // e.g. "all", "tag:vip"
    Message     string         `db:"message" json:"message,omitempty"`
    Trigger     string         `db:"trigger" json:"trigger,omitempty"` // automation key, e.g. "lead_created"
    ScheduledAt *time.Time     `db:"scheduled_at" json:"scheduledAt,omitempty"`
    Reach       int            `db:"reach" json:"reach"`
    Opened      int            `db:"opened" json:"opened"`
    Clicked     int            `db:"clicked" json:"clicked"`
    CompanyID   *string        `db:"company_id" json:"companyId"`
    CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}

func ValidCampaignType(t CampaignType) bool {
    return t == CampaignOneShot || t == CampaignAutomation
}

func ValidCampaignStatus(s CampaignStatus) bool {
    switch s {
    case CampaignDraft, CampaignScheduled, CampaignRunning, CampaignCompleted, CampaignPaused:
        return true
    }
    return false
}
