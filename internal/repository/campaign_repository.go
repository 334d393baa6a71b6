package repository

import (
    "database/sql"
    "time"

    "github.com/google/uuid"

    appErrors "github.com/farmacliq/crm-backend/internal/errors"
    "github.com/farmacliq/crm-backend/internal/model"
)

type CampaignRepositoryInterface interface {
    Create(c *model.Campaign) error
    GetByID(id string, companyID *string) (*model.Campaign, error)
    List(companyID *string) ([]model.Campaign, error)
    Update(c *model.Campaign) error
    Delete(id string) error

    // CompleteDispatch closes a dispatch run as one logical update:
    // status becomes completed and reach grows by the run's sent count.
    CompleteDispatch(id string, sent int) error
}

type CampaignRepository struct {
    DB *sql.DB
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
    if c.ID == "" {
        c.ID = uuid.NewString()
    }
    c.CreatedAt = time.Now()
    if c.Type == "" {
        c.Type = model.CampaignOneShot
    }
    if c.Status == "" {
        c.Status = model.CampaignDraft
    }

    query := `
        INSERT INTO campaigns (id, name, type, status, target, message, trigger, scheduled_at, reach, opened, clicked, company_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
    _, err := r.DB.Exec(query,
        c.ID, c.Name, c.Type, c.Status, c.Target, c.Message, c.Trigger,
        c.ScheduledAt, c.Reach, c.Opened, c.Clicked, c.CompanyID, c.CreatedAt,
    )
    return err
}

func (r *CampaignRepository) GetByID(id string, companyID *string) (*model.Campaign, error) {
    query := `
        SELECT id, name, type, status, target, message, trigger, scheduled_at, reach, opened, clicked, company_id, created_at
        FROM campaigns
        WHERE id = $1 AND ($2::varchar IS NULL OR company_id = $2)
    `
    var c model.Campaign
    err := r.DB.QueryRow(query, id, companyID).Scan(
        &c.ID, &c.Name, &c.Type, &c.Status, &c.Target, &c.Message, &c.Trigger,
        &c.ScheduledAt, &c.Reach, &c.Opened, &c.Clicked, &c.CompanyID, &c.CreatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFound(id)
        }
        return nil, err
    }
    return &c, nil
}

func (r *CampaignRepository) List(companyID *string) ([]model.Campaign, error) {
    query := `
        SELECT id, name, type, status, target, message, trigger, scheduled_at, reach, opened, clicked, company_id, created_at
        FROM campaigns
        WHERE $1::varchar IS NULL OR company_id = $1
        ORDER BY created_at DESC
    `
    rows, err := r.DB.Query(query, companyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    campaigns := []model.Campaign{}
    for rows.Next() {
        var c model.Campaign
        if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Status, &c.Target, &c.Message, &c.Trigger,
            &c.ScheduledAt, &c.Reach, &c.Opened, &c.Clicked, &c.CompanyID, &c.CreatedAt); err != nil {
            return nil, err
        }
        campaigns = append(campaigns, c)
    }
    return campaigns, rows.Err()
}

func (r *CampaignRepository) Update(c *model.Campaign) error {
    query := `
        UPDATE campaigns
        SET name=$1, type=$2, status=$3, target=$4, message=$5, trigger=$6, scheduled_at=$7
        WHERE id=$8
    `
    _, err := r.DB.Exec(query, c.Name, c.Type, c.Status, c.Target, c.Message, c.Trigger, c.ScheduledAt, c.ID)
    return err
}

func (r *CampaignRepository) Delete(id string) error {
    _, err := r.DB.Exec(`DELETE FROM campaigns WHERE id=$1`, id)
    return err
}

func (r *CampaignRepository) CompleteDispatch(id string, sent int) error {
    query := `UPDATE campaigns SET status=$1, reach=reach+$2 WHERE id=$3`
    _, err := r.DB.Exec(query, model.CampaignCompleted, sent, id)
    return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
