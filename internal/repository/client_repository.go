package repository

import (
    "database/sql"

    "github.com/lib/pq"

    appErrors "github.com/farmacliq/crm-backend/internal/errors"
    "github.com/farmacliq/crm-backend/internal/model"
)

// ClientRepositoryInterface is the read-only slice of the client directory
// the messaging core needs: audience resolution and conversation-owner
// checks. Client CRUD lives with the CRM modules.
type ClientRepositoryInterface interface {
    GetByID(id string, companyID *string) (*model.Client, error)
    ListByCompany(companyID *string) ([]model.Client, error)
}

type ClientRepository struct {
    DB *sql.DB
}

func (r *ClientRepository) GetByID(id string, companyID *string) (*model.Client, error) {
    query := `
        SELECT id, name, email, phone, tags, status, company_id, created_at
        FROM clients
        WHERE id = $1 AND ($2::varchar IS NULL OR company_id = $2)
    `
    var c model.Client
    err := r.DB.QueryRow(query, id, companyID).Scan(
        &c.ID, &c.Name, &c.Email, &c.Phone, pq.Array(&c.Tags), &c.Status, &c.CompanyID, &c.CreatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewClientNotFound(id)
        }
        return nil, err
    }
    return &c, nil
}

func (r *ClientRepository) ListByCompany(companyID *string) ([]model.Client, error) {
    query := `
        SELECT id, name, email, phone, tags, status, company_id, created_at
        FROM clients
        WHERE $1::varchar IS NULL OR company_id = $1
        ORDER BY created_at DESC
    `
    rows, err := r.DB.Query(query, companyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    clients := []model.Client{}
    for rows.Next() {
        var c model.Client
        if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, pq.Array(&c.Tags),
            &c.Status, &c.CompanyID, &c.CreatedAt); err != nil {
            return nil, err
        }
        clients = append(clients, c)
    }
    return clients, rows.Err()
}

var _ ClientRepositoryInterface = (*ClientRepository)(nil)
