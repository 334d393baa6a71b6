package repository

import (
    "database/sql"
    "time"

    "github.com/google/uuid"

    appErrors "github.com/farmacliq/crm-backend/internal/errors"
    "github.com/farmacliq/crm-backend/internal/model"
)

type MessageRepositoryInterface interface {
    Create(m *model.Message) error
    ListByConversation(clientID string, companyID *string) ([]model.Message, error)
    GetByID(id string, companyID *string) (*model.Message, error)
    Update(m *model.Message) error
    Delete(id string) error
}

type MessageRepository struct {
    DB *sql.DB
}

// Create inserts a message and assigns its per-conversation sequence number
// in the same statement, so concurrent sends on one conversation cannot
// observe interleaved ordering.
func (r *MessageRepository) Create(m *model.Message) error {
    if m.ID == "" {
        m.ID = uuid.NewString()
    }
    m.CreatedAt = time.Now()
    if m.Type == "" {
        m.Type = model.MessageTypeText
    }

    query := `
        INSERT INTO messages (id, content, type, sender, file_name, file_url, client_id, company_id, seq, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
            (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE client_id = $7),
            $9)
        RETURNING seq
    `
    return r.DB.QueryRow(query,
        m.ID, m.Content, m.Type, m.Sender, m.FileName, m.FileURL,
        m.ClientID, m.CompanyID, m.CreatedAt,
    ).Scan(&m.Seq)
}

// ListByConversation replays a conversation in send order. A nil companyID
// means "any tenant" (legacy mode); otherwise rows are tenant-filtered.
func (r *MessageRepository) ListByConversation(clientID string, companyID *string) ([]model.Message, error) {
    query := `
        SELECT id, content, type, sender, file_name, file_url, client_id, company_id, seq, created_at
        FROM messages
        WHERE client_id = $1 AND ($2::varchar IS NULL OR company_id = $2)
        ORDER BY seq ASC, created_at ASC
    `
    rows, err := r.DB.Query(query, clientID, companyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    messages := []model.Message{}
    for rows.Next() {
        var m model.Message
        if err := rows.Scan(&m.ID, &m.Content, &m.Type, &m.Sender, &m.FileName, &m.FileURL,
            &m.ClientID, &m.CompanyID, &m.Seq, &m.CreatedAt); err != nil {
            return nil, err
        }
        messages = append(messages, m)
    }
    return messages, rows.Err()
}

func (r *MessageRepository) GetByID(id string, companyID *string) (*model.Message, error) {
    query := `
        SELECT id, content, type, sender, file_name, file_url, client_id, company_id, seq, created_at
        FROM messages
        WHERE id = $1 AND ($2::varchar IS NULL OR company_id = $2)
    `
    var m model.Message
    err := r.DB.QueryRow(query, id, companyID).Scan(
        &m.ID, &m.Content, &m.Type, &m.Sender, &m.FileName, &m.FileURL,
        &m.ClientID, &m.CompanyID, &m.Seq, &m.CreatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewMessageNotFound(id)
        }
        return nil, err
    }
    return &m, nil
}

// Update rewrites the local fields of a message. Dispatched content is
// immutable by convention; callers only touch content/file metadata before
// external delivery is confirmed.
func (r *MessageRepository) Update(m *model.Message) error {
    query := `UPDATE messages SET content=$1, file_name=$2, file_url=$3 WHERE id=$4`
    _, err := r.DB.Exec(query, m.Content, m.FileName, m.FileURL, m.ID)
    return err
}

func (r *MessageRepository) Delete(id string) error {
    _, err := r.DB.Exec(`DELETE FROM messages WHERE id=$1`, id)
    return err
}

var _ MessageRepositoryInterface = (*MessageRepository)(nil)
