// internal/model/message.go
package model

import "time"

type MessageType string

const (
    MessageTypeText     MessageType = "text"
    MessageTypeImage    MessageType = "image"
    MessageTypeAudio    MessageType = "audio"
    MessageTypeDocument MessageType = "document"
)

type MessageSender string

const (
    SenderAgent  MessageSender = "agent"
    SenderUser   MessageSender = "user"
    SenderSystem MessageSender = "system"
)

// Message is one row of a conversation. CompanyID is nil in single-tenant
// (legacy) deployments. Seq is monotonic within a conversation.
type Message struct {
    ID        string        `db:"id" json:"id"`
    Content   string        `db:"content" json:"content,omitempty"`
    Type      MessageType   `db:"type" json:"type"`
    Sender    MessageSender `db:"sender" json:"sender"`
    FileName  string        `db:"file_name" json:"fileName,omitempty"`
    FileURL   string        `db:"file_url" json:"fileUrl,omitempty"`
    ClientID  string        `db:"client_id" json:"clientId"`
    CompanyID *string       `db:"company_id" json:"companyId"`
    Seq       int64         `db:"seq" json:"seq"`
    CreatedAt time.Time     `db:"created_at" json:"createdAt"`
}

func ValidSender(s MessageSender) bool {
    return s == SenderAgent || s == SenderUser || s == SenderSystem
}

func ValidMessageType(t MessageType) bool {
    switch t {
    case MessageTypeText, MessageTypeImage, MessageTypeAudio, MessageTypeDocument:
        return true
    }
    return false
}
