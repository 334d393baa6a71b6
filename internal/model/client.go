// internal/model/client.go
package model

import "time"

// Client is the conversation owner and campaign audience member. The client
// directory is owned by the CRM modules; the messaging core only reads it.
type Client struct {
    ID        string    `db:"id" json:"id"`
    Name      string    `db:"name" json:"name"`
    Email     string    `db:"email" json:"email"`
    Phone     string    `db:"phone" json:"phone,omitempty"`
    Tags      []string  `db:"tags" json:"tags"`
    Status    string    `db:"status" json:"status"`
    CompanyID *string   `db:"company_id" json:"companyId"`
    CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// HasTag reports whether the client carries the given tag.
func (c *Client) HasTag(tag string) bool {
    for _, t := range c.Tags {
        if t == tag {
            return true
        }
    }
    return false
}
