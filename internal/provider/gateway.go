package provider

import (
    "context"
    "encoding/json"
    "log"
    "sync"

    "github.com/streadway/amqp"

    "github.com/farmacliq/crm-backend/internal/model"
)

// GatewayProvider hands outbound messages to the unofficial gateway through
// a durable queue; cmd/worker drains it and performs the HTTP delivery.
type GatewayProvider struct {
    conn  *amqp.Connection
    queue string

    mu sync.Mutex
    ch *amqp.Channel
}

// GatewayJob is the wire format the delivery worker consumes.
type GatewayJob struct {
    ClientID string `json:"client_id"`
    Content  string `json:"content,omitempty"`
    Type     string `json:"type"`
    FileName string `json:"file_name,omitempty"`
    FileURL  string `json:"file_url,omitempty"`
}

func NewGatewayProvider(url, queue string) (*GatewayProvider, error) {
    conn, err := amqp.Dial(url)
    if err != nil {
        return nil, err
    }

    ch, err := conn.Channel()
    if err != nil {
        conn.Close()
        return nil, err
    }

    if _, err := ch.QueueDeclare(
        queue,
        true,  // durable
        false, // delete when unused
        false, // exclusive
        false, // no-wait
        nil,
    ); err != nil {
        conn.Close()
        return nil, err
    }

    return &GatewayProvider{conn: conn, queue: queue, ch: ch}, nil
}

func (p *GatewayProvider) SendMessage(ctx context.Context, msg *model.Message) (*Result, error) {
    job := GatewayJob{
        ClientID: msg.ClientID,
        Content:  msg.Content,
        Type:     string(msg.Type),
        FileName: msg.FileName,
        FileURL:  msg.FileURL,
    }
    body, err := json.Marshal(job)
    if err != nil {
        return nil, err
    }

    p.mu.Lock()
    defer p.mu.Unlock()
    if err := p.ch.Publish(
        "",      // default exchange
        p.queue, // routing key
        false,
        false,
        amqp.Publishing{
            ContentType:  "application/json",
            DeliveryMode: amqp.Persistent,
            Body:         body,
        },
    ); err != nil {
        return &Result{Status: "failed", Provider: "gateway"}, err
    }

    log.Printf("[GATEWAY] queued %s message for client %s", msg.Type, msg.ClientID)
    return &Result{Status: "queued", Provider: "gateway"}, nil
}

func (p *GatewayProvider) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    if err := p.ch.Close(); err != nil {
        log.Println("⚠️ failed to close AMQP channel:", err)
    }
    return p.conn.Close()
}

var _ ChatProvider = (*GatewayProvider)(nil)
