// cmd/worker/main.go
//
// Gateway delivery worker: drains the outbound_messages queue filled by the
// gateway channel provider and performs the actual HTTP delivery against
// the unofficial WhatsApp gateway. Best effort; failed deliveries are
// requeued up to maxRetries and then dropped.
package main

import (
    "bytes"
    "fmt"
    "log"
    "net/http"
    "time"

    "github.com/joho/godotenv"
    "github.com/streadway/amqp"

    "github.com/farmacliq/crm-backend/internal/config"
)

const maxRetries = 3

type gatewaySender struct {
    url    string
    client *http.Client
}

func (s *gatewaySender) deliver(payload []byte) error {
    resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(payload))
    if err != nil {
        return err
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return fmt.Errorf("gateway returned %d", resp.StatusCode)
    }
    return nil
}

func main() {
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    cfg, err := config.Load()
    if err != nil {
        log.Fatal("invalid configuration: ", err)
    }

    conn, err := amqp.Dial(cfg.AMQP.URL)
    if err != nil {
        log.Fatal("Failed to connect to RabbitMQ:", err)
    }
    defer conn.Close()

    ch, err := conn.Channel()
    if err != nil {
        log.Fatal("Failed to open a channel:", err)
    }
    defer ch.Close()

    q, err := ch.QueueDeclare(
        cfg.AMQP.Queue,
        true,  // durable
        false, // delete when unused
        false, // exclusive
        false, // no-wait
        nil,
    )
    if err != nil {
        log.Fatal("Failed to declare queue:", err)
    }

    msgs, err := ch.Consume(
        q.Name,
        "",
        false, // autoAck = false for reliability
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        log.Fatal("Failed to register consumer:", err)
    }

    sender := &gatewaySender{
        url:    cfg.WhatsApp.GatewayURL,
        client: &http.Client{Timeout: 15 * time.Second},
    }

    forever := make(chan bool)

    go func() {
        for d := range msgs {
            if err := sender.deliver(d.Body); err != nil {
                retries := retryCount(d.Headers)
                log.Printf("⚠️ delivery failed (attempt %d/%d): %v", retries+1, maxRetries, err)
                if retries+1 < maxRetries {
                    // Republish with the bumped counter instead of a bare
                    // Nack, which would loop forever on a dead gateway.
                    err := ch.Publish("", q.Name, false, false, amqp.Publishing{
                        ContentType:  "application/json",
                        DeliveryMode: amqp.Persistent,
                        Body:         d.Body,
                        Headers:      amqp.Table{"x-retry-count": int32(retries + 1)},
                    })
                    if err != nil {
                        log.Println("⚠️ failed to requeue:", err)
                    }
                } else {
                    log.Println("❌ giving up after", maxRetries, "attempts")
                }
            }
            d.Ack(false)
        }
    }()

    log.Println("🚀 Gateway worker running, waiting for messages...")
    <-forever
}

func retryCount(headers amqp.Table) int {
    if headers == nil {
        return 0
    }
    if v, ok := headers["x-retry-count"].(int32); ok {
        return int(v)
    }
    return 0
}
