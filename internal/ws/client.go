package ws

import (
    "context"
    "encoding/json"
    "log"
    "time"

    "github.com/gorilla/websocket"

    "github.com/farmacliq/crm-backend/internal/model"
    "github.com/farmacliq/crm-backend/internal/service"
)

const (
    clientBufferSize = 64

    writeWait      = 10 * time.Second
    pongWait       = 60 * time.Second
    pingPeriod     = (pongWait * 9) / 10
    maxMessageSize = 64 * 1024
)

// Client is one WebSocket connection. It carries no state beyond room
// membership and the tenant it authenticated as.
type Client struct {
    hub       *Hub
    conn      *websocket.Conn
    send      chan []byte
    rooms     map[string]struct{}
    companyID *string
}

func (c *Client) readPump() {
    defer func() {
        c.hub.drop(c)
        close(c.send)
        c.conn.Close()
        log.Println("🔴 websocket client disconnected:", c.conn.RemoteAddr())
    }()

    c.conn.SetReadLimit(maxMessageSize)
    c.conn.SetReadDeadline(time.Now().Add(pongWait))
    c.conn.SetPongHandler(func(string) error {
        c.conn.SetReadDeadline(time.Now().Add(pongWait))
        return nil
    })

    for {
        _, raw, err := c.conn.ReadMessage()
        if err != nil {
            if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
                log.Println("⚠️ websocket read error:", err)
            }
            return
        }

        var env Envelope
        if err := json.Unmarshal(raw, &env); err != nil {
            c.sendError("invalid frame: " + err.Error())
            continue
        }
        c.handleEvent(env)
    }
}

func (c *Client) handleEvent(env Envelope) {
    switch env.Event {
    case "joinRoom":
        var room string
        if err := json.Unmarshal(env.Data, &room); err != nil || room == "" {
            c.sendError("joinRoom requires a conversation id")
            return
        }
        if err := c.hub.join(c, room); err != nil {
            log.Println("⚠️ join denied for room", room, ":", err)
            c.sendError("cannot join room " + room)
            return
        }

    case "leaveRoom":
        var room string
        if err := json.Unmarshal(env.Data, &room); err != nil || room == "" {
            c.sendError("leaveRoom requires a conversation id")
            return
        }
        c.hub.leave(c, room)

    case "msgToServer":
        var in service.CreateMessageInput
        if err := json.Unmarshal(env.Data, &in); err != nil {
            c.sendError("invalid message payload")
            return
        }
        if in.Sender == "" {
            in.Sender = model.SenderAgent
        }
        // The persisted form is broadcast by the message service through the
        // hub, so every subscriber sees the canonical id and timestamp.
        if _, err := c.hub.messages.Create(context.Background(), in, c.companyID); err != nil {
            log.Println("⚠️ failed to create relayed message:", err)
            c.sendError(err.Error())
        }

    case "typing":
        var ev TypingEvent
        if err := json.Unmarshal(env.Data, &ev); err != nil || ev.ClientID == "" {
            c.sendError("invalid typing payload")
            return
        }
        c.hub.broadcastTyping(ev)

    default:
        c.sendError("unknown event " + env.Event)
    }
}

func (c *Client) sendError(reason string) {
    payload, err := marshalEnvelope("error", map[string]string{"message": reason})
    if err != nil {
        return
    }
    select {
    case c.send <- payload:
    default:
    }
}

func (c *Client) writePump() {
    ticker := time.NewTicker(pingPeriod)
    defer func() {
        ticker.Stop()
        c.conn.Close()
    }()

    for {
        select {
        case message, ok := <-c.send:
            c.conn.SetWriteDeadline(time.Now().Add(writeWait))
            if !ok {
                c.conn.WriteMessage(websocket.CloseMessage, []byte{})
                return
            }
            if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
                return
            }

        case <-ticker.C:
            c.conn.SetWriteDeadline(time.Now().Add(writeWait))
            if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
                return
            }
        }
    }
}
