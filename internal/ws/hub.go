// Package ws is the realtime relay: a per-conversation room abstraction
// over WebSocket. Agent-typed messages are bridged into the message
// service; persisted messages and typing events are fanned back out to
// every subscriber of the conversation's room.
package ws

import (
    "encoding/json"
    "log"
    "net/http"
    "sync"

    "github.com/gorilla/websocket"

    "github.com/farmacliq/crm-backend/internal/auth"
    "github.com/farmacliq/crm-backend/internal/model"
    "github.com/farmacliq/crm-backend/internal/service"
)

// RoomAuthorizer validates that a caller may subscribe to a conversation
// before the join takes effect. Backed by the client directory.
type RoomAuthorizer interface {
    Authorize(clientID string, companyID *string) error
}

// Envelope is the JSON frame exchanged on the socket.
type Envelope struct {
    Event string          `json:"event"`
    Data  json.RawMessage `json:"data"`
}

// TypingEvent is ephemeral: rebroadcast to the room, never persisted.
type TypingEvent struct {
    ClientID string `json:"clientId"`
    IsTyping bool   `json:"isTyping"`
}

// Hub tracks room membership and fans events out to subscribers.
// Fan-out is non-blocking with a drop-if-full strategy per connection, so a
// slow consumer can never stall the relay.
type Hub struct {
    mu    sync.RWMutex
    rooms map[string]map[*Client]struct{}

    messages   service.MessageCreator
    authorizer RoomAuthorizer
    upgrader   websocket.Upgrader
}

func NewHub(messages service.MessageCreator, authorizer RoomAuthorizer) *Hub {
    return &Hub{
        rooms:      make(map[string]map[*Client]struct{}),
        messages:   messages,
        authorizer: authorizer,
        upgrader: websocket.Upgrader{
            ReadBufferSize:  1024,
            WriteBufferSize: 1024,
            // Origin filtering is handled by the CORS layer in front.
            CheckOrigin: func(r *http.Request) bool { return true },
        },
    }
}

// ServeWS upgrades the request. The tenant principal comes from the auth
// middleware wrapping this route.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
    companyID := auth.CompanyID(r.Context())

    conn, err := h.upgrader.Upgrade(w, r, nil)
    if err != nil {
        log.Println("⚠️ websocket upgrade failed:", err)
        return
    }

    client := &Client{
        hub:       h,
        conn:      conn,
        send:      make(chan []byte, clientBufferSize),
        rooms:     make(map[string]struct{}),
        companyID: companyID,
    }
    log.Println("🟢 websocket client connected:", conn.RemoteAddr())

    go client.writePump()
    go client.readPump()
}

// join subscribes a connection to a conversation room after the directory
// confirms the conversation belongs to the caller's tenant.
func (h *Hub) join(c *Client, room string) error {
    if err := h.authorizer.Authorize(room, c.companyID); err != nil {
        return err
    }

    h.mu.Lock()
    defer h.mu.Unlock()
    if h.rooms[room] == nil {
        h.rooms[room] = make(map[*Client]struct{})
    }
    h.rooms[room][c] = struct{}{}
    c.rooms[room] = struct{}{}
    return nil
}

func (h *Hub) leave(c *Client, room string) {
    h.mu.Lock()
    defer h.mu.Unlock()
    h.removeFromRoom(c, room)
}

// drop unsubscribes a disconnected client from every room it joined.
func (h *Hub) drop(c *Client) {
    h.mu.Lock()
    defer h.mu.Unlock()
    for room := range c.rooms {
        h.removeFromRoom(c, room)
    }
}

// caller holds h.mu
func (h *Hub) removeFromRoom(c *Client, room string) {
    if members, ok := h.rooms[room]; ok {
        delete(members, c)
        if len(members) == 0 {
            delete(h.rooms, room)
        }
    }
    delete(c.rooms, room)
}

// BroadcastMessage implements service.Relay: every persisted message is
// pushed to the subscribers of its conversation in canonical stored form.
func (h *Hub) BroadcastMessage(msg *model.Message) {
    h.broadcast(msg.ClientID, "msgToClient", msg)
}

func (h *Hub) broadcastTyping(ev TypingEvent) {
    h.broadcast(ev.ClientID, "typing", ev)
}

func (h *Hub) broadcast(room, event string, data any) {
    payload, err := marshalEnvelope(event, data)
    if err != nil {
        log.Println("⚠️ failed to encode", event, "event:", err)
        return
    }

    h.mu.RLock()
    defer h.mu.RUnlock()
    for client := range h.rooms[room] {
        // Non-blocking send; a full buffer drops the frame for that client.
        select {
        case client.send <- payload:
        default:
        }
    }
}

func marshalEnvelope(event string, data any) ([]byte, error) {
    raw, err := json.Marshal(data)
    if err != nil {
        return nil, err
    }
    return json.Marshal(Envelope{Event: event, Data: raw})
}
