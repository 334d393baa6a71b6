package ai

import (
    "context"
    "fmt"
    "log"
    "strings"

    "github.com/farmacliq/crm-backend/internal/model"
)

// ConversationReader is the slice of the message service the suggester
// consumes.
type ConversationReader interface {
    FindAll(clientID string, companyID *string) ([]model.Message, error)
}

// maxContextMessages caps how much conversation tail goes into the prompt.
const maxContextMessages = 10

// Suggester proposes an agent reply from the recent conversation history.
type Suggester struct {
    Generator Generator
    Messages  ConversationReader
}

// SuggestReply returns a suggested reply, or an empty string when the
// generator is unavailable or fails. It only errors when the conversation
// itself cannot be read.
func (s *Suggester) SuggestReply(ctx context.Context, clientID string, companyID *string) (string, error) {
    history, err := s.Messages.FindAll(clientID, companyID)
    if err != nil {
        return "", err
    }
    if len(history) == 0 || s.Generator == nil {
        return "", nil
    }

    suggestion, err := s.Generator.Generate(ctx, buildPrompt(history))
    if err != nil {
        log.Println("⚠️ reply suggestion failed for conversation", clientID, ":", err)
        return "", nil
    }
    return strings.TrimSpace(suggestion), nil
}

func buildPrompt(history []model.Message) string {
    if len(history) > maxContextMessages {
        history = history[len(history)-maxContextMessages:]
    }

    var b strings.Builder
    b.WriteString("You are a pharmacy customer-service agent. Based on the conversation below, write a short, friendly reply to the customer.\n\n")
    for _, m := range history {
        if m.Content == "" {
            continue
        }
        fmt.Fprintf(&b, "%s: %s\n", m.Sender, m.Content)
    }
    b.WriteString("\nagent:")
    return b.String()
}
