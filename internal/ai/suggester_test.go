package ai_test

import (
    "context"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/farmacliq/crm-backend/internal/ai"
    "github.com/farmacliq/crm-backend/internal/model"
)

type stubHistory struct {
    messages []model.Message
}

func (s stubHistory) FindAll(clientID string, companyID *string) ([]model.Message, error) {
    return s.messages, nil
}

type failingGenerator struct{}

func (failingGenerator) Generate(_ context.Context, _ string) (string, error) {
    return "", errors.New("upstream unavailable")
}

type recordingGenerator struct {
    prompt string
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
    g.prompt = prompt
    return "Temos sim! Posso separar para você?", nil
}

func history(contents ...string) []model.Message {
    out := make([]model.Message, 0, len(contents))
    for i, c := range contents {
        sender := model.SenderUser
        if i%2 == 1 {
            sender = model.SenderAgent
        }
        out = append(out, model.Message{Content: c, Type: model.MessageTypeText, Sender: sender, ClientID: "client-1"})
    }
    return out
}

func TestSuggestReplyUsesConversationHistory(t *testing.T) {
    gen := &recordingGenerator{}
    s := &ai.Suggester{
        Generator: gen,
        Messages:  stubHistory{messages: history("vocês têm dipirona?")},
    }

    suggestion, err := s.SuggestReply(context.Background(), "client-1", nil)

    require.NoError(t, err)
    assert.Equal(t, "Temos sim! Posso separar para você?", suggestion)
    assert.Contains(t, gen.prompt, "vocês têm dipirona?")
}

func TestSuggestReplyEmptyHistoryIsEmpty(t *testing.T) {
    s := &ai.Suggester{Generator: &recordingGenerator{}, Messages: stubHistory{}}

    suggestion, err := s.SuggestReply(context.Background(), "client-1", nil)

    require.NoError(t, err)
    assert.Empty(t, suggestion)
}

func TestSuggestReplyDegradesOnGeneratorFailure(t *testing.T) {
    s := &ai.Suggester{
        Generator: failingGenerator{},
        Messages:  stubHistory{messages: history("oi")},
    }

    suggestion, err := s.SuggestReply(context.Background(), "client-1", nil)

    require.NoError(t, err)
    assert.Empty(t, suggestion)
}

func TestSuggestReplyWithoutGeneratorIsEmpty(t *testing.T) {
    s := &ai.Suggester{Messages: stubHistory{messages: history("oi")}}

    suggestion, err := s.SuggestReply(context.Background(), "client-1", nil)

    require.NoError(t, err)
    assert.Empty(t, suggestion)
}

func TestMockGeneratorAlwaysReplies(t *testing.T) {
    s := &ai.Suggester{
        Generator: ai.MockGenerator{},
        Messages:  stubHistory{messages: history("bom dia")},
    }

    suggestion, err := s.SuggestReply(context.Background(), "client-1", nil)

    require.NoError(t, err)
    assert.NotEmpty(t, suggestion)
}
