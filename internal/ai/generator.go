// Package ai wraps the external text-generation collaborator. It is
// strictly downstream of the message store: any failure here degrades to
// "no suggestion" and never affects message delivery.
package ai

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "time"
)

// Generator produces a completion for a prompt.
type Generator interface {
    Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIGenerator calls an OpenAI-compatible chat completions endpoint.
type OpenAIGenerator struct {
    apiKey  string
    baseURL string
    model   string
    client  *http.Client
}

func NewOpenAIGenerator(apiKey, baseURL, model string) *OpenAIGenerator {
    return &OpenAIGenerator{
        apiKey:  apiKey,
        baseURL: baseURL,
        model:   model,
        client:  &http.Client{Timeout: 30 * time.Second},
    }
}

type chatRequest struct {
    Model    string        `json:"model"`
    Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

type chatResponse struct {
    Choices []struct {
        Message chatMessage `json:"message"`
    } `json:"choices"`
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
    body, err := json.Marshal(chatRequest{
        Model:    g.model,
        Messages: []chatMessage{{Role: "user", Content: prompt}},
    })
    if err != nil {
        return "", err
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
    if err != nil {
        return "", err
    }
    req.Header.Set("Authorization", "Bearer "+g.apiKey)
    req.Header.Set("Content-Type", "application/json")

    resp, err := g.client.Do(req)
    if err != nil {
        return "", err
    }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK {
        return "", fmt.Errorf("completion endpoint returned %d", resp.StatusCode)
    }

    var parsed chatResponse
    if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
        return "", err
    }
    if len(parsed.Choices) == 0 {
        return "", fmt.Errorf("completion endpoint returned no choices")
    }
    return parsed.Choices[0].Message.Content, nil
}

// MockGenerator is the local-mode generator.
type MockGenerator struct{}

func (MockGenerator) Generate(_ context.Context, _ string) (string, error) {
    return "Obrigado pelo contato! Posso ajudar com mais alguma coisa?", nil
}

var (
    _ Generator = (*OpenAIGenerator)(nil)
    _ Generator = MockGenerator{}
)
