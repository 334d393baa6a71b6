package controller_test

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "sync"
    "testing"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/farmacliq/crm-backend/internal/ai"
    "github.com/farmacliq/crm-backend/internal/auth"
    "github.com/farmacliq/crm-backend/internal/controller"
    appErrors "github.com/farmacliq/crm-backend/internal/errors"
    "github.com/farmacliq/crm-backend/internal/model"
    "github.com/farmacliq/crm-backend/internal/provider"
    "github.com/farmacliq/crm-backend/internal/service"
)

// --- Mocks ---

type mockMessageRepo struct {
    mu       sync.Mutex
    messages []model.Message
    nextID   int
}

func matches(rowCompany, query *string) bool {
    if query == nil {
        return true
    }
    return rowCompany != nil && *rowCompany == *query
}

func (r *mockMessageRepo) Create(m *model.Message) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.nextID++
    m.ID = fmt.Sprintf("msg-%d", r.nextID)
    m.Seq = int64(r.nextID)
    m.CreatedAt = time.Now()
    r.messages = append(r.messages, *m)
    return nil
}

func (r *mockMessageRepo) ListByConversation(clientID string, companyID *string) ([]model.Message, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    out := []model.Message{}
    for _, m := range r.messages {
        if m.ClientID == clientID && matches(m.CompanyID, companyID) {
            out = append(out, m)
        }
    }
    return out, nil
}

func (r *mockMessageRepo) GetByID(id string, companyID *string) (*model.Message, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    for _, m := range r.messages {
        if m.ID == id && matches(m.CompanyID, companyID) {
            found := m
            return &found, nil
        }
    }
    return nil, appErrors.NewMessageNotFound(id)
}

func (r *mockMessageRepo) Update(m *model.Message) error { return nil }
func (r *mockMessageRepo) Delete(id string) error        { return nil }

type noopProvider struct{}

func (noopProvider) SendMessage(_ context.Context, _ *model.Message) (*provider.Result, error) {
    return &provider.Result{Status: "sent", Provider: "noop"}, nil
}

type cannedGenerator struct{ reply string }

func (g cannedGenerator) Generate(_ context.Context, _ string) (string, error) {
    return g.reply, nil
}

// --- Helpers ---

func newMessageRouter(repo *mockMessageRepo) http.Handler {
    svc := &service.MessageService{MessageRepo: repo, Provider: noopProvider{}}
    ctrl := &controller.MessageController{
        MessageService: svc,
        Suggester:      &ai.Suggester{Generator: cannedGenerator{reply: "Posso ajudar?"}, Messages: svc},
    }

    r := chi.NewRouter()
    r.Use(auth.Middleware)
    r.Post("/messages", ctrl.CreateMessage)
    r.Get("/messages", ctrl.ListMessages)
    r.Get("/messages/{id}", ctrl.GetMessage)
    r.Patch("/messages/{id}", ctrl.UpdateMessage)
    r.Delete("/messages/{id}", ctrl.DeleteMessage)
    r.Post("/conversations/{clientId}/suggest", ctrl.SuggestReply)
    return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
    t.Helper()
    var buf bytes.Buffer
    if body != nil {
        require.NoError(t, json.NewEncoder(&buf).Encode(body))
    }
    req := httptest.NewRequest(method, path, &buf)
    req.Header.Set("X-User-Id", "user-1")
    for k, v := range headers {
        req.Header.Set(k, v)
    }
    w := httptest.NewRecorder()
    h.ServeHTTP(w, req)
    return w
}

// --- Tests ---

func TestCreateMessageEndpoint(t *testing.T) {
    router := newMessageRouter(&mockMessageRepo{})

    w := doJSON(t, router, "POST", "/messages", map[string]string{
        "content":  "olá",
        "sender":   "agent",
        "clientId": "client-1",
    }, map[string]string{"X-Company-Id": "company-1"})

    require.Equal(t, http.StatusCreated, w.Code)

    var msg model.Message
    require.NoError(t, json.NewDecoder(w.Body).Decode(&msg))
    assert.NotEmpty(t, msg.ID)
    require.NotNil(t, msg.CompanyID)
    assert.Equal(t, "company-1", *msg.CompanyID)
}

func TestCreateMessageValidationReturns400(t *testing.T) {
    router := newMessageRouter(&mockMessageRepo{})

    w := doJSON(t, router, "POST", "/messages", map[string]string{
        "content":  "olá",
        "clientId": "client-1",
    }, nil)

    assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMessagesWithoutClientIDIsEmpty(t *testing.T) {
    router := newMessageRouter(&mockMessageRepo{})

    w := doJSON(t, router, "GET", "/messages", nil, nil)

    require.Equal(t, http.StatusOK, w.Code)
    var out []model.Message
    require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
    assert.Empty(t, out)
}

func TestListMessagesIsTenantScoped(t *testing.T) {
    repo := &mockMessageRepo{}
    router := newMessageRouter(repo)

    w := doJSON(t, router, "POST", "/messages", map[string]string{
        "content": "secreto", "sender": "agent", "clientId": "client-1",
    }, map[string]string{"X-Company-Id": "company-1"})
    require.Equal(t, http.StatusCreated, w.Code)

    w = doJSON(t, router, "GET", "/messages?clientId=client-1", nil, map[string]string{"X-Company-Id": "company-2"})
    require.Equal(t, http.StatusOK, w.Code)
    var out []model.Message
    require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
    assert.Empty(t, out)
}

func TestGetUnknownMessageReturns404(t *testing.T) {
    router := newMessageRouter(&mockMessageRepo{})

    w := doJSON(t, router, "GET", "/messages/ghost", nil, nil)

    assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMissingAuthHeaderReturns401(t *testing.T) {
    router := newMessageRouter(&mockMessageRepo{})

    req := httptest.NewRequest("GET", "/messages", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)

    assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSuggestReplyEndpoint(t *testing.T) {
    repo := &mockMessageRepo{}
    router := newMessageRouter(repo)

    w := doJSON(t, router, "POST", "/messages", map[string]string{
        "content": "vocês têm dipirona?", "sender": "user", "clientId": "client-1",
    }, nil)
    require.Equal(t, http.StatusCreated, w.Code)

    w = doJSON(t, router, "POST", "/conversations/client-1/suggest", nil, nil)
    require.Equal(t, http.StatusOK, w.Code)

    var out map[string]string
    require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
    assert.Equal(t, "Posso ajudar?", out["suggestion"])
}
