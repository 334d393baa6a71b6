package auth_test

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/farmacliq/crm-backend/internal/auth"
)

func TestMiddlewareRejectsMissingUser(t *testing.T) {
    handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        t.Fatal("handler should not run without identity")
    }))

    req := httptest.NewRequest("GET", "/messages", nil)
    w := httptest.NewRecorder()
    handler.ServeHTTP(w, req)

    assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewarePutsPrincipalInContext(t *testing.T) {
    var got *auth.Principal
    handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        got = auth.FromContext(r.Context())
    }))

    req := httptest.NewRequest("GET", "/messages", nil)
    req.Header.Set("X-User-Id", "user-7")
    req.Header.Set("X-Company-Id", "company-3")
    w := httptest.NewRecorder()
    handler.ServeHTTP(w, req)

    require.NotNil(t, got)
    assert.Equal(t, "user-7", got.UserID)
    require.NotNil(t, got.CompanyID)
    assert.Equal(t, "company-3", *got.CompanyID)
}

func TestCompanyIDIsNilWithoutHeader(t *testing.T) {
    var company *string
    handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        company = auth.CompanyID(r.Context())
    }))

    req := httptest.NewRequest("GET", "/messages", nil)
    req.Header.Set("X-User-Id", "superadmin")
    w := httptest.NewRecorder()
    handler.ServeHTTP(w, req)

    assert.Nil(t, company)
}

func TestCompanyIDOutsideMiddlewareIsNil(t *testing.T) {
    req := httptest.NewRequest("GET", "/messages", nil)
    assert.Nil(t, auth.CompanyID(req.Context()))
}
