// internal/auth/context.go
package auth

import (
    "context"
    "net/http"
)

type contextKey struct{ name string }

var principalKey = &contextKey{"Principal"}

// Principal is the identity the upstream auth collaborator resolved for this
// request. CompanyID is nil for superadmin/legacy (ungated) calls.
type Principal struct {
    UserID    string
    CompanyID *string
}

// Middleware reads the identity headers set by the auth layer in front of
// this service. The values are trusted as-is; JWT verification happens
// upstream.
func Middleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        userID := r.Header.Get("X-User-Id")
        if userID == "" {
            http.Error(w, "unauthorized: missing X-User-Id header", http.StatusUnauthorized)
            return
        }

        p := &Principal{UserID: userID}
        if companyID := r.Header.Get("X-Company-Id"); companyID != "" {
            p.CompanyID = &companyID
        }

        ctx := context.WithValue(r.Context(), principalKey, p)
        next.ServeHTTP(w, r.WithContext(ctx))
    })
}

// FromContext returns the request principal, or nil outside the middleware.
func FromContext(ctx context.Context) *Principal {
    p, _ := ctx.Value(principalKey).(*Principal)
    return p
}

// CompanyID is a convenience accessor; nil means "any tenant" (legacy mode).
func CompanyID(ctx context.Context) *string {
    if p := FromContext(ctx); p != nil {
        return p.CompanyID
    }
    return nil
}
