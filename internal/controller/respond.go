// internal/controller/respond.go
package controller

import (
    "encoding/json"
    "net/http"

    appErrors "github.com/farmacliq/crm-backend/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(payload)
}

// writeError maps the service error taxonomy onto HTTP statuses. Not-found
// never reveals cross-tenant existence; conflicts cover dispatch races.
func writeError(w http.ResponseWriter, err error) {
    switch {
    case appErrors.IsValidation(err):
        http.Error(w, err.Error(), http.StatusBadRequest)
    case appErrors.IsNotFound(err):
        http.Error(w, err.Error(), http.StatusNotFound)
    case appErrors.IsConflict(err):
        http.Error(w, err.Error(), http.StatusConflict)
    default:
        http.Error(w, err.Error(), http.StatusInternalServerError)
    }
}
