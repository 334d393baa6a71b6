package ws

import "github.com/farmacliq/crm-backend/internal/repository"

// directoryAuthorizer allows a join only when the conversation owner exists
// inside the caller's tenant, so a connection cannot subscribe to another
// company's conversations by guessing ids.
type directoryAuthorizer struct {
    clients repository.ClientRepositoryInterface
}

func NewDirectoryAuthorizer(clients repository.ClientRepositoryInterface) RoomAuthorizer {
    return &directoryAuthorizer{clients: clients}
}

func (a *directoryAuthorizer) Authorize(clientID string, companyID *string) error {
    _, err := a.clients.GetByID(clientID, companyID)
    return err
}
