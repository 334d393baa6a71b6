// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "io"
    "net/http"

    "github.com/go-chi/chi/v5"

    "github.com/farmacliq/crm-backend/internal/auth"
    "github.com/farmacliq/crm-backend/internal/service"
)

type CampaignController struct {
    CampaignService *service.CampaignService
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
    var in service.CreateCampaignInput
    if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.Create(r.Context(), in, auth.CompanyID(r.Context()))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusCreated, campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    campaigns, err := c.CampaignService.FindAll(auth.CompanyID(r.Context()))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, campaigns)
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
    campaign, err := c.CampaignService.FindOne(chi.URLParam(r, "id"), auth.CompanyID(r.Context()))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
    var in service.UpdateCampaignInput
    if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.Update(chi.URLParam(r, "id"), in, auth.CompanyID(r.Context()))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
    if err := c.CampaignService.Remove(chi.URLParam(r, "id"), auth.CompanyID(r.Context())); err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// DispatchCampaign fans the campaign out to its audience. Re-dispatching a
// completed campaign requires the explicit resend flag; the body is
// optional for a first run.
func (c *CampaignController) DispatchCampaign(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Resend bool `json:"resend"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    sent, err := c.CampaignService.Dispatch(r.Context(), chi.URLParam(r, "id"), auth.CompanyID(r.Context()), body.Resend)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]int{"sent": sent})
}
