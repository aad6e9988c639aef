package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/volunteer"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/validate"
)

// VolunteerHandler serves volunteer opportunities and applications.
type VolunteerHandler struct {
	svc volunteer.Service
}

func NewVolunteerHandler(svc volunteer.Service) *VolunteerHandler {
	return &VolunteerHandler{svc: svc}
}

func (h *VolunteerHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	opps, err := h.svc.ListOpenOpportunities(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, opps, len(opps))
}

func (h *VolunteerHandler) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.GetOpportunity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *VolunteerHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.RequestOTP(r.Context(), chi.URLParam(r, "id"), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification code sent"})
}

func (h *VolunteerHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req domain.VolunteerApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	app, err := h.svc.Apply(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *VolunteerHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	opps, err := h.svc.ListAllOpportunities(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, opps, len(opps))
}

func (h *VolunteerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.OpportunityInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	o, err := h.svc.CreateOpportunity(r.Context(), &in)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *VolunteerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateOpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdateOpportunity(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "opportunity updated"})
}

func (h *VolunteerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteOpportunity(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "opportunity deleted"})
}

func (h *VolunteerHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListApplications(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, apps, len(apps))
}

func (h *VolunteerHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdateApplicationStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "application updated"})
}
