package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/subscriber"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/validate"
)

// SubscriberHandler serves newsletter subscription endpoints.
type SubscriberHandler struct {
	svc subscriber.Service
}

func NewSubscriberHandler(svc subscriber.Service) *SubscriberHandler {
	return &SubscriberHandler{svc: svc}
}

func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req domain.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.svc.Subscribe(r.Context(), &req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "subscribed"})
}

func (h *SubscriberHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest // email-only payload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Unsubscribe(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "unsubscribed"})
}

// List returns subscribers; ?active=true restricts to current ones.
func (h *SubscriberHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	subs, err := h.svc.List(r.Context(), activeOnly)
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, subs, len(subs))
}
