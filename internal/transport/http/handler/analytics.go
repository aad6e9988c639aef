package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/analytics"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/validate"
)

// AnalyticsHandler serves the visit beacon and the admin dashboard rollup.
type AnalyticsHandler struct {
	svc analytics.Service
}

func NewAnalyticsHandler(svc analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Track records one page view. The beacon always gets a 202 on accepted
// input; it is fire-and-forget from the browser's point of view.
func (h *AnalyticsHandler) Track(w http.ResponseWriter, r *http.Request) {
	var in domain.VisitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Track(r.Context(), &in, r.Referer(), r.UserAgent()); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, MessageEnvelope{Message: "recorded"})
}

// Summary returns the dashboard rollup; ?days= sets the window (max 90).
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	sum, err := h.svc.Summary(r.Context(), days)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
