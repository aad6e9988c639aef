package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/content"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/validate"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/transport/http/middleware"
)

// ContentHandler serves public page content and the moderation workflow.
type ContentHandler struct {
	svc content.Service
}

func NewContentHandler(svc content.Service) *ContentHandler { return &ContentHandler{svc: svc} }

// GetPage returns the published sections of one public page.
func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListPublished(r.Context(), chi.URLParam(r, "page"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, items, len(items))
}

func (h *ContentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	if page := r.URL.Query().Get("page"); page != "" {
		items, err := h.svc.ListByPage(r.Context(), page)
		if err != nil {
			httpError(w, err)
			return
		}
		writeList(w, items, len(items))
		return
	}
	items, err := h.svc.ListAll(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, items, len(items))
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in domain.ContentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.Create(r.Context(), &in, claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "content updated"})
}

func (h *ContentHandler) SubmitForReview(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SubmitForReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "content submitted for review"})
}

func (h *ContentHandler) Review(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.ReviewContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Approving publishes to the live site, which is a separate permission
	// from reviewing.
	if req.Approve && !domain.HasPermission(domain.Role(claims.Role), domain.PermPublishContent) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	if err := h.svc.Review(r.Context(), chi.URLParam(r, "id"), claims.UserID, &req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "review recorded"})
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "content deleted"})
}
