package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/teacher"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/validate"
)

// TeacherHandler serves the teacher training program endpoints: OTP-gated
// public applications and enrollments, plus the admin review surface.
type TeacherHandler struct {
	svc teacher.Service
}

func NewTeacherHandler(svc teacher.Service) *TeacherHandler { return &TeacherHandler{svc: svc} }

func (h *TeacherHandler) SendApplicationOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.RequestApplicationOTP(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification code sent"})
}

func (h *TeacherHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req domain.TeacherApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	app, err := h.svc.Apply(r.Context(), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *TeacherHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListApplications(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, apps, len(apps))
}

type reviewApplicationRequest struct {
	Status     string `json:"status" validate:"required"`
	ReviewNote string `json:"review_note"`
}

func (h *TeacherHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req reviewApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdateApplicationStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.ReviewNote); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "application updated"})
}

func (h *TeacherHandler) SendEnrollmentOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.RequestEnrollmentOTP(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification code sent"})
}

func (h *TeacherHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req domain.TeacherEnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	enr, err := h.svc.Enroll(r.Context(), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, enr)
}

func (h *TeacherHandler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	enrolls, err := h.svc.ListEnrollments(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, enrolls, len(enrolls))
}

func (h *TeacherHandler) UpdateEnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdateEnrollmentStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "enrollment updated"})
}
