package api

import (
	"encoding/json"
	"net/http"

	"github.com/bloo-az/bloo/internal/middleware"
	"github.com/bloo-az/bloo/internal/models"
	"github.com/bloo-az/bloo/internal/services"
	"github.com/bloo-az/bloo/internal/utils"
)

// POST /api/questions
// { user_name, user_email, question_text, mentor_slug? }
func (rt *Router) handleSubmitQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName     string `json:"user_name"`
		UserEmail    string `json:"user_email"`
		QuestionText string `json:"question_text"`
		MentorSlug   string `json:"mentor_slug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	q, err := rt.questions.Submit(r.Context(), services.SubmitQuestionRequest{
		UserName:     req.UserName,
		UserEmail:    req.UserEmail,
		QuestionText: req.QuestionText,
		MentorSlug:   req.MentorSlug,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      q.ID,
		"status":  q.Status,
		"message": utils.T(locale, "question.submitted"),
	})
}

// GET /api/admin/questions?status=
func (rt *Router) handleAdminListQuestions(w http.ResponseWriter, r *http.Request) {
	status := models.QuestionStatus(r.URL.Query().Get("status"))
	qs, err := rt.questions.List(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": qs})
}

// POST /api/admin/questions/{id}/assign
// { mentor_id }
func (rt *Router) handleAssignQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MentorID string `json:"mentor_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	q, err := rt.questions.AssignToMentor(r.Context(), r.PathValue("id"), req.MentorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// POST /api/admin/questions/{id}/answer
// { answer_text }
func (rt *Router) handleRecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AnswerText string `json:"answer_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	q, err := rt.questions.RecordAnswer(r.Context(), r.PathValue("id"), req.AnswerText)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// POST /api/admin/questions/approve
// { ids: [...] }
func (rt *Router) handleApproveQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, services.NewInvalidError("ids required"))
		return
	}
	n, err := rt.questions.ApproveBatch(r.Context(), req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"approved": n})
}

// POST /api/admin/questions/{id}/reject
func (rt *Router) handleRejectQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := rt.questions.Reject(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// POST /api/admin/questions/{id}/send
func (rt *Router) handleSendToUser(w http.ResponseWriter, r *http.Request) {
	q, err := rt.questions.DeliverToUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
