package api

import (
	"encoding/json"
	"net/http"

	"github.com/bloo-az/bloo/internal/middleware"
	"github.com/bloo-az/bloo/internal/services"
)

type Router struct {
	store     Store
	questions *services.QuestionService
	mentors   *services.MentorService
	auth      *services.AdminAuthService
}

func NewRouter(store Store, notifier services.Notifier, fromEmail, adminEmail string) *Router {
	return &Router{
		store:     store,
		questions: services.NewQuestionService(store, notifier, fromEmail, adminEmail),
		mentors:   services.NewMentorService(store),
		auth:      services.NewAdminAuthService(store, middleware.SignToken),
	}
}

// Auth exposes the auth service so the server can seed the first admin.
func (rt *Router) Auth() *services.AdminAuthService { return rt.auth }

func (rt *Router) Register(mux *http.ServeMux) {
	// public, rate-limited at the outer middleware
	mux.HandleFunc("GET /api/mentors", rt.handleListMentors)
	mux.HandleFunc("GET /api/mentors/{slug}", rt.handleGetMentor)
	mux.HandleFunc("POST /api/questions", rt.handleSubmitQuestion)

	// admin
	mux.HandleFunc("POST /api/admin/login", rt.handleAdminLogin)
	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	mux.Handle("GET /api/admin/questions", admin(rt.handleAdminListQuestions))
	mux.Handle("POST /api/admin/questions/{id}/assign", admin(rt.handleAssignQuestion))
	mux.Handle("POST /api/admin/questions/{id}/answer", admin(rt.handleRecordAnswer))
	mux.Handle("POST /api/admin/questions/approve", admin(rt.handleApproveQuestions))
	mux.Handle("POST /api/admin/questions/{id}/reject", admin(rt.handleRejectQuestion))
	mux.Handle("POST /api/admin/questions/{id}/send", admin(rt.handleSendToUser))
	mux.Handle("GET /api/admin/mentors", admin(rt.handleAdminListMentors))
	mux.Handle("POST /api/admin/mentors", admin(rt.handleCreateMentor))
	mux.Handle("PUT /api/admin/mentors/{id}", admin(rt.handleUpdateMentor))
	mux.Handle("DELETE /api/admin/mentors/{id}", admin(rt.handleDeleteMentor))
	mux.Handle("PUT /api/admin/mentor-page", admin(rt.handleSetMentorPage))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service error codes onto HTTP statuses so the admin UI can
// show exactly which precondition failed.
func writeError(w http.ResponseWriter, err error) {
	se, ok := services.AsServiceError(err)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	status := http.StatusInternalServerError
	switch se.Code {
	case services.ErrorInvalid:
		status = http.StatusBadRequest
	case services.ErrorNotFound:
		status = http.StatusNotFound
	case services.ErrorUnauthorized:
		status = http.StatusUnauthorized
	case services.ErrorConflict, services.ErrorInvalidTransition, services.ErrorNoMentor, services.ErrorMentorNoEmail:
		status = http.StatusConflict
	case services.ErrorNotificationFailed:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": se.Message, "code": string(se.Code)})
}
