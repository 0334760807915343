package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/bloo-az/bloo/internal/models"
	"github.com/bloo-az/bloo/internal/services"
)

// GET /api/mentors?q=
func (rt *Router) handleListMentors(w http.ResponseWriter, r *http.Request) {
	mentors, err := rt.mentors.ListActive(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := rt.store.GetMentorPage()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mentors": mentors, "page": page})
}

// GET /api/mentors/{slug}
func (rt *Router) handleGetMentor(w http.ResponseWriter, r *http.Request) {
	m, err := rt.mentors.GetActiveBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// GET /api/admin/mentors — includes inactive mentors and their workload.
func (rt *Router) handleAdminListMentors(w http.ResponseWriter, r *http.Request) {
	mentors, err := rt.store.ListMentors(false)
	if err != nil {
		writeError(w, err)
		return
	}
	type row struct {
		*models.Mentor
		PendingQuestions int `json:"pending_questions"`
	}
	out := make([]row, 0, len(mentors))
	for _, m := range mentors {
		n, err := rt.mentors.PendingCount(r.Context(), m.ID)
		if err != nil {
			log.Printf("pending count for mentor %s: %v", m.ID, err)
		}
		out = append(out, row{Mentor: m, PendingQuestions: n})
	}
	writeJSON(w, http.StatusOK, map[string]any{"mentors": out})
}

// POST /api/admin/mentors
func (rt *Router) handleCreateMentor(w http.ResponseWriter, r *http.Request) {
	var in services.MentorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	m, err := rt.mentors.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// PUT /api/admin/mentors/{id}
func (rt *Router) handleUpdateMentor(w http.ResponseWriter, r *http.Request) {
	var in services.MentorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	m, err := rt.mentors.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DELETE /api/admin/mentors/{id}
func (rt *Router) handleDeleteMentor(w http.ResponseWriter, r *http.Request) {
	if err := rt.mentors.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// PUT /api/admin/mentor-page
func (rt *Router) handleSetMentorPage(w http.ResponseWriter, r *http.Request) {
	var p models.MentorPage
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	if err := rt.store.SetMentorPage(&p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
