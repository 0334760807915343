package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/bloo-az/bloo/internal/models"
)

// memoryStore keeps everything in process memory. It backs the handler tests
// and small single-process deployments that do not need SQLite.
type memoryStore struct {
	mu            sync.RWMutex
	questions     map[string]*models.Question
	mentors       map[string]*models.Mentor
	mentorsBySlug map[string]string
	page          *models.MentorPage
	adminsByEmail map[string]*models.AdminUser
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		questions:     map[string]*models.Question{},
		mentors:       map[string]*models.Mentor{},
		mentorsBySlug: map[string]string{},
		adminsByEmail: map[string]*models.AdminUser{},
	}
}

func (s *memoryStore) InsertQuestion(q *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *q
	s.questions[q.ID] = &cp
	return nil
}

func (s *memoryStore) GetQuestion(id string) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (s *memoryStore) UpdateQuestion(q *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *q
	s.questions[q.ID] = &cp
	return nil
}

func (s *memoryStore) ListQuestions(status models.QuestionStatus) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if status != "" && q.Status != status {
			continue
		}
		cp := *q
		out = append(out, &cp)
	}
	// newest first, matching the original listing order
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memoryStore) InsertMentor(m *models.Mentor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.mentors[m.ID] = &cp
	s.mentorsBySlug[m.Slug] = m.ID
	return nil
}

func (s *memoryStore) GetMentor(id string) (*models.Mentor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mentors[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *memoryStore) GetMentorBySlug(slug string) (*models.Mentor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.mentorsBySlug[slug]
	if !ok {
		return nil, nil
	}
	cp := *s.mentors[id]
	return &cp, nil
}

func (s *memoryStore) UpdateMentor(m *models.Mentor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.mentors[m.ID] = &cp
	return nil
}

// DeleteMentor removes the mentor but keeps every question, clearing the
// association the way the SQLite schema does with ON DELETE SET NULL.
func (s *memoryStore) DeleteMentor(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mentors[id]
	if !ok {
		return nil
	}
	delete(s.mentorsBySlug, m.Slug)
	delete(s.mentors, id)
	for _, q := range s.questions {
		if q.MentorID == id {
			q.MentorID = ""
		}
	}
	return nil
}

func (s *memoryStore) ListMentors(activeOnly bool) ([]*models.Mentor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Mentor, 0, len(s.mentors))
	for _, m := range s.mentors {
		if activeOnly && !m.IsActive {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memoryStore) CountQuestionsByMentor(mentorID string, status models.QuestionStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, q := range s.questions {
		if q.MentorID == mentorID && (status == "" || q.Status == status) {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) GetMentorPage() (*models.MentorPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.page == nil {
		return nil, nil
	}
	cp := *s.page
	return &cp, nil
}

func (s *memoryStore) SetMentorPage(p *models.MentorPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.page = &cp
	return nil
}

func (s *memoryStore) FindAdminByEmail(email string) (*models.AdminUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.adminsByEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memoryStore) AddAdmin(u *models.AdminUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.adminsByEmail[strings.ToLower(u.Email)] = &cp
	return nil
}
