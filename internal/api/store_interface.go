package api

import "github.com/bloo-az/bloo/internal/models"

// Store aggregates everything the routers and services persist. Implemented
// by the SQLite store in internal/db and by the in-memory store used in
// tests.
type Store interface {
	InsertQuestion(q *models.Question) error
	GetQuestion(id string) (*models.Question, error)
	UpdateQuestion(q *models.Question) error
	ListQuestions(status models.QuestionStatus) ([]*models.Question, error)

	InsertMentor(m *models.Mentor) error
	GetMentor(id string) (*models.Mentor, error)
	GetMentorBySlug(slug string) (*models.Mentor, error)
	UpdateMentor(m *models.Mentor) error
	DeleteMentor(id string) error
	ListMentors(activeOnly bool) ([]*models.Mentor, error)
	CountQuestionsByMentor(mentorID string, status models.QuestionStatus) (int, error)

	GetMentorPage() (*models.MentorPage, error)
	SetMentorPage(p *models.MentorPage) error

	FindAdminByEmail(email string) (*models.AdminUser, error)
	AddAdmin(u *models.AdminUser) error
}
