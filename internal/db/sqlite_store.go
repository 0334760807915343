package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bloo-az/bloo/internal/api"
	"github.com/bloo-az/bloo/internal/models"
)

// SQLiteStore persists the mentor platform in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

const questionColumns = `id, user_name, user_email, question_text, answer_text, mentor_id, status,
	created_at, updated_at, assigned_at, answered_at, approved_at, sent_at`

func (s *SQLiteStore) InsertQuestion(q *models.Question) error {
	_, err := s.db.Exec(`INSERT INTO questions (`+questionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.UserName, q.UserEmail, q.QuestionText, q.AnswerText,
		toNullString(q.MentorID), string(q.Status),
		q.CreatedAt, q.UpdatedAt,
		toNullTime(q.AssignedAt), toNullTime(q.AnsweredAt), toNullTime(q.ApprovedAt), toNullTime(q.SentAt))
	return err
}

func scanQuestion(row interface{ Scan(dest ...any) error }) (*models.Question, error) {
	var q models.Question
	var mentorID sql.NullString
	var status string
	var assigned, answered, approved, sent sql.NullTime
	err := row.Scan(&q.ID, &q.UserName, &q.UserEmail, &q.QuestionText, &q.AnswerText,
		&mentorID, &status, &q.CreatedAt, &q.UpdatedAt,
		&assigned, &answered, &approved, &sent)
	if err != nil {
		return nil, err
	}
	q.MentorID = mentorID.String
	q.Status = models.QuestionStatus(status)
	q.CreatedAt = q.CreatedAt.UTC()
	q.UpdatedAt = q.UpdatedAt.UTC()
	q.AssignedAt = fromNullTime(assigned)
	q.AnsweredAt = fromNullTime(answered)
	q.ApprovedAt = fromNullTime(approved)
	q.SentAt = fromNullTime(sent)
	return &q, nil
}

func (s *SQLiteStore) GetQuestion(id string) (*models.Question, error) {
	row := s.db.QueryRow(`SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return q, err
}

func (s *SQLiteStore) UpdateQuestion(q *models.Question) error {
	_, err := s.db.Exec(`UPDATE questions SET user_name = ?, user_email = ?, question_text = ?,
		answer_text = ?, mentor_id = ?, status = ?, updated_at = ?,
		assigned_at = ?, answered_at = ?, approved_at = ?, sent_at = ?
		WHERE id = ?`,
		q.UserName, q.UserEmail, q.QuestionText, q.AnswerText,
		toNullString(q.MentorID), string(q.Status), q.UpdatedAt,
		toNullTime(q.AssignedAt), toNullTime(q.AnsweredAt), toNullTime(q.ApprovedAt), toNullTime(q.SentAt),
		q.ID)
	return err
}

func (s *SQLiteStore) ListQuestions(status models.QuestionStatus) ([]*models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

const mentorColumns = `id, name, university, department, initials, gradient, slug, bio, expertise,
	email, is_active, profile_photo`

func (s *SQLiteStore) InsertMentor(m *models.Mentor) error {
	_, err := s.db.Exec(`INSERT INTO mentors (`+mentorColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.University, m.Department, m.Initials, m.Gradient, m.Slug,
		m.Bio, m.Expertise, m.Email, boolToInt64(m.IsActive), toNullString(m.ProfilePhoto))
	return err
}

func scanMentor(row interface{ Scan(dest ...any) error }) (*models.Mentor, error) {
	var m models.Mentor
	var active int64
	var photo sql.NullString
	err := row.Scan(&m.ID, &m.Name, &m.University, &m.Department, &m.Initials, &m.Gradient,
		&m.Slug, &m.Bio, &m.Expertise, &m.Email, &active, &photo)
	if err != nil {
		return nil, err
	}
	m.IsActive = active != 0
	m.ProfilePhoto = photo.String
	return &m, nil
}

func (s *SQLiteStore) GetMentor(id string) (*models.Mentor, error) {
	row := s.db.QueryRow(`SELECT `+mentorColumns+` FROM mentors WHERE id = ?`, id)
	m, err := scanMentor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (s *SQLiteStore) GetMentorBySlug(slug string) (*models.Mentor, error) {
	row := s.db.QueryRow(`SELECT `+mentorColumns+` FROM mentors WHERE slug = ?`, slug)
	m, err := scanMentor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (s *SQLiteStore) UpdateMentor(m *models.Mentor) error {
	_, err := s.db.Exec(`UPDATE mentors SET name = ?, university = ?, department = ?, initials = ?,
		gradient = ?, bio = ?, expertise = ?, email = ?, is_active = ?, profile_photo = ?
		WHERE id = ?`,
		m.Name, m.University, m.Department, m.Initials, m.Gradient,
		m.Bio, m.Expertise, m.Email, boolToInt64(m.IsActive), toNullString(m.ProfilePhoto),
		m.ID)
	return err
}

// DeleteMentor relies on ON DELETE SET NULL: questions keep their history and
// just lose the association.
func (s *SQLiteStore) DeleteMentor(id string) error {
	_, err := s.db.Exec(`DELETE FROM mentors WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) ListMentors(activeOnly bool) ([]*models.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.Mentor
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CountQuestionsByMentor(mentorID string, status models.QuestionStatus) (int, error) {
	query := `SELECT COUNT(*) FROM questions WHERE mentor_id = ?`
	args := []any{mentorID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *SQLiteStore) GetMentorPage() (*models.MentorPage, error) {
	var p models.MentorPage
	err := s.db.QueryRow(`SELECT title, description FROM mentor_page WHERE id = 1`).
		Scan(&p.Title, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLiteStore) SetMentorPage(p *models.MentorPage) error {
	_, err := s.db.Exec(`INSERT INTO mentor_page (id, title, description) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, description = excluded.description`,
		p.Title, p.Description)
	return err
}

func (s *SQLiteStore) FindAdminByEmail(email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := s.db.QueryRow(`SELECT id, email, pass_hash, created_at FROM admin_users WHERE email = ?`,
		strings.TrimSpace(email)).
		Scan(&u.ID, &u.Email, &u.PassHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (s *SQLiteStore) AddAdmin(u *models.AdminUser) error {
	_, err := s.db.Exec(`INSERT INTO admin_users (id, email, pass_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PassHash, u.CreatedAt)
	return err
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
