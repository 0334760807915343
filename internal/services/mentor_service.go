package services

import (
	"context"
	"fmt"
	"strings"

	gslug "github.com/gosimple/slug"

	"github.com/bloo-az/bloo/internal/models"
)

// MentorStore is the persistence surface mentor administration needs.
type MentorStore interface {
	InsertMentor(m *models.Mentor) error
	GetMentor(id string) (*models.Mentor, error)
	GetMentorBySlug(slug string) (*models.Mentor, error)
	UpdateMentor(m *models.Mentor) error
	DeleteMentor(id string) error
	ListMentors(activeOnly bool) ([]*models.Mentor, error)
	CountQuestionsByMentor(mentorID string, status models.QuestionStatus) (int, error)
}

type MentorService struct {
	store MentorStore
	idGen func() string
}

func NewMentorService(store MentorStore) *MentorService {
	return &MentorService{
		store: store,
		idGen: func() string { return shortID(12) },
	}
}

type MentorInput struct {
	Name         string `json:"name"`
	University   string `json:"university"`
	Department   string `json:"department"`
	Initials     string `json:"initials"`
	Gradient     string `json:"gradient"`
	Bio          string `json:"bio"`
	Expertise    string `json:"expertise"`
	Email        string `json:"email"`
	IsActive     *bool  `json:"is_active"`
	ProfilePhoto string `json:"profile_photo"`
}

// Create registers a mentor. The slug is derived from the name and made
// unique with a numeric suffix; once assigned it never changes.
func (s *MentorService) Create(ctx context.Context, in MentorInput) (*models.Mentor, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, NewInvalidError("name is required")
	}
	slug, err := s.uniqueSlug(name)
	if err != nil {
		return nil, err
	}
	m := &models.Mentor{
		ID:           s.idGen(),
		Name:         name,
		University:   strings.TrimSpace(in.University),
		Department:   strings.TrimSpace(in.Department),
		Initials:     strings.TrimSpace(in.Initials),
		Gradient:     in.Gradient,
		Slug:         slug,
		Bio:          in.Bio,
		Expertise:    in.Expertise,
		Email:        strings.TrimSpace(in.Email),
		IsActive:     true,
		ProfilePhoto: in.ProfilePhoto,
	}
	if m.Gradient == "" {
		m.Gradient = models.DefaultGradient
	}
	if m.Initials == "" {
		m.Initials = initialsFromName(name)
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if err := s.store.InsertMentor(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update edits mentor fields. The slug is stable: renaming a mentor does not
// re-slug, so external links keep working.
func (s *MentorService) Update(ctx context.Context, id string, in MentorInput) (*models.Mentor, error) {
	m, err := s.store.GetMentor(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, NewNotFoundError("mentor not found")
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		m.Name = v
	}
	if v := strings.TrimSpace(in.University); v != "" {
		m.University = v
	}
	if v := strings.TrimSpace(in.Department); v != "" {
		m.Department = v
	}
	if v := strings.TrimSpace(in.Initials); v != "" {
		m.Initials = v
	}
	if in.Gradient != "" {
		m.Gradient = in.Gradient
	}
	if in.Bio != "" {
		m.Bio = in.Bio
	}
	if in.Expertise != "" {
		m.Expertise = in.Expertise
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		m.Email = v
	}
	if in.ProfilePhoto != "" {
		m.ProfilePhoto = in.ProfilePhoto
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if err := s.store.UpdateMentor(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a mentor. Questions keep their history; the store clears the
// association instead of cascading.
func (s *MentorService) Delete(ctx context.Context, id string) error {
	m, err := s.store.GetMentor(id)
	if err != nil {
		return err
	}
	if m == nil {
		return NewNotFoundError("mentor not found")
	}
	return s.store.DeleteMentor(id)
}

// ListActive returns active mentors, optionally filtered by a search query
// over name, university and department.
func (s *MentorService) ListActive(ctx context.Context, query string) ([]*models.Mentor, error) {
	mentors, err := s.store.ListMentors(true)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return mentors, nil
	}
	out := make([]*models.Mentor, 0, len(mentors))
	for _, m := range mentors {
		if strings.Contains(strings.ToLower(m.Name), query) ||
			strings.Contains(strings.ToLower(m.University), query) ||
			strings.Contains(strings.ToLower(m.Department), query) {
			out = append(out, m)
		}
	}
	return out, nil
}

// GetActiveBySlug returns one active mentor for public pages.
func (s *MentorService) GetActiveBySlug(ctx context.Context, slugStr string) (*models.Mentor, error) {
	m, err := s.store.GetMentorBySlug(slugStr)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.IsActive {
		return nil, NewNotFoundError("mentor not found")
	}
	return m, nil
}

// PendingCount reports how many questions currently sit with the mentor.
func (s *MentorService) PendingCount(ctx context.Context, mentorID string) (int, error) {
	return s.store.CountQuestionsByMentor(mentorID, models.StatusAssigned)
}

func (s *MentorService) uniqueSlug(name string) (string, error) {
	base := gslug.Make(name)
	if base == "" {
		return "", NewInvalidError("name does not produce a valid slug")
	}
	candidate := base
	for i := 2; ; i++ {
		existing, err := s.store.GetMentorBySlug(candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func initialsFromName(name string) string {
	var out []rune
	for _, p := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(p))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
