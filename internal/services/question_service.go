package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bloo-az/bloo/internal/models"
)

// QuestionStore is the persistence surface the lifecycle manager needs.
type QuestionStore interface {
	InsertQuestion(q *models.Question) error
	GetQuestion(id string) (*models.Question, error)
	UpdateQuestion(q *models.Question) error
	ListQuestions(status models.QuestionStatus) ([]*models.Question, error)
	GetMentor(id string) (*models.Mentor, error)
	GetMentorBySlug(slug string) (*models.Mentor, error)
}

// Notifier delivers one email per call. Implementations own their transport
// and timeout; the lifecycle manager only sees success or failure.
type Notifier interface {
	Send(ctx context.Context, subject, body, from string, to []string) error
}

// QuestionService owns the question state machine. Status and the matching
// timestamp are only written together, and for transitions that send email
// they are committed only after the notifier confirms the send.
type QuestionService struct {
	store      QuestionStore
	notifier   Notifier
	from       string
	adminEmail string
	now        func() time.Time
	idGen      func() string
}

func NewQuestionService(store QuestionStore, notifier Notifier, from, adminEmail string) *QuestionService {
	return &QuestionService{
		store:      store,
		notifier:   notifier,
		from:       from,
		adminEmail: adminEmail,
		now:        func() time.Time { return time.Now().UTC() },
		idGen:      func() string { return shortID(12) },
	}
}

type SubmitQuestionRequest struct {
	UserName     string
	UserEmail    string
	QuestionText string
	MentorSlug   string
}

// Submit creates a pending question. A preselected mentor is attached
// immediately but the question still waits for an admin to send it out.
// The heads-up email to the admin inbox is best effort; its failure never
// fails the submission.
func (s *QuestionService) Submit(ctx context.Context, req SubmitQuestionRequest) (*models.Question, error) {
	name := strings.TrimSpace(req.UserName)
	email := strings.TrimSpace(req.UserEmail)
	text := strings.TrimSpace(req.QuestionText)
	if name == "" || text == "" {
		return nil, NewInvalidError("name and question text are required")
	}
	if !strings.Contains(email, "@") {
		return nil, NewInvalidError("a valid email is required")
	}

	q := &models.Question{
		ID:           s.idGen(),
		UserName:     name,
		UserEmail:    email,
		QuestionText: text,
		Status:       models.StatusPending,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	if req.MentorSlug != "" {
		mentor, err := s.store.GetMentorBySlug(req.MentorSlug)
		if err != nil {
			return nil, err
		}
		if mentor == nil || !mentor.IsActive {
			return nil, NewNotFoundError("mentor not found")
		}
		q.MentorID = mentor.ID
	}
	if err := s.store.InsertQuestion(q); err != nil {
		return nil, err
	}

	if s.notifier != nil && s.adminEmail != "" {
		subject := fmt.Sprintf("New Question from %s", q.UserName)
		body := fmt.Sprintf(
			"You have a new question from %s (%s):\n\n%s\n\nLogin to the admin panel to assign it to a mentor.",
			q.UserName, q.UserEmail, q.QuestionText,
		)
		if err := s.notifier.Send(ctx, subject, body, s.from, []string{s.adminEmail}); err != nil {
			log.Printf("question %s: admin notification failed: %v", q.ID, err)
		}
	}
	return q, nil
}

// AssignToMentor emails the question to the mentor and, only if the send
// succeeds, moves it to assigned and stamps assigned_at. On notifier failure
// the question stays pending and nothing is persisted.
func (s *QuestionService) AssignToMentor(ctx context.Context, questionID, mentorID string) (*models.Question, error) {
	q, err := s.store.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NewNotFoundError("question not found")
	}
	next, ok := models.NextStatus(q.Status, models.OpAssign)
	if !ok {
		return nil, NewInvalidTransitionError(fmt.Sprintf("question is %s; only pending questions can be assigned", q.Status))
	}
	if mentorID == "" {
		return nil, NewNoMentorError("no mentor selected")
	}
	mentor, err := s.store.GetMentor(mentorID)
	if err != nil {
		return nil, err
	}
	if mentor == nil {
		return nil, NewNotFoundError("mentor not found")
	}
	if strings.TrimSpace(mentor.Email) == "" {
		return nil, NewMentorNoEmailError(fmt.Sprintf("mentor %s has no contact email", mentor.Name))
	}

	subject := fmt.Sprintf("New Question from %s", q.UserName)
	body := fmt.Sprintf(
		"Hello %s,\n\nYou have received a new question from %s:\n\nQUESTION:\n%s\n\nPlease reply to this email with your answer.\n\nBest regards,\nThe Bloo Team",
		mentor.Name, q.UserName, q.QuestionText,
	)
	if err := s.notifier.Send(ctx, subject, body, s.from, []string{mentor.Email}); err != nil {
		return nil, NewNotificationFailedError(fmt.Sprintf("failed to send question to %s: %v", mentor.Name, err))
	}

	now := s.now()
	q.MentorID = mentor.ID
	q.Status = next
	q.AssignedAt = &now
	q.UpdatedAt = now
	if err := s.store.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// RecordAnswer stores the mentor's answer. The assigned precondition is
// enforced strictly here even though the original workflow tolerated answers
// arriving in other states.
func (s *QuestionService) RecordAnswer(ctx context.Context, questionID, answerText string) (*models.Question, error) {
	if strings.TrimSpace(answerText) == "" {
		return nil, NewInvalidError("answer text is required")
	}
	q, err := s.store.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NewNotFoundError("question not found")
	}
	next, ok := models.NextStatus(q.Status, models.OpAnswer)
	if !ok {
		return nil, NewInvalidTransitionError(fmt.Sprintf("question is %s; only assigned questions can be answered", q.Status))
	}
	now := s.now()
	q.AnswerText = answerText
	q.Status = next
	q.AnsweredAt = &now
	q.UpdatedAt = now
	if err := s.store.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// Approve moves an answered question to approved.
func (s *QuestionService) Approve(ctx context.Context, questionID string) (*models.Question, error) {
	q, err := s.store.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NewNotFoundError("question not found")
	}
	next, ok := models.NextStatus(q.Status, models.OpApprove)
	if !ok {
		return nil, NewInvalidTransitionError(fmt.Sprintf("question is %s; only answered questions can be approved", q.Status))
	}
	now := s.now()
	q.Status = next
	q.ApprovedAt = &now
	q.UpdatedAt = now
	if err := s.store.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// ApproveBatch approves each id independently and returns how many moved.
// Questions in the wrong state or missing are skipped; there is no
// cross-question invariant.
func (s *QuestionService) ApproveBatch(ctx context.Context, ids []string) (int, error) {
	approved := 0
	for _, id := range ids {
		if _, err := s.Approve(ctx, id); err != nil {
			if _, ok := AsServiceError(err); ok {
				continue
			}
			return approved, err
		}
		approved++
	}
	return approved, nil
}

// Reject marks a question rejected. Valid from any state before sent; there
// is no automatic rejection anywhere, it is always an explicit admin call.
func (s *QuestionService) Reject(ctx context.Context, questionID string) (*models.Question, error) {
	q, err := s.store.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NewNotFoundError("question not found")
	}
	next, ok := models.NextStatus(q.Status, models.OpReject)
	if !ok {
		return nil, NewInvalidTransitionError(fmt.Sprintf("question is %s and can no longer be rejected", q.Status))
	}
	now := s.now()
	q.Status = next
	q.UpdatedAt = now
	if err := s.store.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// DeliverToUser emails the approved answer to the submitter and, only on a
// confirmed send, moves the question to sent. On failure the question stays
// approved; retry is re-invocation, nothing retries automatically.
func (s *QuestionService) DeliverToUser(ctx context.Context, questionID string) (*models.Question, error) {
	q, err := s.store.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NewNotFoundError("question not found")
	}
	next, ok := models.NextStatus(q.Status, models.OpSend)
	if !ok {
		return nil, NewInvalidTransitionError(fmt.Sprintf("question is %s; only approved answers can be sent", q.Status))
	}

	mentorName := "our mentor"
	if q.MentorID != "" {
		if mentor, err := s.store.GetMentor(q.MentorID); err == nil && mentor != nil {
			mentorName = mentor.Name
		}
	}
	subject := fmt.Sprintf("Answer to your question from %s", mentorName)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for your question. Here is the answer from our expert:\n\nQUESTION:\n%s\n\nANSWER:\n%s\n\nIf you have any follow-up questions, please don't hesitate to ask.\n\nBest regards,\nThe Bloo Team",
		q.UserName, q.QuestionText, q.AnswerText,
	)
	if err := s.notifier.Send(ctx, subject, body, s.from, []string{q.UserEmail}); err != nil {
		return nil, NewNotificationFailedError(fmt.Sprintf("failed to send answer to %s: %v", q.UserEmail, err))
	}

	now := s.now()
	q.Status = next
	q.SentAt = &now
	q.UpdatedAt = now
	if err := s.store.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// List returns questions, optionally filtered by status.
func (s *QuestionService) List(ctx context.Context, status models.QuestionStatus) ([]*models.Question, error) {
	return s.store.ListQuestions(status)
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}
