package models

import "time"

type QuestionStatus string

const (
	StatusPending  QuestionStatus = "pending"
	StatusAssigned QuestionStatus = "assigned"
	StatusAnswered QuestionStatus = "answered"
	StatusApproved QuestionStatus = "approved"
	StatusRejected QuestionStatus = "rejected"
	StatusSent     QuestionStatus = "sent"
)

// Operation names a lifecycle transition that can be applied to a question.
type Operation string

const (
	OpAssign  Operation = "assign"
	OpAnswer  Operation = "answer"
	OpApprove Operation = "approve"
	OpReject  Operation = "reject"
	OpSend    Operation = "send"
)

// transitions is the closed table of valid (from status, operation) -> to status
// moves. Anything not listed is invalid; status never moves backward except
// through OpReject.
var transitions = map[QuestionStatus]map[Operation]QuestionStatus{
	StatusPending: {
		OpAssign: StatusAssigned,
		OpReject: StatusRejected,
	},
	StatusAssigned: {
		OpAnswer: StatusAnswered,
		OpReject: StatusRejected,
	},
	StatusAnswered: {
		OpApprove: StatusApproved,
		OpReject:  StatusRejected,
	},
	StatusApproved: {
		OpSend:   StatusSent,
		OpReject: StatusRejected,
	},
}

// NextStatus returns the status a question moves to when op is applied in
// status from, or false when the table has no such entry.
func NextStatus(from QuestionStatus, op Operation) (QuestionStatus, bool) {
	to, ok := transitions[from][op]
	return to, ok
}

// Question is one user inquiry moving through the moderated workflow.
type Question struct {
	ID           string         `json:"id"`
	UserName     string         `json:"user_name"`
	UserEmail    string         `json:"user_email"`
	QuestionText string         `json:"question_text"`
	AnswerText   string         `json:"answer_text,omitempty"`
	MentorID     string         `json:"mentor_id,omitempty"`
	Status       QuestionStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	AssignedAt   *time.Time     `json:"assigned_at,omitempty"`
	AnsweredAt   *time.Time     `json:"answered_at,omitempty"`
	ApprovedAt   *time.Time     `json:"approved_at,omitempty"`
	SentAt       *time.Time     `json:"sent_at,omitempty"`
}

// Mentor is a responder curated by the admins. Slug is unique and stable and
// is used for external addressing; IsActive=false hides the mentor from the
// public listing without deleting history.
type Mentor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	University   string `json:"university"`
	Department   string `json:"department"`
	Initials     string `json:"initials"`
	Gradient     string `json:"gradient"`
	Slug         string `json:"slug"`
	Bio          string `json:"bio,omitempty"`
	Expertise    string `json:"expertise,omitempty"`
	Email        string `json:"email,omitempty"`
	IsActive     bool   `json:"is_active"`
	ProfilePhoto string `json:"profile_photo,omitempty"`
}

// DefaultGradient is applied to mentors created without a display gradient.
const DefaultGradient = "from-purple-400 to-pink-400"

// MentorPage holds the heading shown above the public mentor listing.
type MentorPage struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AdminUser can log in to the moderation endpoints.
type AdminUser struct {
	ID        string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}
