package services

import "errors"

type ErrorCode string

const (
	ErrorInvalid            ErrorCode = "invalid"
	ErrorNotFound           ErrorCode = "not_found"
	ErrorConflict           ErrorCode = "conflict"
	ErrorUnauthorized       ErrorCode = "unauthorized"
	ErrorNoMentor           ErrorCode = "no_mentor"
	ErrorMentorNoEmail      ErrorCode = "mentor_no_email"
	ErrorInvalidTransition  ErrorCode = "invalid_transition"
	ErrorNotificationFailed ErrorCode = "notification_failed"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error { return &ServiceError{Code: ErrorConflict, Message: msg} }
func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

func NewNoMentorError(msg string) error { return &ServiceError{Code: ErrorNoMentor, Message: msg} }
func NewMentorNoEmailError(msg string) error {
	return &ServiceError{Code: ErrorMentorNoEmail, Message: msg}
}

func NewInvalidTransitionError(msg string) error {
	return &ServiceError{Code: ErrorInvalidTransition, Message: msg}
}

func NewNotificationFailedError(msg string) error {
	return &ServiceError{Code: ErrorNotificationFailed, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
