// File: internal/services/topic/errors.go
package topic

import "fmt"

type ErrorType string

const (
	ErrTypeValidation    ErrorType = "VALIDATION"
	ErrTypeDuplicate     ErrorType = "DUPLICATE"
	ErrTypeInvalidCourse ErrorType = "INVALID_COURSE"
	ErrTypeNotFound      ErrorType = "NOT_FOUND"
	ErrTypeNoMessages    ErrorType = "NO_MESSAGES"
	ErrTypeStorage       ErrorType = "STORAGE"
)

// ServiceError is the typed failure every topic lifecycle operation
// returns. Handlers map Type onto HTTP status codes.
type ServiceError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Topic %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Topic %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ServiceError {
	return &ServiceError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewDuplicateError(title string) *ServiceError {
	return &ServiceError{
		Type:      ErrTypeDuplicate,
		Operation: "register_topic",
		Message:   fmt.Sprintf("a topic titled %q with this content already exists", title),
	}
}

func NewInvalidCourseError(name string) *ServiceError {
	return &ServiceError{
		Type:      ErrTypeInvalidCourse,
		Operation: "parse_course",
		Message:   fmt.Sprintf("unknown course %q", name),
	}
}

func NewNotFoundError(operation, what string) *ServiceError {
	return &ServiceError{Type: ErrTypeNotFound, Operation: operation, Message: what + " not found"}
}

func NewNoMessagesError(topicID uint) *ServiceError {
	return &ServiceError{
		Type:      ErrTypeNoMessages,
		Operation: "last_message",
		Message:   fmt.Sprintf("topic %d has no messages", topicID),
	}
}

func NewStorageError(operation, msg string, cause error) *ServiceError {
	return &ServiceError{Type: ErrTypeStorage, Operation: operation, Message: msg, Cause: cause}
}
