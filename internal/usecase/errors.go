package usecase

// Error codes handlers map onto HTTP statuses.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeUpstream     = "UPSTREAM_ERROR"
)

// DomainError is a business-rule failure the caller can act on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is infrastructure trouble (database, queue, upstream API).
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

func notFound(msg string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func invalid(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func conflict(msg string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: msg}
}

func upstream(msg string) *TechnicalError {
	return &TechnicalError{Code: CodeUpstream, Message: msg}
}
