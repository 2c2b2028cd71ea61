// Package apperr defines the status-carrying error type surfaced through the
// GraphQL error envelope.
package apperr

// FieldError describes a single failed validation rule.
type FieldError struct {
	Message string `json:"message"`
}

// Error carries an HTTP-like status code and optional validation detail.
// It is returned from resolvers and formatted exactly once at the transport
// boundary.
type Error struct {
	Message string
	Status  int
	Data    []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

// New constructs an error with an explicit status code.
func New(message string, status int) *Error {
	return &Error{Message: message, Status: status}
}

// Validation returns a 422 error listing every violated rule, or nil when the
// list is empty.
func Validation(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Message: "Invalid input.", Status: 422, Data: fields}
}
