package api

import "net/http"

// Error is a structured failure from the todo service: the HTTP status
// plus the human-readable detail message the server sent, or a fallback
// when it sent none.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

// IsUnauthorized reports whether the error is an authorization failure.
func (e *Error) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}
