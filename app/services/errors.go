// Package services holds the business logic. Services depend on repository
// interfaces only, perform ownership checks through app/policy after the
// resource has been resolved (so a missing resource reads as not-found, never
// as forbidden), and report failures as taxonomy errors the controllers
// translate to HTTP statuses.
package services

// Kind classifies a failure. Controllers map kinds to HTTP statuses;
// anything that is not an *Error is treated as an internal fault.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
)

// Error is a caller-facing failure. Message is sent to the client verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Invalid(msg string) error         { return &Error{Kind: KindValidation, Message: msg} }
func Unauthenticated(msg string) error { return &Error{Kind: KindUnauthenticated, Message: msg} }
func Forbidden(msg string) error       { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) error        { return &Error{Kind: KindNotFound, Message: msg} }
