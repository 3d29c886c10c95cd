// Package apperr classifies request failures and maps them to HTTP responses.
package apperr

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindDuplicate
)

// Error is a classified failure whose message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	base *Error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error     { return &Error{Kind: KindValidation, Message: msg} }
func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }
func Authorization(msg string) *Error  { return &Error{Kind: KindAuthorization, Message: msg} }
func NotFound(msg string) *Error       { return &Error{Kind: KindNotFound, Message: msg} }
func Duplicate(msg string) *Error      { return &Error{Kind: KindDuplicate, Message: msg} }

// Is reports whether e was produced by target.Wrap.
func (e *Error) Is(target error) bool {
	return e.base != nil && target == error(e.base)
}

// Wrap attaches cause to a copy of e. errors.Is(result, e) still holds.
func (e *Error) Wrap(cause error) error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: cause, base: e}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Status maps err to an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindDuplicate:
		return fiber.StatusBadRequest
	case KindAuthentication:
		return fiber.StatusUnauthorized
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes err as {"message": ...}. Unclassified errors are logged and
// answered with a generic message.
func Respond(c *fiber.Ctx, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		log.Printf("request %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
	}
	return c.Status(Status(err)).JSON(fiber.Map{"message": e.Message})
}

// ErrorHandler is installed as fiber's ErrorHandler so errors returned by
// middleware and unmatched routes share the same body shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}
	return Respond(c, err)
}
