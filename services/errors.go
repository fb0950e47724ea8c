package services

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Typed errors returned by the content services. Controllers translate them
// to HTTP statuses with HTTPStatus; everything else is a 500.

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type ReferentialIntegrityError struct {
	Entity string
	ID     string
	Reason string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
}

type OutOfBoundsError struct {
	Field string
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s is out of bounds", e.Field)
}

type InvalidOrderSetError struct {
	LessonID uuid.UUID
}

func (e *InvalidOrderSetError) Error() string {
	return fmt.Sprintf("exercise ids are not a permutation of the exercises in lesson %s", e.LessonID)
}

// ConflictError covers version-assignment races on the translation history.
// Per-key locking makes it rare; the unique index makes it impossible to miss.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

func HTTPStatus(err error) int {
	switch err.(type) {
	case *NotFoundError:
		return http.StatusNotFound
	case *ValidationError, *ReferentialIntegrityError, *OutOfBoundsError, *InvalidOrderSetError:
		return http.StatusBadRequest
	case *ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
