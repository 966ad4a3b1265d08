// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/domain"
)

// StudentStore defines the interface for student data persistence.
type StudentStore interface {
	// Create saves a new student to the store.
	// Returns ErrEmailExists if the email is already taken.
	// Returns ErrInvalidEntity wrapping the validation error if data is invalid.
	Create(ctx context.Context, student *domain.Student) error

	// GetByID retrieves a student by their unique ID.
	// Returns ErrStudentNotFound if the student does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)

	// GetByEmail retrieves a student by their email address.
	// Returns ErrStudentNotFound if the student does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)

	// List returns all students ordered by creation time.
	List(ctx context.Context) ([]*domain.Student, error)

	// Delete removes a student from the store by their ID.
	// Returns ErrStudentNotFound if the student does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id uuid.UUID) error
}
