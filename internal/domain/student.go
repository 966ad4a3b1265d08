// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyStudentID = errors.New("student ID cannot be empty")
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNameTooLong    = errors.New("name must be at most 100 characters long")
	ErrEmptyEmail     = errors.New("email cannot be empty")
	ErrInvalidEmail   = errors.New("invalid email format")
)

// maxNameLength bounds the Name value object.
const maxNameLength = 100

// Student represents a registered student.
type Student struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStudent creates a new Student with the given name and email.
// It generates a new UUID for the student ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewStudent(name, email string) (*Student, error) {
	now := time.Now().UTC()
	student := &Student{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := student.Validate(); err != nil {
		return nil, err
	}

	return student, nil
}

// Validate checks if the Student has valid data.
// Returns an error if any field fails validation.
func (s *Student) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyStudentID
	}

	if s.Name == "" {
		return ErrEmptyName
	}
	if len(s.Name) > maxNameLength {
		return ErrNameTooLong
	}

	if s.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(s.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// validateEmailFormat performs basic validation of email format: a single
// @ with a non-empty local part and a dotted domain. Deliberately simple;
// deliverability is the mail system's problem, not ours.
func validateEmailFormat(email string) bool {
	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}
	if strings.Contains(email[atIndex+1:], "@") {
		return false
	}

	domain := email[atIndex+1:]
	dotIndex := strings.Index(domain, ".")
	return dotIndex > 0 && dotIndex < len(domain)-1
}
