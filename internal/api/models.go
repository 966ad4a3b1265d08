// Package api implements the HTTP boundary: request/response models,
// handlers, and the mapping from internal errors to wire responses.
package api

import (
	"time"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/domain"
)

// CreateStudentRequest represents the request body for registering a new
// student.
type CreateStudentRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// GetStudentRequest identifies the student to fetch.
type GetStudentRequest struct {
	ID string
}

// ListStudentsRequest is the (empty) request for listing all students.
type ListStudentsRequest struct{}

// DeleteStudentRequest identifies the student to remove.
type DeleteStudentRequest struct {
	ID string
}

// StudentResponse represents the response data for a student.
type StudentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// studentToResponse converts a domain.Student to a StudentResponse.
func studentToResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
