package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/domain"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/platform/logger"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/store"
)

// StudentStore implements the store.StudentStore interface using a
// PostgreSQL database as the storage backend.
type StudentStore struct {
	db store.DBTX
}

// NewStudentStore creates a new PostgreSQL implementation of the
// StudentStore interface. It accepts a database connection that should be
// initialized and managed by the caller.
func NewStudentStore(db store.DBTX) *StudentStore {
	return &StudentStore{db: db}
}

// Ensure StudentStore implements store.StudentStore interface
var _ store.StudentStore = (*StudentStore)(nil)

// Create implements store.StudentStore.Create
func (s *StudentStore) Create(ctx context.Context, student *domain.Student) error {
	log := logger.FromContext(ctx)

	if err := student.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO students (id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		student.ID,
		student.Name,
		student.Email,
		student.CreatedAt,
		student.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to create student",
			"student_id", student.ID,
			"error", err)
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

// GetByID implements store.StudentStore.GetByID
func (s *StudentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM students
		WHERE id = $1
	`
	return s.scanStudent(ctx, s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.StudentStore.GetByEmail
func (s *StudentStore) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM students
		WHERE email = $1
	`
	return s.scanStudent(ctx, s.db.QueryRowContext(ctx, query, email))
}

// List implements store.StudentStore.List
func (s *StudentStore) List(ctx context.Context) ([]*domain.Student, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, name, email, created_at, updated_at
		FROM students
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query students", "error", err)
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var students []*domain.Student
	for rows.Next() {
		var student domain.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.CreatedAt,
			&student.UpdatedAt,
		); err != nil {
			log.Error("failed to scan student row", "error", err)
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, &student)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating student rows", "error", err)
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Delete implements store.StudentStore.Delete
func (s *StudentStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete student",
			"student_id", id,
			"error", err)
		return fmt.Errorf("failed to delete student: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrStudentNotFound
	}

	return nil
}

func (s *StudentStore) scanStudent(ctx context.Context, row *sql.Row) (*domain.Student, error) {
	log := logger.FromContext(ctx)

	var student domain.Student
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrStudentNotFound
	}
	if err != nil {
		log.Error("failed to scan student", "error", err)
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}

	return &student, nil
}
