package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/api/shared"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/domain"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/handler"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/platform/logger"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/redact"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/result"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/store"
)

// Handler names used as registry keys for requirement registration.
// Wiring registers requirements against these names; the handlers are
// composed with the same names so declaration and enforcement cannot
// drift apart.
const (
	HandlerCreateStudent = "CreateStudent"
	HandlerGetStudent    = "GetStudent"
	HandlerListStudents  = "ListStudents"
	HandlerDeleteStudent = "DeleteStudent"
)

// StudentHandler handles student-related HTTP requests. Each endpoint is
// a composed handler pipeline (authorization wrapping the business core)
// plus a thin HTTP adapter doing decode/validate and response mapping.
type StudentHandler struct {
	create handler.Handler[CreateStudentRequest, StudentResponse]
	get    handler.Handler[GetStudentRequest, StudentResponse]
	list   handler.Handler[ListStudentsRequest, []StudentResponse]
	delete handler.Handler[DeleteStudentRequest, struct{}]
}

// NewStudentHandler composes the student endpoints over the given store.
// Authorization requirements come from the registry; handlers with no
// registered requirements run unwrapped.
func NewStudentHandler(
	students store.StudentStore,
	registry *handler.Registry,
	authorizer handler.Authorizer,
) *StudentHandler {
	return &StudentHandler{
		create: handler.Authorized(HandlerCreateStudent, registry, authorizer,
			handler.Func[CreateStudentRequest, StudentResponse](createStudent(students))),
		get: handler.Authorized(HandlerGetStudent, registry, authorizer,
			handler.Func[GetStudentRequest, StudentResponse](getStudent(students))),
		list: handler.Authorized(HandlerListStudents, registry, authorizer,
			handler.Func[ListStudentsRequest, []StudentResponse](listStudents(students))),
		delete: handler.Authorized(HandlerDeleteStudent, registry, authorizer,
			handler.Func[DeleteStudentRequest, struct{}](deleteStudent(students))),
	}
}

func createStudent(students store.StudentStore) func(context.Context, CreateStudentRequest) result.Result[StudentResponse] {
	return func(ctx context.Context, req CreateStudentRequest) result.Result[StudentResponse] {
		student, err := domain.NewStudent(req.Name, req.Email)
		if err != nil {
			// Domain validation messages are written for end users.
			return result.BadRequest[StudentResponse](err.Error())
		}

		if err := students.Create(ctx, student); err != nil {
			if errors.Is(err, store.ErrEmailExists) {
				return result.Conflict[StudentResponse](GetSafeErrorMessage(err))
			}
			logger.FromContext(ctx).Error("failed to create student",
				"error", redact.Error(err),
				"email", redact.String(req.Email))
			return result.Internal[StudentResponse]("Failed to create student")
		}

		return result.Created(studentToResponse(student))
	}
}

func getStudent(students store.StudentStore) func(context.Context, GetStudentRequest) result.Result[StudentResponse] {
	return func(ctx context.Context, req GetStudentRequest) result.Result[StudentResponse] {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return result.BadRequest[StudentResponse]("Invalid student ID")
		}

		student, err := students.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrStudentNotFound) {
				return result.NotFound[StudentResponse](GetSafeErrorMessage(err))
			}
			logger.FromContext(ctx).Error("failed to get student",
				"error", redact.Error(err),
				"student_id", id)
			return result.Internal[StudentResponse]("Failed to get student")
		}

		return result.Ok(studentToResponse(student))
	}
}

func listStudents(students store.StudentStore) func(context.Context, ListStudentsRequest) result.Result[[]StudentResponse] {
	return func(ctx context.Context, _ ListStudentsRequest) result.Result[[]StudentResponse] {
		all, err := students.List(ctx)
		if err != nil {
			logger.FromContext(ctx).Error("failed to list students", "error", redact.Error(err))
			return result.Internal[[]StudentResponse]("Failed to list students")
		}

		responses := make([]StudentResponse, 0, len(all))
		for _, s := range all {
			responses = append(responses, studentToResponse(s))
		}
		return result.Ok(responses)
	}
}

func deleteStudent(students store.StudentStore) func(context.Context, DeleteStudentRequest) result.Result[struct{}] {
	return func(ctx context.Context, req DeleteStudentRequest) result.Result[struct{}] {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return result.BadRequest[struct{}]("Invalid student ID")
		}

		if err := students.Delete(ctx, id); err != nil {
			if errors.Is(err, store.ErrStudentNotFound) {
				return result.NotFound[struct{}](GetSafeErrorMessage(err))
			}
			logger.FromContext(ctx).Error("failed to delete student",
				"error", redact.Error(err),
				"student_id", id)
			return result.Internal[struct{}]("Failed to delete student")
		}

		return result.NoContent[struct{}]()
	}
}

// CreateStudent handles POST /api/students requests.
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	respond(w, r, h.create.Handle(r.Context(), req))
}

// GetStudent handles GET /api/students/{id} requests.
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	req := GetStudentRequest{ID: chi.URLParam(r, "id")}
	respond(w, r, h.get.Handle(r.Context(), req))
}

// ListStudents handles GET /api/students requests.
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	respond(w, r, h.list.Handle(r.Context(), ListStudentsRequest{}))
}

// DeleteStudent handles DELETE /api/students/{id} requests.
func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	req := DeleteStudentRequest{ID: chi.URLParam(r, "id")}
	respond(w, r, h.delete.Handle(r.Context(), req))
}

// respond folds a handler outcome into the wire response. 204 carries no
// body; other successes serialize the value as JSON.
func respond[T any](w http.ResponseWriter, r *http.Request, res result.Result[T]) {
	result.Match(res,
		func(value T, status int) struct{} {
			if status == http.StatusNoContent {
				shared.RespondWithJSON(w, r, status, nil)
			} else {
				shared.RespondWithJSON(w, r, status, value)
			}
			return struct{}{}
		},
		func(message string, status int) struct{} {
			shared.RespondWithError(w, r, status, message)
			return struct{}{}
		},
	)
}
