package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tasklane/internal/adapters/http/dto"
	"tasklane/internal/adapters/http/middleware"
	"tasklane/internal/app/command"
	"tasklane/internal/app/query"
	"tasklane/internal/domain/task"
	"tasklane/internal/mediator"
)

// TaskHandler handles HTTP requests for task operations. Every route sits
// behind the Auth middleware, so the acting user is always in context.
type TaskHandler struct {
	m *mediator.Mediator
}

// NewTaskHandler creates a new TaskHandler over the mediator.
func NewTaskHandler(m *mediator.Mediator) *TaskHandler {
	return &TaskHandler{m: m}
}

// ListTasks handles GET /api/v1/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePageFilter(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	u := middleware.UserFromContext(r.Context())

	page, err := mediator.Ask[*query.TaskPage](r.Context(), h.m, query.ListTasks{
		UserOID: u.OID,
		Filter:  filter,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskListResponse(page, filter.Limit, filter.Offset))
}

// CreateTask handles POST /api/v1/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u := middleware.UserFromContext(r.Context())

	created, err := mediator.Send[*task.Task](r.Context(), h.m, command.CreateTask{
		Title:      req.Title,
		Body:       req.Body,
		Importance: req.Importance,
		Deadline:   req.Deadline,
		UserOID:    u.OID,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTaskResponse(created))
}

// GetTask handles GET /api/v1/tasks/{oid}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())

	t, err := mediator.Ask[*task.Task](r.Context(), h.m, query.GetTaskByOID{
		UserOID: u.OID,
		TaskOID: chi.URLParam(r, "oid"),
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(t))
}

// UpdateTask handles PATCH /api/v1/tasks/{oid}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u := middleware.UserFromContext(r.Context())

	updated, err := mediator.Send[*task.Task](r.Context(), h.m, command.EditTask{
		TaskOID:    chi.URLParam(r, "oid"),
		UserOID:    u.OID,
		Title:      req.Title,
		Body:       req.Body,
		Importance: req.Importance,
		Deadline:   req.Deadline,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(updated))
}

// CompleteTask handles POST /api/v1/tasks/{oid}/complete. Completing an
// already-completed task succeeds without emitting another event.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())

	completed, err := mediator.Send[*task.Task](r.Context(), h.m, command.CompleteTask{
		TaskOID: chi.URLParam(r, "oid"),
		UserOID: u.OID,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(completed))
}

// BulkCompleteTasks handles POST /api/v1/tasks/bulk/complete with partial
// success semantics.
func (h *TaskHandler) BulkCompleteTasks(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkCompleteTasksRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u := middleware.UserFromContext(r.Context())

	result, err := mediator.Send[*command.BulkCompleteResult](r.Context(), h.m, command.BulkCompleteTasks{
		TaskOIDs: req.TaskOIDs,
		UserOID:  u.OID,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBulkCompleteResponse(result))
}

// DeleteTask handles DELETE /api/v1/tasks/{oid}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())

	_, err := mediator.Send[struct{}](r.Context(), h.m, command.DeleteTask{
		TaskOID: chi.URLParam(r, "oid"),
		UserOID: u.OID,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
