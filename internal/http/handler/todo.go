package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jaekwang-park/todo-crud/internal/service"
)

// TodosPath is the collection path; a single todo lives at TodosPath + "/{id}".
const TodosPath = "/todos"

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ServeHTTP routes /todos and /todos/{id}
func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, TodosPath)
	path = strings.TrimPrefix(path, "/")

	// /todos/{id}
	if path != "" {
		if strings.Contains(path, "/") {
			WriteStatus(w, http.StatusNotFound)
			return
		}

		id, err := uuid.Parse(path)
		if err != nil {
			WriteError(w, http.StatusBadRequest, CodeInvalidID, "id must be a UUID")
			return
		}

		switch r.Method {
		case http.MethodGet:
			h.handleGetByID(w, r, id)
		case http.MethodPut:
			h.handleUpdate(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			writeMethodNotAllowed(w, "GET, PUT, DELETE")
		}
		return
	}

	// /todos
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) handleGetByID(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	todo, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "id", id)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := readTodoRequest(w, r)
	if err != nil {
		handleRequestError(w, err)
		return
	}

	todo, err := h.svc.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", TodosPath+"/"+todo.ID.String())
	WriteJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	req, err := readTodoRequest(w, r)
	if err != nil {
		handleRequestError(w, err)
		return
	}

	todo, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, r, err, "id", id)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err, "id", id)
		return
	}

	WriteStatus(w, http.StatusNoContent)
}

func handleRequestError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		WriteError(w, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "request body too large")
	case errors.Is(err, errMalformedJSON):
		WriteError(w, http.StatusBadRequest, CodeInvalidJSON, "invalid request body")
	default:
		WriteError(w, http.StatusBadRequest, CodeInvalidInput, err.Error())
	}
}

// handleServiceError maps service errors to responses. Not-found replies carry
// no body; internal errors are logged and answered with a generic message.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, logAttrs ...any) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		slog.WarnContext(r.Context(), "todo not found", logAttrs...)
		WriteStatus(w, http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, CodeInvalidInput, err.Error())
	default:
		slog.ErrorContext(r.Context(), "todo request failed",
			append([]any{"method", r.Method, "path", r.URL.Path, "error", err}, logAttrs...)...)
		WriteInternalError(w)
	}
}
