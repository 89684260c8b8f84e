package http_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	todohttp "github.com/jaekwang-park/todo-crud/internal/http"
	"github.com/jaekwang-park/todo-crud/internal/model"
	"github.com/jaekwang-park/todo-crud/internal/repository"
	"github.com/jaekwang-park/todo-crud/internal/service"
)

// newTestStore opens a migrated in-memory database. One connection keeps
// the data alive for the test.
func newTestStore(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := repository.NewDB(ctx, "sqlite3", ":memory:", repository.PoolConfig{
		MaxOpenConns:   1,
		MaxIdleConns:   1,
		ConnectTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := repository.Migrate(ctx, db, "sqlite3", logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestTodoSvc(t *testing.T) (*service.TodoService, *sql.DB) {
	t.Helper()
	db := newTestStore(t)
	return service.NewTodoService(repository.NewPostgresTodo(db)), db
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, db := newTestTodoSvc(t)
	return todohttp.NewRouter(svc, db)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeTodo(t *testing.T, w *httptest.ResponseRecorder) model.Todo {
	t.Helper()
	var todo model.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &todo); err != nil {
		t.Fatalf("failed to decode todo: %v (body: %s)", err, w.Body.String())
	}
	return todo
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", result["status"])
	}
}

func TestRouter_HealthEndpoint_StoreClosed(t *testing.T) {
	svc, db := newTestTodoSvc(t)
	router := todohttp.NewRouter(svc, db)
	db.Close()

	w := do(t, router, http.MethodGet, "/health", "")

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/unknown", "/api/v1/todos", "/todosx"} {
		w := do(t, router, http.MethodGet, path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected status 404, got %d", path, w.Code)
		}
	}
}

func TestRouter_EmptyList(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/todos", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := bytes.TrimSpace(w.Body.Bytes()); string(got) != "[]" {
		t.Errorf("expected [], got %s", got)
	}
}

func TestRouter_TodoLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// create
	w := do(t, router, http.MethodPost, "/todos", `{"title":"buy milk"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected status 201, got %d (body: %s)", w.Code, w.Body.String())
	}
	created := decodeTodo(t, w)
	if created.Status != model.StatusPending || created.FinishedAt != nil || created.Description != nil {
		t.Errorf("create: unexpected todo %+v", created)
	}
	location := w.Header().Get("Location")
	if location != "/todos/"+created.ID.String() {
		t.Errorf("create: expected Location=/todos/%s, got %q", created.ID, location)
	}
	createdBody := w.Body.String()

	// read back via Location
	w = do(t, router, http.MethodGet, location, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected status 200, got %d", w.Code)
	}
	if w.Body.String() != createdBody {
		t.Errorf("get: expected %s, got %s", createdBody, w.Body.String())
	}

	// mark done
	w = do(t, router, http.MethodPut, location, `{"title":"buy milk","status":"Done"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	done := decodeTodo(t, w)
	if done.Status != model.StatusDone || done.FinishedAt == nil {
		t.Fatalf("update: expected Done with finished_at, got %+v", done)
	}
	if done.ID != created.ID || !done.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("update: id or created_at changed: %+v", done)
	}
	doneBody := w.Body.String()

	// same update again
	w = do(t, router, http.MethodPut, location, `{"title":"buy milk","status":"Done"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update again: expected status 200, got %d", w.Code)
	}
	if w.Body.String() != doneBody {
		t.Errorf("update again: expected %s, got %s", doneBody, w.Body.String())
	}

	// back to pending
	w = do(t, router, http.MethodPut, location, `{"title":"buy milk","status":"Pending"}`)
	if pending := decodeTodo(t, w); pending.FinishedAt != nil {
		t.Errorf("reopen: expected finished_at=null, got %v", pending.FinishedAt)
	}

	// list
	w = do(t, router, http.MethodGet, "/todos", "")
	var list []model.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("list: failed to decode: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list: expected only %s, got %+v", created.ID, list)
	}

	// delete, then everything is gone
	w = do(t, router, http.MethodDelete, location, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected status 204, got %d", w.Code)
	}
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w = do(t, router, method, location, "")
		if w.Code != http.StatusNotFound || w.Body.Len() != 0 {
			t.Errorf("%s after delete: expected empty 404, got %d %q", method, w.Code, w.Body.String())
		}
	}
	w = do(t, router, http.MethodPut, location, `{"title":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("put after delete: expected status 404, got %d", w.Code)
	}
}

func TestRouter_UnknownID(t *testing.T) {
	router := newTestRouter(t)
	path := "/todos/" + uuid.NewString()

	tests := []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"title":"x"}`},
		{http.MethodDelete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := do(t, router, tt.method, path, tt.body)
			if w.Code != http.StatusNotFound {
				t.Errorf("expected status 404, got %d", w.Code)
			}
			if w.Body.Len() != 0 {
				t.Errorf("expected empty body, got %q", w.Body.String())
			}
		})
	}
}

func TestRouter_ListOrderedByCreation(t *testing.T) {
	router := newTestRouter(t)

	var ids []uuid.UUID
	for _, title := range []string{"first", "second", "third"} {
		w := do(t, router, http.MethodPost, "/todos", `{"title":"`+title+`"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: expected status 201, got %d", title, w.Code)
		}
		ids = append(ids, decodeTodo(t, w).ID)
		time.Sleep(time.Millisecond)
	}

	w := do(t, router, http.MethodGet, "/todos", "")
	var list []model.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(list) != len(ids) {
		t.Fatalf("expected %d todos, got %d", len(ids), len(list))
	}
	for i := range ids {
		if list[i].ID != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], list[i].ID)
		}
	}
}
