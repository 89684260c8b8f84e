package http

import (
	"net/http"

	"github.com/jaekwang-park/todo-crud/internal/http/handler"
	"github.com/jaekwang-park/todo-crud/internal/service"
)

// NewRouter wires the todo resource and the health check. db may be nil.
func NewRouter(todoSvc *service.TodoService, db handler.Pinger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", handler.NewHealthHandler(db))

	todoHandler := handler.NewTodoHandler(todoSvc)
	mux.Handle(handler.TodosPath, todoHandler)
	mux.Handle(handler.TodosPath+"/", todoHandler)

	return mux
}
