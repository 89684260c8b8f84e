package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jaekwang-park/todo-crud/internal/model"
	"github.com/jaekwang-park/todo-crud/internal/service"
)

const maxTodoBodySize = 1 << 20 // 1 MB

const todoRequestSchemaURL = "todo_request.schema.json"

// Client-supplied id, status on create, and timestamps are accepted and ignored,
// so additional properties stay allowed.
const todoRequestSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["title"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"description": {"type": ["string", "null"]},
		"status": {"enum": ["Pending", "Doing", "Done", 0, 1, 2, null]}
	}
}`

var todoRequestSchema = jsonschema.MustCompileString(todoRequestSchemaURL, todoRequestSchemaJSON)

var errMalformedJSON = errors.New("malformed JSON body")

// RequestValidationError reports the first schema violation in a request body.
type RequestValidationError struct {
	Path    string
	Message string
}

func (e *RequestValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *RequestValidationError) Unwrap() error {
	return service.ErrInvalidInput
}

// readTodoRequest reads a bounded body, validates it against the request
// schema and decodes it.
func readTodoRequest(w http.ResponseWriter, r *http.Request) (model.TodoRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTodoBodySize))
	if err != nil {
		return model.TodoRequest{}, fmt.Errorf("%w: %w", errMalformedJSON, err)
	}
	return decodeTodoRequest(body)
}

func decodeTodoRequest(body []byte) (model.TodoRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return model.TodoRequest{}, fmt.Errorf("%w: %w", errMalformedJSON, err)
	}

	if err := todoRequestSchema.Validate(doc); err != nil {
		return model.TodoRequest{}, mapSchemaError(err)
	}

	var req model.TodoRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return model.TodoRequest{}, &RequestValidationError{Message: err.Error()}
	}
	return req, nil
}

func mapSchemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &RequestValidationError{Message: err.Error()}
	}

	leaf := firstLeaf(ve)
	return &RequestValidationError{
		Path:    jsonPointerToPath(leaf.InstanceLocation),
		Message: leaf.Message,
	}
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// jsonPointerToPath turns "/status" into "status".
func jsonPointerToPath(pointer string) string {
	path := strings.TrimPrefix(pointer, "/")
	return strings.ReplaceAll(path, "/", ".")
}
