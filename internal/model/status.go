package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidStatus is returned when a status name or code does not map to a known Status.
var ErrInvalidStatus = errors.New("invalid todo status")

// Status is the lifecycle state of a todo. It is stored as a small integer code.
type Status int16

const (
	StatusPending Status = 0
	StatusDoing   Status = 1
	StatusDone    Status = 2
)

var statusNames = map[Status]string{
	StatusPending: "Pending",
	StatusDoing:   "Doing",
	StatusDone:    "Done",
}

func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int16(s))
}

// ParseStatus maps a status name ("Pending", "Doing", "Done") to its Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, name)
}

func statusFromCode(code int64) (Status, error) {
	if code < int64(StatusPending) || code > int64(StatusDone) {
		return 0, fmt.Errorf("%w: code %d", ErrInvalidStatus, code)
	}
	return Status(code), nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: code %d", ErrInvalidStatus, int16(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the status name or its integer code.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseStatus(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var code int64
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, string(data))
	}
	parsed, err := statusFromCode(code)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value writes the status as its integer code.
func (s Status) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: code %d", ErrInvalidStatus, int16(s))
	}
	return int64(s), nil
}

// Scan reads an integer status code. Out-of-range codes are rejected.
func (s *Status) Scan(src any) error {
	var code int64
	switch v := src.(type) {
	case int64:
		code = v
	case int32:
		code = int64(v)
	case int16:
		code = int64(v)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrInvalidStatus, src)
	}

	parsed, err := statusFromCode(code)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
