package dto

import (
	"bytes"
	"encoding/json"
	"time"

	dom "taskmanager/internal/domain"
)

const (
	msgTitleNotText       = "Título deve ser um texto"
	msgDescriptionNotText = "Descrição deve ser um texto"
	msgDueDateInvalid     = "Data de vencimento inválida"
)

// Field keeps a JSON value undecoded so a wrongly typed value can be
// reported against its own field. Absent keys never call UnmarshalJSON,
// so Set stays false; an explicit null arrives as the literal "null".
type Field struct {
	Set bool
	Raw json.RawMessage
}

func (f *Field) UnmarshalJSON(data []byte) error {
	f.Set = true
	f.Raw = append(f.Raw[:0], data...)
	return nil
}

func (f Field) isNull() bool {
	return string(bytes.TrimSpace(f.Raw)) == "null"
}

// text decodes a JSON string. Absent and null read as "". ok is false for
// any other JSON type.
func (f Field) text() (s string, ok bool) {
	if !f.Set || f.isNull() {
		return "", true
	}
	if err := json.Unmarshal(f.Raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// scalar returns strings decoded and numbers or booleans as their JSON
// text. Absent and null read as nil. Objects and arrays are rejected.
func (f Field) scalar() (*string, bool) {
	raw := bytes.TrimSpace(f.Raw)
	switch {
	case !f.Set || f.isNull():
		return nil, true
	case len(raw) == 0 || raw[0] == '{' || raw[0] == '[':
		return nil, false
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, false
		}
		return &s, true
	}
	s := string(raw)
	return &s, true
}

type CreateTaskRequest struct {
	Title       Field `json:"title" swaggertype:"string"`
	Description Field `json:"description" swaggertype:"string"`
	DueDate     Field `json:"dueDate" swaggertype:"string"` // opaque, stored as given
}

// NewTask converts the request. Missing or null title and description
// become ""; a value of the wrong JSON type is a validation error.
func (r CreateTaskRequest) NewTask() (dom.NewTask, error) {
	var in dom.NewTask
	var ok bool
	if in.Title, ok = r.Title.text(); !ok {
		return dom.NewTask{}, dom.Invalid(msgTitleNotText)
	}
	if in.Description, ok = r.Description.text(); !ok {
		return dom.NewTask{}, dom.Invalid(msgDescriptionNotText)
	}
	if in.DueDate, ok = r.DueDate.scalar(); !ok {
		return dom.NewTask{}, dom.Invalid(msgDueDateInvalid)
	}
	return in, nil
}

// UpdateTaskRequest is a partial update: only keys present in the body
// are applied.
type UpdateTaskRequest struct {
	Title       Field `json:"title" swaggertype:"string"`
	Description Field `json:"description" swaggertype:"string"`
	DueDate     Field `json:"dueDate" swaggertype:"string"`
	Status      Field `json:"status" swaggertype:"string"`
}

// Patch converts the request. A null title or status becomes "" and is
// rejected by the service; a null description or due date clears it. Any
// wrongly typed value rejects the whole patch.
func (r UpdateTaskRequest) Patch() (dom.TaskPatch, error) {
	var p dom.TaskPatch
	if r.Title.Set {
		s, ok := r.Title.text()
		if !ok {
			return dom.TaskPatch{}, dom.Invalid(msgTitleNotText)
		}
		p.Title = &s
	}
	if r.Description.Set {
		s, ok := r.Description.text()
		if !ok {
			return dom.TaskPatch{}, dom.Invalid(msgDescriptionNotText)
		}
		p.Description = &s
	}
	if r.DueDate.Set {
		due, ok := r.DueDate.scalar()
		if !ok {
			return dom.TaskPatch{}, dom.Invalid(msgDueDateInvalid)
		}
		p.SetDueDate = true
		p.DueDate = due
	}
	if r.Status.Set {
		s, ok := r.Status.text()
		if !ok {
			return dom.TaskPatch{}, dom.Invalid(dom.MsgInvalidStatus)
		}
		p.Status = &s
	}
	return p, nil
}

type TaskResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     *string   `json:"dueDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TaskEnvelope struct {
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}
