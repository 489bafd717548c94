package domain

import "time"

// Status is the lifecycle state of a task. The values are the ones the API
// has always exposed on the wire.
type Status string

const (
	StatusPending   Status = "Pendente"
	StatusCompleted Status = "Concluída"
)

// ParseStatus maps a client supplied status onto a known Status. Both the
// wire values and their English names are accepted.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case string(StatusPending), "Pending":
		return StatusPending, true
	case string(StatusCompleted), "Completed":
		return StatusCompleted, true
	}
	return "", false
}

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	DueDate     *string
	Status      Status
	CreatedAt   time.Time
}

// NewTask carries the fields a client may set on creation.
type NewTask struct {
	Title       string
	Description string
	DueDate     *string
}

// TaskPatch is a partial update. Nil pointers leave the field untouched;
// SetDueDate distinguishes "clear the due date" from "don't touch it".
type TaskPatch struct {
	Title       *string
	Description *string
	SetDueDate  bool
	DueDate     *string
	Status      *string
}
