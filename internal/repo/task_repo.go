package repo

import (
	"context"
	"sync"

	dom "taskmanager/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Task, error)
	List(ctx context.Context, userID int64) ([]dom.Task, error)
	Update(ctx context.Context, userID, id int64, t dom.Task) (dom.Task, error)
	SetStatus(ctx context.Context, userID, id int64, status dom.Status) (dom.Task, error)
	Delete(ctx context.Context, userID, id int64) error
	CountByStatus(ctx context.Context, userID int64, status dom.Status) (int, error)
}

// MemTaskRepo keeps tasks in insertion order. Every lookup is scoped to the
// owner; a task owned by someone else behaves as if it did not exist.
type MemTaskRepo struct {
	mu     sync.RWMutex
	nextID int64
	tasks  []dom.Task
}

func NewMemTaskRepo() *MemTaskRepo {
	return &MemTaskRepo{nextID: 1}
}

// Create assigns the next ID and stores t. IDs are never reused.
func (r *MemTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.tasks = append(r.tasks, cloneTask(t))
	return cloneTask(t), nil
}

func (r *MemTaskRepo) GetByID(ctx context.Context, userID, id int64) (dom.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(userID, id)
	if i < 0 {
		return dom.Task{}, ErrNoRows
	}
	return cloneTask(r.tasks[i]), nil
}

// List returns the owner's tasks in insertion order.
func (r *MemTaskRepo) List(ctx context.Context, userID int64) ([]dom.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []dom.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			list = append(list, cloneTask(t))
		}
	}
	return list, nil
}

// Update replaces the mutable fields of the task. ID, owner and creation
// time are kept from the stored record.
func (r *MemTaskRepo) Update(ctx context.Context, userID, id int64, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(userID, id)
	if i < 0 {
		return dom.Task{}, ErrNoRows
	}
	cur := &r.tasks[i]
	cur.Title = t.Title
	cur.Description = t.Description
	cur.DueDate = cloneString(t.DueDate)
	cur.Status = t.Status
	return cloneTask(*cur), nil
}

func (r *MemTaskRepo) SetStatus(ctx context.Context, userID, id int64, status dom.Status) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(userID, id)
	if i < 0 {
		return dom.Task{}, ErrNoRows
	}
	r.tasks[i].Status = status
	return cloneTask(r.tasks[i]), nil
}

func (r *MemTaskRepo) Delete(ctx context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(userID, id)
	if i < 0 {
		return ErrNoRows
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

func (r *MemTaskRepo) CountByStatus(ctx context.Context, userID int64, status dom.Status) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, t := range r.tasks {
		if t.UserID == userID && t.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *MemTaskRepo) indexOf(userID, id int64) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id && r.tasks[i].UserID == userID {
			return i
		}
	}
	return -1
}

// cloneTask detaches the DueDate pointer so callers can't mutate stored state.
func cloneTask(t dom.Task) dom.Task {
	t.DueDate = cloneString(t.DueDate)
	return t
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
