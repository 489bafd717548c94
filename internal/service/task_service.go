package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"
)

const (
	MaxTitleLength  = 100
	MaxPendingTasks = 100
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = dom.ErrValidation
	ErrLimitExceeded = errors.New("pending task limit reached")
)

// ValidationError carries the message handlers surface verbatim.
type ValidationError = dom.ValidationError

const (
	msgTitleRequired = "Título é obrigatório"
	msgTitleTooLong  = "Título deve ter no máximo 100 caracteres"
)

type TaskService struct {
	repo repo.TaskRepo
	now  func() time.Time

	// mu serializes whole operations so the pending count and the insert
	// in Create can't interleave with another request.
	mu sync.Mutex
}

type TaskOption func(*TaskService)

// WithClock overrides the clock used for creation timestamps.
func WithClock(now func() time.Time) TaskOption {
	return func(s *TaskService) { s.now = now }
}

func NewTaskService(r repo.TaskRepo, opts ...TaskOption) *TaskService {
	s := &TaskService{repo: r, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the user's tasks, newest first. An empty filter, "all" or
// "Todas" returns every task; an unknown status yields an empty list.
func (s *TaskService) List(ctx context.Context, userID int64, filter string) ([]dom.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isAllFilter(filter) {
		status, ok := dom.ParseStatus(filter)
		filtered := list[:0]
		for _, t := range list {
			if ok && t.Status == status {
				filtered = append(filtered, t)
			}
		}
		list = filtered
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if list == nil {
		list = []dom.Task{}
	}
	return list, nil
}

func (s *TaskService) Create(ctx context.Context, userID int64, in dom.NewTask) (dom.Task, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return dom.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.repo.CountByStatus(ctx, userID, dom.StatusPending)
	if err != nil {
		return dom.Task{}, err
	}
	if pending >= MaxPendingTasks {
		return dom.Task{}, ErrLimitExceeded
	}

	return s.repo.Create(ctx, dom.Task{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		DueDate:     in.DueDate,
		Status:      dom.StatusPending,
		CreatedAt:   s.now().UTC(),
	})
}

// Update applies a partial patch. Every present field is validated before
// anything is written, so a rejected patch leaves the task unchanged.
func (s *TaskService) Update(ctx context.Context, userID, id int64, p dom.TaskPatch) (dom.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}

	patch := existing
	if p.Title != nil {
		title, err := validateTitle(*p.Title)
		if err != nil {
			return dom.Task{}, err
		}
		patch.Title = title
	}
	if p.Description != nil {
		patch.Description = strings.TrimSpace(*p.Description)
	}
	if p.SetDueDate {
		patch.DueDate = p.DueDate
	}
	if p.Status != nil {
		status, ok := dom.ParseStatus(*p.Status)
		if !ok {
			return dom.Task{}, dom.Invalid(dom.MsgInvalidStatus)
		}
		patch.Status = status
	}

	t, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

// Complete marks the task done. Completing a completed task is a no-op.
func (s *TaskService) Complete(ctx context.Context, userID, id int64) (dom.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.repo.SetStatus(ctx, userID, id, dom.StatusCompleted)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", dom.Invalid(msgTitleRequired)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", dom.Invalid(msgTitleTooLong)
	}
	return title, nil
}

func isAllFilter(f string) bool {
	return f == "" || f == "all" || f == "Todas"
}
