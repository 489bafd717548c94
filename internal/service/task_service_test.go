package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"
)

const (
	alice int64 = 1
	bob   int64 = 2
)

// stepClock advances one second per call so creation order is strictly
// increasing.
type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestService() *TaskService {
	clock := &stepClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewTaskService(repo.NewMemTaskRepo(), WithClock(clock.Now))
}

func strPtr(s string) *string { return &s }

func mustCreate(t *testing.T, s *TaskService, owner int64, title string) dom.Task {
	t.Helper()
	task, err := s.Create(context.Background(), owner, dom.NewTask{Title: title})
	if err != nil {
		t.Fatalf("Create(%q): %v", title, err)
	}
	return task
}

func TestCreateTrimsAndDefaults(t *testing.T) {
	s := newTestService()
	task, err := s.Create(context.Background(), alice, dom.NewTask{
		Title:       "  Comprar pão  ",
		Description: "\n padaria \t",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID != 1 {
		t.Errorf("ID = %d, want 1", task.ID)
	}
	if task.Title != "Comprar pão" || task.Description != "padaria" {
		t.Errorf("got title %q description %q", task.Title, task.Description)
	}
	if task.Status != dom.StatusPending {
		t.Errorf("Status = %q, want %q", task.Status, dom.StatusPending)
	}
	if task.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", *task.DueDate)
	}
	if task.UserID != alice {
		t.Errorf("UserID = %d, want %d", task.UserID, alice)
	}
	if task.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt not UTC: %v", task.CreatedAt)
	}
}

func TestCreateTitleValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"empty", "", true},
		{"blank", "   \t", true},
		{"exactly 100", strings.Repeat("a", 100), false},
		{"101", strings.Repeat("a", 101), true},
		{"100 after trim", "  " + strings.Repeat("b", 100) + "  ", false},
		{"100 multibyte", strings.Repeat("é", 100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService()
			_, err := s.Create(context.Background(), alice, dom.NewTask{Title: tt.title})
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("err = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreatePendingLimit(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	var first dom.Task
	for i := 0; i < MaxPendingTasks; i++ {
		task := mustCreate(t, s, alice, "task")
		if i == 0 {
			first = task
		}
	}

	if _, err := s.Create(ctx, alice, dom.NewTask{Title: "one too many"}); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("101st create err = %v, want ErrLimitExceeded", err)
	}
	// The cap is per user.
	mustCreate(t, s, bob, "bob's task")

	if _, err := s.Complete(ctx, alice, first.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	mustCreate(t, s, alice, "fits again")
}

func TestIDsAreNeverReused(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	a := mustCreate(t, s, alice, "a")
	b := mustCreate(t, s, bob, "b")
	if err := s.Delete(ctx, bob, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	c := mustCreate(t, s, alice, "c")
	if a.ID != 1 || b.ID != 2 || c.ID != 3 {
		t.Fatalf("ids = %d,%d,%d want 1,2,3", a.ID, b.ID, c.ID)
	}
}

func TestListOrderAndScope(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	t1 := mustCreate(t, s, alice, "first")
	mustCreate(t, s, bob, "not mine")
	t2 := mustCreate(t, s, alice, "second")
	t3 := mustCreate(t, s, alice, "third")

	list, err := s.List(ctx, alice, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []int64{t3.ID, t2.ID, t1.ID}
	if len(list) != len(want) {
		t.Fatalf("len = %d, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("list[%d].ID = %d, want %d", i, list[i].ID, id)
		}
	}
}

func TestListTiesKeepInsertionOrder(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewTaskService(repo.NewMemTaskRepo(), WithClock(func() time.Time { return fixed }))
	a := mustCreate(t, s, alice, "a")
	b := mustCreate(t, s, alice, "b")

	list, err := s.List(context.Background(), alice, "all")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != b.ID {
		t.Fatalf("got %+v, want ids [%d %d]", list, a.ID, b.ID)
	}
}

func TestListFilter(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	pending := mustCreate(t, s, alice, "pending")
	done := mustCreate(t, s, alice, "done")
	if _, err := s.Complete(ctx, alice, done.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	tests := []struct {
		filter string
		want   []int64
	}{
		{"", []int64{done.ID, pending.ID}},
		{"all", []int64{done.ID, pending.ID}},
		{"Todas", []int64{done.ID, pending.ID}},
		{"Pendente", []int64{pending.ID}},
		{"Pending", []int64{pending.ID}},
		{"Concluída", []int64{done.ID}},
		{"Completed", []int64{done.ID}},
		{"Done", nil},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			list, err := s.List(ctx, alice, tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if list == nil {
				t.Fatal("List returned nil slice")
			}
			if len(list) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(list), len(tt.want))
			}
			for i, id := range tt.want {
				if list[i].ID != id {
					t.Errorf("list[%d].ID = %d, want %d", i, list[i].ID, id)
				}
			}
		})
	}
}

func TestUpdateAppliesPresentFields(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	task, err := s.Create(ctx, alice, dom.NewTask{Title: "t", Description: "d", DueDate: strPtr("2025-12-31")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Update(ctx, alice, task.ID, dom.TaskPatch{Title: strPtr("  new title ")})
	if err != nil {
		t.Fatalf("Update title: %v", err)
	}
	if got.Title != "new title" || got.Description != "d" || got.DueDate == nil || *got.DueDate != "2025-12-31" {
		t.Fatalf("unexpected task after title update: %+v", got)
	}

	got, err = s.Update(ctx, alice, task.ID, dom.TaskPatch{Description: strPtr(""), SetDueDate: true})
	if err != nil {
		t.Fatalf("Update clear: %v", err)
	}
	if got.Description != "" || got.DueDate != nil {
		t.Fatalf("description/due date not cleared: %+v", got)
	}
	if !got.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", task.CreatedAt, got.CreatedAt)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	task := mustCreate(t, s, alice, "flip")

	got, err := s.Update(ctx, alice, task.ID, dom.TaskPatch{Status: strPtr("Concluída")})
	if err != nil || got.Status != dom.StatusCompleted {
		t.Fatalf("to completed: %+v, %v", got, err)
	}
	got, err = s.Update(ctx, alice, task.ID, dom.TaskPatch{Status: strPtr("Pending")})
	if err != nil || got.Status != dom.StatusPending {
		t.Fatalf("back to pending: %+v, %v", got, err)
	}
}

func TestUpdateRejectsWholePatch(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	task, err := s.Create(ctx, alice, dom.NewTask{Title: "keep", Description: "keep too"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	patches := map[string]dom.TaskPatch{
		"bad status":  {Title: strPtr("changed"), Description: strPtr("changed"), Status: strPtr("Done")},
		"empty title": {Title: strPtr("  "), Status: strPtr("Concluída")},
		"long title":  {Title: strPtr(strings.Repeat("x", 101)), Description: strPtr("changed")},
	}
	for name, p := range patches {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Update(ctx, alice, task.ID, p); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			list, _ := s.List(ctx, alice, "")
			got := list[0]
			if got.Title != "keep" || got.Description != "keep too" || got.Status != dom.StatusPending {
				t.Fatalf("task modified by rejected patch: %+v", got)
			}
		})
	}
}

func TestOtherUsersTasksAreNotFound(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	task := mustCreate(t, s, alice, "private")

	if _, err := s.Update(ctx, bob, task.ID, dom.TaskPatch{Title: strPtr("mine now")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update err = %v, want ErrNotFound", err)
	}
	if _, err := s.Complete(ctx, bob, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Complete err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, bob, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, alice, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing err = %v, want ErrNotFound", err)
	}

	list, _ := s.List(ctx, alice, "")
	if len(list) != 1 || list[0].Title != "private" {
		t.Fatalf("alice's task changed: %+v", list)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	task := mustCreate(t, s, alice, "twice")
	for i := 0; i < 2; i++ {
		got, err := s.Complete(ctx, alice, task.ID)
		if err != nil {
			t.Fatalf("Complete #%d: %v", i+1, err)
		}
		if got.Status != dom.StatusCompleted {
			t.Fatalf("Status = %q", got.Status)
		}
	}
}

func TestCreateListCompleteDeleteRoundTrip(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	task := mustCreate(t, s, alice, "Tarefa fluxo E2E")

	list, _ := s.List(ctx, alice, "")
	if len(list) != 1 || list[0].ID != task.ID {
		t.Fatalf("created task missing from list: %+v", list)
	}
	if _, err := s.Complete(ctx, alice, task.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := s.Delete(ctx, alice, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list, _ = s.List(ctx, alice, "")
	if len(list) != 0 {
		t.Fatalf("deleted task still listed: %+v", list)
	}
}
