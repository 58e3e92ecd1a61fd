package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack_backend/internal/feature/tasks/domain/entity"
)

// mockTaskRepository is a mock implementation of the TaskRepository interface.
type mockTaskRepository struct {
	ListByUserFunc      func(ctx context.Context, userID uint) ([]TaskRow, error)
	FindPairFunc        func(ctx context.Context, userID, taskID, entryID uint) ([]TaskRow, error)
	CreateWithEntryFunc func(ctx context.Context, task *entity.Task, durationMinutes int) error
	UpdatePairFunc      func(ctx context.Context, p PairUpdate) error
	DeleteByUserFunc    func(ctx context.Context, userID, taskID uint) (int64, error)
}

func (m *mockTaskRepository) ListByUser(ctx context.Context, userID uint) ([]TaskRow, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTaskRepository) FindPair(ctx context.Context, userID, taskID, entryID uint) ([]TaskRow, error) {
	if m.FindPairFunc != nil {
		return m.FindPairFunc(ctx, userID, taskID, entryID)
	}
	return nil, nil
}

func (m *mockTaskRepository) CreateWithEntry(ctx context.Context, task *entity.Task, durationMinutes int) error {
	if m.CreateWithEntryFunc != nil {
		return m.CreateWithEntryFunc(ctx, task, durationMinutes)
	}
	task.ID = 1 // Default: simulate insert assigning an ID
	return nil
}

func (m *mockTaskRepository) UpdatePair(ctx context.Context, p PairUpdate) error {
	if m.UpdatePairFunc != nil {
		return m.UpdatePairFunc(ctx, p)
	}
	return nil
}

func (m *mockTaskRepository) DeleteByUser(ctx context.Context, userID, taskID uint) (int64, error) {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID, taskID)
	}
	return 0, nil
}

func ptr[T any](v T) *T { return &v }

// pairRow builds the single joined row the update flow fetches.
func pairRow(title, category string, entryID uint, duration int) TaskRow {
	now := time.Now()
	return TaskRow{
		TaskID:    10,
		Title:     title,
		Category:  category,
		EntryID:   ptr(entryID),
		Duration:  ptr(duration),
		CreatedAt: &now,
	}
}

func TestTaskUsecase_Create(t *testing.T) {
	t.Run("task fields are passed to the repository", func(t *testing.T) {
		var gotTask *entity.Task
		gotDuration := 0
		repo := &mockTaskRepository{
			CreateWithEntryFunc: func(ctx context.Context, task *entity.Task, durationMinutes int) error {
				task.ID = 42
				gotTask = task
				gotDuration = durationMinutes
				return nil
			},
		}
		uc := NewTaskUsecase(repo)

		taskID, err := uc.Create(context.Background(), 7, "T", "Daily", 30)

		require.NoError(t, err, "create failed")
		assert.Equal(t, uint(42), taskID, "task id does not match")
		assert.Equal(t, uint(7), gotTask.UserID)
		assert.Equal(t, "T", gotTask.Title)
		assert.Equal(t, "Daily", gotTask.Category)
		assert.Equal(t, 30, gotDuration)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repo := &mockTaskRepository{
			CreateWithEntryFunc: func(ctx context.Context, task *entity.Task, durationMinutes int) error {
				return errors.New("insert failed")
			},
		}
		uc := NewTaskUsecase(repo)

		_, err := uc.Create(context.Background(), 7, "T", "Daily", 30)

		assert.Error(t, err)
	})
}

func TestTaskUsecase_UpdateEntry(t *testing.T) {
	t.Run("no matching pair returns not found", func(t *testing.T) {
		repo := &mockTaskRepository{
			FindPairFunc: func(ctx context.Context, userID, taskID, entryID uint) ([]TaskRow, error) {
				return nil, nil
			},
		}
		uc := NewTaskUsecase(repo)

		err := uc.UpdateEntry(context.Background(), 7, 10, 20, EntryUpdate{Title: ptr("new")})

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("ambiguous pair returns inconsistency error", func(t *testing.T) {
		repo := &mockTaskRepository{
			FindPairFunc: func(ctx context.Context, userID, taskID, entryID uint) ([]TaskRow, error) {
				return []TaskRow{pairRow("T", "Daily", 20, 30), pairRow("T", "Daily", 21, 30)}, nil
			},
		}
		uc := NewTaskUsecase(repo)

		err := uc.UpdateEntry(context.Background(), 7, 10, 20, EntryUpdate{Title: ptr("new")})

		assert.ErrorIs(t, err, ErrInconsistentPair)
	})

	updateCases := []struct {
		name       string
		current    TaskRow
		update     EntryUpdate
		wantCalled bool
		want       PairUpdate
	}{
		{
			name:       "zero duration never updates the entry",
			current:    pairRow("T", "Daily", 20, 30),
			update:     EntryUpdate{Duration: ptr(0)},
			wantCalled: false,
		},
		{
			name:       "omitted duration leaves the entry unchanged",
			current:    pairRow("T", "Daily", 20, 30),
			update:     EntryUpdate{},
			wantCalled: false,
		},
		{
			name:       "unchanged duration is a no-op",
			current:    pairRow("T", "Daily", 20, 30),
			update:     EntryUpdate{Duration: ptr(30)},
			wantCalled: false,
		},
		{
			name:       "genuinely new duration updates the entry only",
			current:    pairRow("T", "Daily", 20, 30),
			update:     EntryUpdate{Duration: ptr(45)},
			wantCalled: true,
			want: PairUpdate{
				TaskID: 10, EntryID: 20,
				Title: "T", Category: "Daily", Duration: 45,
				UpdateTask: false, UpdateEntry: true,
			},
		},
		{
			name:       "new title updates the task only",
			current:    pairRow("T", "Daily", 20, 30),
			update:     EntryUpdate{Title: ptr("T2")},
			wantCalled: true,
			want: PairUpdate{
				TaskID: 10,
				Title:  "T2", Category: "Daily",
				UpdateTask: true, UpdateEntry: false,
			},
		},
		{
			name:       "unchanged title and category are a no-op",
			current:    pairRow("T", "Daily", 20, 30),
			update:     EntryUpdate{Title: ptr("T"), Category: ptr("Daily")},
			wantCalled: false,
		},
		{
			name:       "new category keeps the current title",
			current:    pairRow("T", "Daily", 20, 30),
			update:     EntryUpdate{Category: ptr("Weekly")},
			wantCalled: true,
			want: PairUpdate{
				TaskID: 10,
				Title:  "T", Category: "Weekly",
				UpdateTask: true, UpdateEntry: false,
			},
		},
		{
			name:       "title and duration update both in one call",
			current:    pairRow("T", "Daily", 20, 30),
			update:     EntryUpdate{Title: ptr("T2"), Duration: ptr(45)},
			wantCalled: true,
			want: PairUpdate{
				TaskID: 10, EntryID: 20,
				Title: "T2", Category: "Daily", Duration: 45,
				UpdateTask: true, UpdateEntry: true,
			},
		},
	}

	for _, tt := range updateCases {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var got PairUpdate
			repo := &mockTaskRepository{
				FindPairFunc: func(ctx context.Context, userID, taskID, entryID uint) ([]TaskRow, error) {
					return []TaskRow{tt.current}, nil
				},
				UpdatePairFunc: func(ctx context.Context, p PairUpdate) error {
					called = true
					got = p
					return nil
				},
			}
			uc := NewTaskUsecase(repo)

			err := uc.UpdateEntry(context.Background(), 7, 10, 20, tt.update)

			require.NoError(t, err, "update failed")
			assert.Equal(t, tt.wantCalled, called, "unexpected storage write decision")
			if tt.wantCalled {
				assert.Equal(t, tt.want, got, "unexpected update parameters")
			}
		})
	}

	t.Run("duration update for a task without an entry is a no-op", func(t *testing.T) {
		called := false
		repo := &mockTaskRepository{
			FindPairFunc: func(ctx context.Context, userID, taskID, entryID uint) ([]TaskRow, error) {
				// LEFT JOIN row with no entry columns
				return []TaskRow{{TaskID: 10, Title: "T", Category: "Daily"}}, nil
			},
			UpdatePairFunc: func(ctx context.Context, p PairUpdate) error {
				called = true
				return nil
			},
		}
		uc := NewTaskUsecase(repo)

		err := uc.UpdateEntry(context.Background(), 7, 10, 20, EntryUpdate{Duration: ptr(45)})

		require.NoError(t, err)
		assert.False(t, called, "an absent entry must not be updated")
	})
}

func TestTaskUsecase_Delete(t *testing.T) {
	t.Run("deleting an owned task succeeds", func(t *testing.T) {
		var gotUserID, gotTaskID uint
		repo := &mockTaskRepository{
			DeleteByUserFunc: func(ctx context.Context, userID, taskID uint) (int64, error) {
				gotUserID, gotTaskID = userID, taskID
				return 1, nil
			},
		}
		uc := NewTaskUsecase(repo)

		err := uc.Delete(context.Background(), 7, 10)

		assert.NoError(t, err)
		assert.Equal(t, uint(7), gotUserID, "delete must be scoped by the owning user")
		assert.Equal(t, uint(10), gotTaskID)
	})

	t.Run("no matching row returns not found", func(t *testing.T) {
		uc := NewTaskUsecase(&mockTaskRepository{})

		err := uc.Delete(context.Background(), 7, 10)

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}
