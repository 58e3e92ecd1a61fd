// Package usecase はtasksフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"timetrack_backend/internal/feature/tasks/domain/entity"
)

// TaskRow は一覧・更新対象取得のクエリ結果1行を表します。
// エントリ未登録のタスクではエントリ側の列がnilになります。
type TaskRow struct {
	TaskID    uint
	Title     string
	Category  string
	EntryID   *uint
	Duration  *int
	CreatedAt *time.Time
}

// EntryUpdate は更新リクエストを表します。
// 各フィールドの指定有無はポインタのnil判定で表現します（ゼロ値との混同を避けるため）。
type EntryUpdate struct {
	Title    *string
	Category *string
	Duration *int
}

// PairUpdate はストレージ層へ渡す確定済みの更新内容です。
// UpdateTask/UpdateEntryがfalseの更新は発行されません。
type PairUpdate struct {
	TaskID      uint
	EntryID     uint
	Title       string
	Category    string
	Duration    int
	UpdateTask  bool
	UpdateEntry bool
}

// TaskRepository はタスクとタイムエントリの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TaskRepository interface {
	// ListByUser は指定ユーザーのタスクをエントリと左結合して返します。
	// タスクID昇順、エントリ作成日時降順で並びます。
	ListByUser(ctx context.Context, userID uint) ([]TaskRow, error)

	// FindPair は指定ユーザーにスコープした(タスク, エントリ)の組を取得します。
	FindPair(ctx context.Context, userID, taskID, entryID uint) ([]TaskRow, error)

	// CreateWithEntry はタスクと最初のエントリを1トランザクションで作成します。
	// いずれかの挿入が失敗した場合、両方ロールバックされます。
	CreateWithEntry(ctx context.Context, task *entity.Task, durationMinutes int) error

	// UpdatePair はタスクとエントリの更新を1トランザクションで適用します。
	// 各UPDATE文は値が実際に異なる場合のみ行を書き換えるガード付きです。
	UpdatePair(ctx context.Context, p PairUpdate) error

	// DeleteByUser は指定ユーザーが所有するタスクをエントリごと削除し、
	// 削除されたタスク行数を返します。
	DeleteByUser(ctx context.Context, userID, taskID uint) (int64, error)
}

// taskUsecase はタスク操作のビジネスロジックを実装します。
type taskUsecase struct {
	tasks TaskRepository
}

// NewTaskUsecase はtaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks}
}

// List は認証済みユーザーのタスク一覧をエントリ付きで返します。
func (u *taskUsecase) List(ctx context.Context, userID uint) ([]TaskRow, error) {
	return u.tasks.ListByUser(ctx, userID)
}

// Create はタスクと最初のタイムエントリをアトミックに作成し、タスクIDを返します。
func (u *taskUsecase) Create(ctx context.Context, userID uint, title, category string, durationMinutes int) (uint, error) {
	task := &entity.Task{
		UserID:   userID,
		Title:    title,
		Category: category,
	}
	if err := u.tasks.CreateWithEntry(ctx, task, durationMinutes); err != nil {
		return 0, err
	}
	slog.Info("task created", "user_id", userID, "task_id", task.ID)
	return task.ID, nil
}

// UpdateEntry はタスクとエントリの条件付き更新を行います。
//  1. ユーザーにスコープした(タスク, エントリ)の組を取得。0件ならErrTaskNotFound、
//     2件以上は不整合としてErrInconsistentPair。
//  2. 新しいタイトル・カテゴリは指定があればその値、なければ現在値。
//  3. タスク更新はタイトルまたはカテゴリが指定され、かつ現在値と異なる場合のみ。
//  4. エントリ更新はエントリが存在し、nilでもゼロでもなく、現在値と異なる
//     durationが指定された場合のみ。
//  5. 対象の更新をすべて1トランザクションで適用。
func (u *taskUsecase) UpdateEntry(ctx context.Context, userID, taskID, entryID uint, upd EntryUpdate) error {
	rows, err := u.tasks.FindPair(ctx, userID, taskID, entryID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrTaskNotFound
	}
	if len(rows) != 1 {
		return fmt.Errorf("%w: got %d rows", ErrInconsistentPair, len(rows))
	}
	current := rows[0]

	newTitle := current.Title
	if upd.Title != nil {
		newTitle = *upd.Title
	}
	newCategory := current.Category
	if upd.Category != nil {
		newCategory = *upd.Category
	}

	shouldUpdateTask := (upd.Title != nil && *upd.Title != current.Title) ||
		(upd.Category != nil && *upd.Category != current.Category)

	shouldUpdateEntry := current.EntryID != nil &&
		upd.Duration != nil &&
		*upd.Duration != 0 &&
		(current.Duration == nil || *upd.Duration != *current.Duration)

	if !shouldUpdateTask && !shouldUpdateEntry {
		// 変更なし。冗長な書き込みは発行しない
		return nil
	}

	p := PairUpdate{
		TaskID:     taskID,
		Title:      newTitle,
		Category:   newCategory,
		UpdateTask: shouldUpdateTask,
	}
	if shouldUpdateEntry {
		p.EntryID = *current.EntryID
		p.Duration = *upd.Duration
		p.UpdateEntry = true
	}

	if err := u.tasks.UpdatePair(ctx, p); err != nil {
		return err
	}
	slog.Info("task updated", "user_id", userID, "task_id", taskID)
	return nil
}

// Delete は認証済みユーザーが所有するタスクをエントリごと削除します。
// 所有していない（または存在しない）タスクはErrTaskNotFoundになります。
func (u *taskUsecase) Delete(ctx context.Context, userID, taskID uint) error {
	deleted, err := u.tasks.DeleteByUser(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrTaskNotFound
	}
	slog.Info("task deleted", "user_id", userID, "task_id", taskID)
	return nil
}
