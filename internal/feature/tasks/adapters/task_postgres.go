// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"timetrack_backend/internal/feature/tasks/domain/entity"
	"timetrack_backend/internal/feature/tasks/usecase"
)

// taskPostgres はTaskRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type taskPostgres struct {
	db *gorm.DB
}

// taskPostgresがTaskRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TaskRepository = (*taskPostgres)(nil)

// NewTaskPostgres は指定されたgorm.DB接続でtaskPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewTaskPostgres(db *gorm.DB) *taskPostgres {
	return &taskPostgres{db: db}
}

// pairColumns はタスクとエントリの左結合で取得する列の別名定義です。
const pairColumns = "tasks.id AS task_id, tasks.title AS title, tasks.category AS category, " +
	"task_entries.id AS entry_id, task_entries.time_spent_minutes AS duration, task_entries.created_at AS created_at"

// pairQuery はユーザーにスコープした左結合クエリの共通部分を組み立てます。
func (r *taskPostgres) pairQuery(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("tasks").
		Select(pairColumns).
		Joins("LEFT JOIN task_entries ON tasks.id = task_entries.task_id").
		Where("tasks.user_id = ?", userID).
		Order("tasks.id").
		Order("task_entries.created_at DESC")
}

// ListByUser は指定ユーザーの全タスクをエントリと左結合して返します。
// エントリのないタスクも1行として返ります（エントリ列はnil）。
func (r *taskPostgres) ListByUser(ctx context.Context, userID uint) ([]usecase.TaskRow, error) {
	var rows []usecase.TaskRow
	if err := r.pairQuery(ctx, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindPair は指定ユーザーにスコープした(タスク, エントリ)の組を取得します。
func (r *taskPostgres) FindPair(ctx context.Context, userID, taskID, entryID uint) ([]usecase.TaskRow, error) {
	var rows []usecase.TaskRow
	err := r.pairQuery(ctx, userID).
		Where("tasks.id = ? AND task_entries.id = ?", taskID, entryID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateWithEntry はタスクと最初のエントリを1トランザクションで作成します。
// トランザクションスコープが全経路でコミットまたはロールバックを保証します。
func (r *taskPostgres) CreateWithEntry(ctx context.Context, task *entity.Task, durationMinutes int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		entry := &entity.TaskEntry{
			TaskID:           task.ID,
			TimeSpentMinutes: durationMinutes,
		}
		return tx.Create(entry).Error
	})
}

// UpdatePair はタスクとエントリの更新を1トランザクションで適用します。
// 各UPDATE文のWHERE句に「値が実際に異なる」ガードを含め、冗長な書き込みを防ぎます。
func (r *taskPostgres) UpdatePair(ctx context.Context, p usecase.PairUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.UpdateTask {
			err := tx.Model(&entity.Task{}).
				Where("id = ? AND (title <> ? OR category <> ?)", p.TaskID, p.Title, p.Category).
				Updates(map[string]any{"title": p.Title, "category": p.Category}).Error
			if err != nil {
				return err
			}
		}
		if p.UpdateEntry {
			err := tx.Model(&entity.TaskEntry{}).
				Where("id = ? AND time_spent_minutes <> ?", p.EntryID, p.Duration).
				Update("time_spent_minutes", p.Duration).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByUser は指定ユーザーが所有するタスクをエントリごと削除します。
// 所有確認・エントリ削除・タスク削除を1トランザクションで行い、
// 削除されたタスク行数を返します（0 = 該当なし）。
func (r *taskPostgres) DeleteByUser(ctx context.Context, userID, taskID uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task entity.Task
		if err := tx.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&entity.TaskEntry{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&entity.Task{}, task.ID)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}
