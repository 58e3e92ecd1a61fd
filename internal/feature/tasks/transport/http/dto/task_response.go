package dto

import "time"

// TaskRes は一覧取得結果の1行を表します。
// エントリのないタスクではエントリ側のフィールドがnullになります。
type TaskRes struct {
	TaskID    uint       `json:"task_id"`
	Title     string     `json:"title"`
	Category  string     `json:"category"`
	EntryID   *uint      `json:"entry_id"`
	Duration  *int       `json:"duration"`
	CreatedAt *time.Time `json:"created_at"`
}

// MessageRes は汎用のメッセージレスポンスを表します。
type MessageRes struct {
	Message string `json:"message"`
}

// DeleteRes はタスク削除成功時のレスポンスボディを表します。
type DeleteRes struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
