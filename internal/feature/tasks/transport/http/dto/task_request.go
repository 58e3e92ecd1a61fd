// Package dto はtasksフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// CreateTaskReq は/api/tasks（POST）のリクエストボディを表します。
type CreateTaskReq struct {
	Category string `json:"category" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Duration int    `json:"duration" binding:"required,gt=0"`
}

// UpdateEntryReq は/api/tasks/:taskId/entries/:entryId（PUT）のリクエストボディを表します。
// 各フィールドの指定有無はポインタのnil判定で区別します。
type UpdateEntryReq struct {
	Category *string `json:"category"`
	Title    *string `json:"title"`
	Duration *int    `json:"duration"`
}
