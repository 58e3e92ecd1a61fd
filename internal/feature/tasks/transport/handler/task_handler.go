// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"timetrack_backend/internal/feature/tasks/transport/http/dto"
	"timetrack_backend/internal/feature/tasks/usecase"
	jwtmw "timetrack_backend/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TaskUsecase interface {
	// List は認証済みユーザーのタスク一覧をエントリ付きで返します。
	List(ctx context.Context, userID uint) ([]usecase.TaskRow, error)
	// Create はタスクと最初のエントリをアトミックに作成します。
	Create(ctx context.Context, userID uint, title, category string, durationMinutes int) (uint, error)
	// UpdateEntry はタスクとエントリの条件付き更新を行います。
	UpdateEntry(ctx context.Context, userID, taskID, entryID uint, upd usecase.EntryUpdate) error
	// Delete は認証済みユーザーが所有するタスクを削除します。
	Delete(ctx context.Context, userID, taskID uint) error
}

// TaskHandler はタスク操作のHTTPリクエストを処理します。
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からTaskUsecaseを注入します。
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// parseIDParam はパスパラメータを数値IDへ変換します。
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// List はタスク一覧APIエンドポイントを処理します。
// 認証ミドルウェアが設定したユーザーIDにスコープした一覧を返します。
func (h *TaskHandler) List(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	rows, err := h.tasks.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("task list failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal Server Error"})
		return
	}

	res := make([]dto.TaskRes, 0, len(rows))
	for _, row := range rows {
		res = append(res, dto.TaskRes{
			TaskID:    row.TaskID,
			Title:     row.Title,
			Category:  row.Category,
			EntryID:   row.EntryID,
			Duration:  row.Duration,
			CreatedAt: row.CreatedAt,
		})
	}

	slog.Info("tasks listed", "user_id", userID, "count", len(res))
	c.JSON(http.StatusOK, res)
}

// Create はタスク作成APIエンドポイントを処理します。
// タスクと最初のタイムエントリを1トランザクションで作成します。
func (h *TaskHandler) Create(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("task create validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "invalid request"})
		return
	}

	if _, err := h.tasks.Create(c.Request.Context(), userID, req.Title, req.Category, req.Duration); err != nil {
		slog.Error("task create failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "Task added successfully!"})
}

// UpdateEntry はタスク・エントリ更新APIエンドポイントを処理します。
// - 対象の(タスク, エントリ)が見つからない場合は404
// - 変更のないフィールドは書き換えない（durationのゼロ・未指定は無視）
func (h *TaskHandler) UpdateEntry(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "entryId")
	if !ok {
		return
	}

	var req dto.UpdateEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("task update validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "invalid request"})
		return
	}

	upd := usecase.EntryUpdate{
		Title:    req.Title,
		Category: req.Category,
		Duration: req.Duration,
	}
	if err := h.tasks.UpdateEntry(c.Request.Context(), userID, taskID, entryID, upd); err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, dto.MessageRes{Message: "Task not found or not authorized."})
			return
		}
		slog.Error("task update failed", "error", err, "user_id", userID, "task_id", taskID)
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "Task Updated Successfully!"})
}

// Delete はタスク削除APIエンドポイントを処理します。
// 認証済みユーザーが所有するタスクのみ削除でき、エントリも同時に削除されます。
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, dto.MessageRes{Message: "Task Not Found"})
			return
		}
		slog.Error("task delete failed", "error", err, "user_id", userID, "task_id", taskID)
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.DeleteRes{
		Status:  "200 OK",
		Message: "Task Deleted!",
	})
}
