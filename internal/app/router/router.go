package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "timetrack_backend/internal/feature/auth/transport/handler"
	taskhandler "timetrack_backend/internal/feature/tasks/transport/handler"
	"timetrack_backend/internal/platform/http/handler"
	jwtmw "timetrack_backend/internal/platform/jwt"
	"timetrack_backend/internal/shared/ratelimiter"
)

func NewRouter(authHandler *authhandler.AuthHandler, taskHandler *taskhandler.TaskHandler,
	authorizer jwtmw.Authorizer, limiter *ratelimiter.Limiter, clientURL string) *gin.Engine {
	r := gin.Default()

	// CORS はルート登録より先に適用する
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{clientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)

	// /api 配下は全てレートリミット対象
	api := r.Group("/api")
	api.Use(ratelimiter.Middleware(limiter))
	{
		// 新規ユーザー登録
		api.POST("/auth/register", authHandler.Register)
		// ログイン（JWT 発行）
		api.POST("/auth/login", authHandler.Login)

		// 認証必須のルート
		// jwtmw.AuthRequired() ミドルウェアを適用
		// → リクエストヘッダーに JWT が必要になる
		tasks := api.Group("/tasks")
		tasks.Use(jwtmw.AuthRequired(authorizer))
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.PUT("/:taskId/entries/:entryId", taskHandler.UpdateEntry)
			tasks.DELETE("/:id", taskHandler.Delete)
		}
	}

	return r
}
