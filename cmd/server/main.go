package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"timetrack_backend/internal/app/router"
	authadapters "timetrack_backend/internal/feature/auth/adapters"
	authhandler "timetrack_backend/internal/feature/auth/transport/handler"
	authusecase "timetrack_backend/internal/feature/auth/usecase"
	taskadapters "timetrack_backend/internal/feature/tasks/adapters"
	taskhandler "timetrack_backend/internal/feature/tasks/transport/handler"
	taskusecase "timetrack_backend/internal/feature/tasks/usecase"
	platformdb "timetrack_backend/internal/platform/db"
	jwtmw "timetrack_backend/internal/platform/jwt"
	"timetrack_backend/internal/platform/password"
	"timetrack_backend/internal/shared/ratelimiter"
)

func main() {
	// .env はローカル開発用。本番は環境変数を直接渡す
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := platformdb.OpenDB(platformdb.ConfigFromEnv())

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	taskRepo := taskadapters.NewTaskPostgres(db)

	// Usecase
	tokens := jwtmw.NewGenerator(secret, jwtmw.DefaultExpiration)
	authUC := authusecase.NewAuthUsecase(userRepo, password.NewHasher(), tokens, tokens)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)

	// /api 配下のレートリミット（IPごとに 1 分あたり 10 リクエスト）
	limiter := ratelimiter.NewLimiter(10, time.Minute)

	clientURL := os.Getenv("CLIENT_URL")
	if clientURL == "" {
		clientURL = "http://localhost:3000"
	}

	// ルータ生成
	r := router.NewRouter(authH, taskH, authUC, limiter, clientURL)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
