package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/handler"
	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/middleware"
	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/repository"
	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL драйвер
)

func main() {
	// Читаем параметры подключения к БД из переменных окружения
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	dsn := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}
	// Выполняем миграции (если есть)
	files, err := filepath.Glob("migrations/*.sql")
	if err == nil {
		for _, file := range files {
			if _, err := db.Exec("BEGIN"); err != nil {
				log.Printf("Ошибка при инициации транзакции миграции: %v", err)
				continue
			}
			err := func() error {
				content, readErr := os.ReadFile(file)
				if readErr != nil {
					return readErr
				}
				if _, execErr := db.Exec(string(content)); execErr != nil {
					return execErr
				}
				return nil
			}()
			if err != nil {
				log.Printf("Миграция %s завершилась ошибкой: %v", file, err)
				db.Exec("ROLLBACK")
			} else {
				db.Exec("COMMIT")
				log.Printf("Миграция %s применена.", file)
			}
		}
	}

	// Инициализируем репозитории
	trailRepo := repository.NewTrailRepository(db)
	featureRepo := repository.NewFeatureRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	// Инициализируем сервисы
	authService := service.NewAuthService(os.Getenv("AUTH_API_URL"))
	trailService := service.NewTrailService(trailRepo, featureRepo, auditRepo)

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(trailService, authService)
	router := gin.Default()
	router.Use(cors.Default()) // CORS открыт для всех маршрутов
	router.GET("/", h.Home)
	router.GET("/trails", h.ListTrails)
	router.GET("/trails/:id", h.GetTrail)
	router.POST("/trails", middleware.TokenRequired(authService), h.CreateTrail)
	router.PUT("/trails/:id",
		middleware.TokenRequired(authService),
		middleware.OwnerRequired(authService, trailService),
		h.UpdateTrail)
	router.DELETE("/trails/:id",
		middleware.TokenRequired(authService),
		middleware.OwnerRequired(authService, trailService),
		h.DeleteTrail)
	router.GET("/features", h.ListFeatures)
	router.GET("/audit-logs", middleware.TokenRequired(authService), h.ListAuditLogs)
	router.GET("/test-tokens", h.TestTokens)
	// Health-check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Запускаем HTTP-сервер
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
