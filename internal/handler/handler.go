package handler

import (
	"net/http"

	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/model"
	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/service"

	"github.com/gin-gonic/gin"
)

// TrailService описывает операции бизнес-логики, нужные обработчикам HTTP.
type TrailService interface {
	ListTrails() ([]model.Trail, error)
	GetTrail(id int) (*model.Trail, error)
	CreateTrail(trail *model.Trail, featureIDs []int) (int, error)
	UpdateTrail(id int, upd model.TrailUpdate) error
	DeleteTrail(id int) error
	ListFeatures() ([]model.Feature, error)
	RecentAuditLogs() ([]model.TrailAuditLog, error)
}

// TestTokenSource возвращает список тестовых токенов для разработки.
type TestTokenSource interface {
	TestTokens() []service.TestToken
}

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	Trails TrailService
	Auth   TestTokenSource
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(trails TrailService, auth TestTokenSource) *Handler {
	return &Handler{Trails: trails, Auth: auth}
}

// Home обработчик для GET / - возвращает описание API.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "TrailService API",
		"version": "1.0",
		"endpoints": gin.H{
			"GET /trails":         "Get all trails",
			"GET /trails/<id>":    "Get specific trail",
			"POST /trails":        "Create new trail (requires auth)",
			"PUT /trails/<id>":    "Update trail (requires owner)",
			"DELETE /trails/<id>": "Delete trail (requires owner)",
			"GET /features":       "Get all features",
		},
	})
}

// ListFeatures обработчик для GET /features - возвращает справочник фич.
func (h *Handler) ListFeatures(c *gin.Context) {
	features, err := h.Trails.ListFeatures()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	result := []gin.H{}
	for _, f := range features {
		result = append(result, gin.H{"feature_id": f.ID, "feature_name": f.Name})
	}
	c.JSON(http.StatusOK, result)
}

// ListAuditLogs обработчик для GET /audit-logs - возвращает до десяти последних
// записей аудита, новые первыми.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	logs, err := h.Trails.RecentAuditLogs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	result := []gin.H{}
	for _, l := range logs {
		result = append(result, gin.H{
			"log_id":           l.LogID,
			"trail_id":         l.TrailID,
			"trail_name":       l.TrailName,
			"added_by_user_id": l.AddedByUserID,
			"date_added":       l.DateAdded.Format("2006-01-02T15:04:05"),
		})
	}
	c.JSON(http.StatusOK, result)
}

// TestTokens обработчик для GET /test-tokens - возвращает токены для разработки.
func (h *Handler) TestTokens(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"test_tokens":  h.Auth.TestTokens(),
		"instructions": "Use in Authorization header: Bearer <token>",
	})
}
