package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/model"
	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/service"

	"github.com/gin-gonic/gin"
)

// trailRequest — тело запроса на создание или частичное обновление маршрута.
// Поля-указатели позволяют отличить отсутствующее поле от нулевого значения;
// для feature_ids это различие значимо: nil не трогает связи, пустой список
// очищает их.
type trailRequest struct {
	TrailName     *string  `json:"trail_name"`
	Description   *string  `json:"description"`
	Difficulty    *string  `json:"difficulty"`
	Length        *float64 `json:"length"`
	ElevationGain *int     `json:"elevation_gain"`
	OwnerUserID   *int     `json:"owner_user_id"`
	FeatureIDs    *[]int   `json:"feature_ids"`
}

// trailResponse приводит маршрут к форме ответа API. Список features всегда
// пустой: разворачивание фич в выдаче не входит в задачи сервиса.
func trailResponse(t model.Trail) gin.H {
	return gin.H{
		"trail_id":       t.ID,
		"trail_name":     t.Name,
		"description":    t.Description,
		"difficulty":     t.Difficulty,
		"length":         t.Length,
		"elevation_gain": t.ElevationGain,
		"owner_user_id":  t.OwnerUserID,
		"features":       []int{},
	}
}

// ListTrails обработчик для GET /trails - возвращает все маршруты.
func (h *Handler) ListTrails(c *gin.Context) {
	trails, err := h.Trails.ListTrails()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	result := []gin.H{}
	for _, t := range trails {
		result = append(result, trailResponse(t))
	}
	c.JSON(http.StatusOK, result)
}

// GetTrail обработчик для GET /trails/:id - возвращает один маршрут.
func (h *Handler) GetTrail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Trail not found"})
		return
	}
	trail, err := h.Trails.GetTrail(id)
	if err != nil {
		if errors.Is(err, service.ErrTrailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Trail not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trailResponse(*trail))
}

// CreateTrail обработчик для POST /trails - создает маршрут.
// Обязательные поля проверяются до обращения к сервису и хранилищу.
func (h *Handler) CreateTrail(c *gin.Context) {
	var req trailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return
	}
	required := []struct {
		name  string
		isSet bool
	}{
		{"trail_name", req.TrailName != nil},
		{"difficulty", req.Difficulty != nil},
		{"length", req.Length != nil},
		{"elevation_gain", req.ElevationGain != nil},
		{"owner_user_id", req.OwnerUserID != nil},
	}
	for _, field := range required {
		if !field.isSet {
			c.JSON(http.StatusBadRequest, gin.H{"message": field.name + " is required"})
			return
		}
	}
	trail := &model.Trail{
		Name:          *req.TrailName,
		Difficulty:    *req.Difficulty,
		Length:        *req.Length,
		ElevationGain: *req.ElevationGain,
		OwnerUserID:   *req.OwnerUserID,
	}
	if req.Description != nil {
		trail.Description = *req.Description
	}
	var featureIDs []int
	if req.FeatureIDs != nil {
		featureIDs = *req.FeatureIDs
	}
	id, err := h.Trails.CreateTrail(trail, featureIDs)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Trail created successfully",
		"trail_id": id,
	})
}

// UpdateTrail обработчик для PUT /trails/:id - частично обновляет маршрут.
// Отсутствующие в теле поля не изменяются; запись аудита не создается.
func (h *Handler) UpdateTrail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Trail not found"})
		return
	}
	var req trailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return
	}
	upd := model.TrailUpdate{
		Name:          req.TrailName,
		Description:   req.Description,
		Difficulty:    req.Difficulty,
		Length:        req.Length,
		ElevationGain: req.ElevationGain,
		FeatureIDs:    req.FeatureIDs,
	}
	if err := h.Trails.UpdateTrail(id, upd); err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrTrailNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Trail not found"})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trail updated successfully"})
}

// DeleteTrail обработчик для DELETE /trails/:id - удаляет маршрут.
// Связи с фичами удаляет каскад в базе; журнал аудита сохраняется.
func (h *Handler) DeleteTrail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Trail not found"})
		return
	}
	if err := h.Trails.DeleteTrail(id); err != nil {
		if errors.Is(err, service.ErrTrailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Trail not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trail deleted successfully"})
}
