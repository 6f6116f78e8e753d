package service

import (
	"database/sql"
	"errors"

	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/model"
)

// ErrTrailNotFound возвращается, когда маршрут с указанным идентификатором не существует.
var ErrTrailNotFound = errors.New("маршрут не найден")

// ValidationError описывает недопустимое значение поля во входных данных.
// Текст сообщения отдается клиенту как есть.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TrailStore описывает операции хранилища маршрутов, нужные сервису.
type TrailStore interface {
	FindAll() ([]model.Trail, error)
	GetByID(id int) (*model.Trail, error)
	Create(trail *model.Trail, featureIDs []int) (int, error)
	Update(id int, upd model.TrailUpdate) error
	Delete(id int) error
}

// FeatureStore описывает операции хранилища фич.
type FeatureStore interface {
	FindAll() ([]model.Feature, error)
}

// AuditLogStore описывает операции чтения журнала аудита.
type AuditLogStore interface {
	FindRecent(limit int) ([]model.TrailAuditLog, error)
}

// TrailService содержит бизнес-логику работы с маршрутами: валидацию полей
// и трансляцию ошибок хранилища в доменные ошибки.
type TrailService struct {
	trails   TrailStore
	features FeatureStore
	audit    AuditLogStore
}

// NewTrailService создает новый сервис маршрутов.
func NewTrailService(trails TrailStore, features FeatureStore, audit AuditLogStore) *TrailService {
	return &TrailService{trails: trails, features: features, audit: audit}
}

// ListTrails возвращает все маршруты.
func (s *TrailService) ListTrails() ([]model.Trail, error) {
	return s.trails.FindAll()
}

// GetTrail возвращает маршрут по идентификатору.
func (s *TrailService) GetTrail(id int) (*model.Trail, error) {
	trail, err := s.trails.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrailNotFound
		}
		return nil, err
	}
	return trail, nil
}

// CreateTrail проверяет поля нового маршрута и создает его вместе со связями
// с фичами и записью аудита. Возвращает идентификатор созданного маршрута.
func (s *TrailService) CreateTrail(trail *model.Trail, featureIDs []int) (int, error) {
	if err := validateDifficulty(trail.Difficulty); err != nil {
		return 0, err
	}
	if err := validateLength(trail.Length); err != nil {
		return 0, err
	}
	if err := validateElevationGain(trail.ElevationGain); err != nil {
		return 0, err
	}
	return s.trails.Create(trail, featureIDs)
}

// UpdateTrail применяет частичное обновление маршрута, проверяя только
// присутствующие поля по тем же правилам, что и при создании.
func (s *TrailService) UpdateTrail(id int, upd model.TrailUpdate) error {
	if upd.Difficulty != nil {
		if err := validateDifficulty(*upd.Difficulty); err != nil {
			return err
		}
	}
	if upd.Length != nil {
		if err := validateLength(*upd.Length); err != nil {
			return err
		}
	}
	if upd.ElevationGain != nil {
		if err := validateElevationGain(*upd.ElevationGain); err != nil {
			return err
		}
	}
	err := s.trails.Update(id, upd)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTrailNotFound
	}
	return err
}

// DeleteTrail удаляет маршрут. Записи аудита по нему сохраняются.
func (s *TrailService) DeleteTrail(id int) error {
	err := s.trails.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTrailNotFound
	}
	return err
}

// ListFeatures возвращает справочник фич.
func (s *TrailService) ListFeatures() ([]model.Feature, error) {
	return s.features.FindAll()
}

// RecentAuditLogs возвращает не более десяти последних записей аудита, новые первыми.
func (s *TrailService) RecentAuditLogs() ([]model.TrailAuditLog, error) {
	return s.audit.FindRecent(10)
}

func validateDifficulty(difficulty string) error {
	switch difficulty {
	case "Easy", "Moderate", "Hard":
		return nil
	}
	return &ValidationError{Message: "Difficulty must be Easy, Moderate, or Hard"}
}

func validateLength(length float64) error {
	if length <= 0 {
		return &ValidationError{Message: "Length must be positive"}
	}
	return nil
}

func validateElevationGain(gain int) error {
	if gain < 0 {
		return &ValidationError{Message: "Elevation gain cannot be negative"}
	}
	return nil
}
