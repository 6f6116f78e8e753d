package repository

import (
	"fmt"

	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/model"

	"github.com/jmoiron/sqlx"
)

// AuditLogRepository обеспечивает чтение журнала аудита создания маршрутов.
// Запись в журнал происходит только внутри транзакции создания маршрута
// (см. TrailRepository.Create); отдельного API вставки нет.
type AuditLogRepository struct {
	db *sqlx.DB
}

// NewAuditLogRepository создает новый репозиторий журнала аудита.
func NewAuditLogRepository(db *sqlx.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// FindRecent возвращает последние записи аудита, новые первыми.
// При limit <= 0 используется значение по умолчанию 10.
func (r *AuditLogRepository) FindRecent(limit int) ([]model.TrailAuditLog, error) {
	if limit <= 0 {
		limit = 10
	}
	logs := []model.TrailAuditLog{}
	err := r.db.Select(&logs,
		"SELECT * FROM trail_audit_logs ORDER BY date_added DESC, log_id DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении журнала аудита: %w", err)
	}
	return logs, nil
}
