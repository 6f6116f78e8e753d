package repository

import (
	"fmt"

	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// FeatureRepository обеспечивает доступ к справочнику фич маршрутов (только чтение).
type FeatureRepository struct {
	db *sqlx.DB
}

// NewFeatureRepository создает новый репозиторий фич.
func NewFeatureRepository(db *sqlx.DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

// FindAll возвращает все фичи.
func (r *FeatureRepository) FindAll() ([]model.Feature, error) {
	features := []model.Feature{}
	err := r.db.Select(&features, "SELECT * FROM features ORDER BY feature_id")
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка фич: %w", err)
	}
	return features, nil
}

// resolveFeatureIDs возвращает те идентификаторы из ids, которые существуют
// в таблице features. Несуществующие идентификаторы отбрасываются без ошибки.
func resolveFeatureIDs(tx *sqlx.Tx, ids []int) ([]int, error) {
	resolved := []int{}
	err := tx.Select(&resolved,
		"SELECT feature_id FROM features WHERE feature_id = ANY($1) ORDER BY feature_id",
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("ошибка при проверке идентификаторов фич: %w", err)
	}
	return resolved, nil
}
