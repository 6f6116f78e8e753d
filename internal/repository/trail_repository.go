package repository

import (
	"database/sql"
	"fmt"

	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/model"

	"github.com/jmoiron/sqlx"
)

// TrailRepository обеспечивает доступ к данным маршрутов в базе данных.
// Все мутации выполняются в явной транзакции: либо фиксируются целиком,
// либо откатываются без частичных записей.
type TrailRepository struct {
	db *sqlx.DB
}

// NewTrailRepository создает новый репозиторий маршрутов.
func NewTrailRepository(db *sqlx.DB) *TrailRepository {
	return &TrailRepository{db: db}
}

// FindAll возвращает все маршруты.
func (r *TrailRepository) FindAll() ([]model.Trail, error) {
	trails := []model.Trail{}
	err := r.db.Select(&trails, "SELECT * FROM trails ORDER BY trail_id")
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка маршрутов: %w", err)
	}
	return trails, nil
}

// GetByID возвращает маршрут по идентификатору. Возвращает sql.ErrNoRows, если не найден.
func (r *TrailRepository) GetByID(id int) (*model.Trail, error) {
	var trail model.Trail
	err := r.db.Get(&trail, "SELECT * FROM trails WHERE trail_id=$1", id)
	if err != nil {
		return nil, err
	}
	return &trail, nil
}

// Create создает маршрут вместе со связями с фичами и записью аудита.
// Все три шага выполняются в одной транзакции: вставка маршрута, вставка
// join-строк (несуществующие идентификаторы фич молча пропускаются) и ровно
// одна запись в таблицу аудита. Возвращает идентификатор нового маршрута.
func (r *TrailRepository) Create(trail *model.Trail, featureIDs []int) (int, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	var id int
	err = tx.QueryRow(
		`INSERT INTO trails (trail_name, description, difficulty, length, elevation_gain, owner_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING trail_id`,
		trail.Name, trail.Description, trail.Difficulty, trail.Length, trail.ElevationGain, trail.OwnerUserID,
	).Scan(&id)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("не удалось создать маршрут: %w", err)
	}
	if err := replaceTrailFeatures(tx, id, featureIDs, false); err != nil {
		tx.Rollback()
		return 0, err
	}
	_, err = tx.Exec(
		`INSERT INTO trail_audit_logs (trail_id, trail_name, added_by_user_id) VALUES ($1, $2, $3)`,
		id, trail.Name, trail.OwnerUserID,
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("не удалось записать аудит создания маршрута: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}
	return id, nil
}

// Update применяет частичное обновление маршрута в одной транзакции.
// Если upd.FeatureIDs задан, набор фич полностью заменяется (старые join-строки
// удаляются, новые вставляются); nil оставляет связи без изменений.
// Запись аудита при обновлении не создается. Возвращает sql.ErrNoRows, если
// маршрут не найден.
func (r *TrailRepository) Update(id int, upd model.TrailUpdate) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	var trail model.Trail
	if err := tx.Get(&trail, "SELECT * FROM trails WHERE trail_id=$1 FOR UPDATE", id); err != nil {
		tx.Rollback()
		return err
	}
	if upd.Name != nil {
		trail.Name = *upd.Name
	}
	if upd.Description != nil {
		trail.Description = *upd.Description
	}
	if upd.Difficulty != nil {
		trail.Difficulty = *upd.Difficulty
	}
	if upd.Length != nil {
		trail.Length = *upd.Length
	}
	if upd.ElevationGain != nil {
		trail.ElevationGain = *upd.ElevationGain
	}
	_, err = tx.Exec(
		`UPDATE trails SET trail_name=$1, description=$2, difficulty=$3, length=$4, elevation_gain=$5
		 WHERE trail_id=$6`,
		trail.Name, trail.Description, trail.Difficulty, trail.Length, trail.ElevationGain, id,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось обновить маршрут: %w", err)
	}
	if upd.FeatureIDs != nil {
		if err := replaceTrailFeatures(tx, id, *upd.FeatureIDs, true); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}
	return nil
}

// Delete удаляет маршрут. Join-строки удаляет каскад по внешнему ключу;
// записи аудита сохраняются как исторические. Возвращает sql.ErrNoRows,
// если маршрут не найден.
func (r *TrailRepository) Delete(id int) error {
	res, err := r.db.Exec("DELETE FROM trails WHERE trail_id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить маршрут: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// replaceTrailFeatures записывает набор фич маршрута внутри транзакции.
// При clear=true существующие join-строки предварительно удаляются.
func replaceTrailFeatures(tx *sqlx.Tx, trailID int, featureIDs []int, clear bool) error {
	if clear {
		if _, err := tx.Exec("DELETE FROM trail_features WHERE trail_id=$1", trailID); err != nil {
			return fmt.Errorf("не удалось очистить фичи маршрута: %w", err)
		}
	}
	if len(featureIDs) == 0 {
		return nil
	}
	resolved, err := resolveFeatureIDs(tx, featureIDs)
	if err != nil {
		return err
	}
	for _, fid := range resolved {
		_, err := tx.Exec("INSERT INTO trail_features (trail_id, feature_id) VALUES ($1, $2)", trailID, fid)
		if err != nil {
			return fmt.Errorf("не удалось привязать фичу %d к маршруту: %w", fid, err)
		}
	}
	return nil
}
