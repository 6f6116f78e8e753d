package model

import "time"

// TrailAuditLog представляет запись аудита о создании маршрута.
// Таблица append-only: записи никогда не обновляются и не удаляются,
// в том числе при удалении самого маршрута.
type TrailAuditLog struct {
	LogID         int       `db:"log_id"`
	TrailID       int       `db:"trail_id"`
	TrailName     string    `db:"trail_name"` // снимок имени на момент создания
	AddedByUserID int       `db:"added_by_user_id"`
	DateAdded     time.Time `db:"date_added"`
}
