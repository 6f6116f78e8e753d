package model

// Feature представляет особенность маршрута (водопад, смотровая площадка и т.п.).
// Справочник фич ведется снаружи; через API доступно только чтение.
type Feature struct {
	ID   int    `db:"feature_id"`
	Name string `db:"feature_name"` // уникально в пределах всей таблицы
}
