package model

// User представляет пользователя, полученного от внешнего сервиса аутентификации.
// Записи пользователей создаются снаружи; этот сервис их только читает.
type User struct {
	ID   int    `db:"user_id" json:"id"`
	Name string `db:"user_name" json:"name"`
}
