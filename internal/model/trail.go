package model

// Trail представляет пешеходный маршрут (тропу) с характеристиками сложности и протяженности.
type Trail struct {
	ID            int     `db:"trail_id"`
	Name          string  `db:"trail_name"`
	Description   string  `db:"description"`
	Difficulty    string  `db:"difficulty"` // допустимые значения: "Easy", "Moderate", "Hard"
	Length        float64 `db:"length"`     // длина в километрах, NUMERIC(5,2)
	ElevationGain int     `db:"elevation_gain"`
	OwnerUserID   int     `db:"owner_user_id"`
}

// TrailUpdate описывает частичное обновление маршрута: nil-поле означает "не трогать".
// FeatureIDs == nil оставляет набор фич без изменений, пустой срез очищает его.
type TrailUpdate struct {
	Name          *string
	Description   *string
	Difficulty    *string
	Length        *float64
	ElevationGain *int
	FeatureIDs    *[]int
}

// TrailFeature представляет связь "многие-ко-многим" между маршрутом и фичей.
type TrailFeature struct {
	TrailID   int `db:"trail_id"`
	FeatureID int `db:"feature_id"`
}
