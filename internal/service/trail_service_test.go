package service

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTrailStore реализует TrailStore и записывает, что у него спрашивали.
type stubTrailStore struct {
	trails          []model.Trail
	trail           *model.Trail
	err             error
	nextID          int
	created         *model.Trail
	createdFeatures []int
	updatedID       int
	updated         *model.TrailUpdate
	deletedID       int
	calls           int
}

func (s *stubTrailStore) FindAll() ([]model.Trail, error) {
	s.calls++
	return s.trails, s.err
}

func (s *stubTrailStore) GetByID(id int) (*model.Trail, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.trail, nil
}

func (s *stubTrailStore) Create(trail *model.Trail, featureIDs []int) (int, error) {
	s.calls++
	s.created = trail
	s.createdFeatures = featureIDs
	return s.nextID, s.err
}

func (s *stubTrailStore) Update(id int, upd model.TrailUpdate) error {
	s.calls++
	s.updatedID = id
	s.updated = &upd
	return s.err
}

func (s *stubTrailStore) Delete(id int) error {
	s.calls++
	s.deletedID = id
	return s.err
}

type stubFeatureStore struct {
	features []model.Feature
	err      error
}

func (s *stubFeatureStore) FindAll() ([]model.Feature, error) {
	return s.features, s.err
}

type stubAuditStore struct {
	logs      []model.TrailAuditLog
	lastLimit int
}

func (s *stubAuditStore) FindRecent(limit int) ([]model.TrailAuditLog, error) {
	s.lastLimit = limit
	return s.logs, nil
}

func validTrail() *model.Trail {
	return &model.Trail{
		Name:          "Coast Path",
		Difficulty:    "Moderate",
		Length:        5.5,
		ElevationGain: 120,
		OwnerUserID:   101,
	}
}

func TestCreateTrailValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Trail)
		wantMsg string
	}{
		{
			name:    "unknown difficulty",
			mutate:  func(tr *model.Trail) { tr.Difficulty = "Extreme" },
			wantMsg: "Difficulty must be Easy, Moderate, or Hard",
		},
		{
			name:    "empty difficulty",
			mutate:  func(tr *model.Trail) { tr.Difficulty = "" },
			wantMsg: "Difficulty must be Easy, Moderate, or Hard",
		},
		{
			name:    "zero length",
			mutate:  func(tr *model.Trail) { tr.Length = 0 },
			wantMsg: "Length must be positive",
		},
		{
			name:    "negative length",
			mutate:  func(tr *model.Trail) { tr.Length = -1.5 },
			wantMsg: "Length must be positive",
		},
		{
			name:    "negative elevation gain",
			mutate:  func(tr *model.Trail) { tr.ElevationGain = -10 },
			wantMsg: "Elevation gain cannot be negative",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubTrailStore{nextID: 1}
			svc := NewTrailService(store, &stubFeatureStore{}, &stubAuditStore{})
			trail := validTrail()
			tc.mutate(trail)

			_, err := svc.CreateTrail(trail, nil)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantMsg, verr.Message)
			assert.Zero(t, store.calls, "хранилище не должно вызываться при невалидном входе")
		})
	}
}

func TestCreateTrailPassesThrough(t *testing.T) {
	store := &stubTrailStore{nextID: 42}
	svc := NewTrailService(store, &stubFeatureStore{}, &stubAuditStore{})

	id, err := svc.CreateTrail(validTrail(), []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	require.NotNil(t, store.created)
	assert.Equal(t, "Coast Path", store.created.Name)
	assert.Equal(t, []int{1, 2}, store.createdFeatures)
}

func TestCreateTrailBoundaryValues(t *testing.T) {
	store := &stubTrailStore{nextID: 1}
	svc := NewTrailService(store, &stubFeatureStore{}, &stubAuditStore{})

	trail := validTrail()
	trail.Length = 0.01
	trail.ElevationGain = 0
	_, err := svc.CreateTrail(trail, nil)
	assert.NoError(t, err)
}

func TestUpdateTrailValidatesOnlyPresentFields(t *testing.T) {
	store := &stubTrailStore{}
	svc := NewTrailService(store, &stubFeatureStore{}, &stubAuditStore{})

	// Пустое обновление валидно: проверять нечего.
	require.NoError(t, svc.UpdateTrail(1, model.TrailUpdate{}))
	assert.Equal(t, 1, store.calls)

	bad := "Extreme"
	err := svc.UpdateTrail(1, model.TrailUpdate{Difficulty: &bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, store.calls, "невалидное обновление не должно дойти до хранилища")

	negative := -5.0
	err = svc.UpdateTrail(1, model.TrailUpdate{Length: &negative})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Length must be positive", verr.Message)
}

func TestUpdateTrailForwardsFeatureIDs(t *testing.T) {
	store := &stubTrailStore{}
	svc := NewTrailService(store, &stubFeatureStore{}, &stubAuditStore{})

	// nil — связи не трогаем.
	require.NoError(t, svc.UpdateTrail(3, model.TrailUpdate{}))
	assert.Nil(t, store.updated.FeatureIDs)

	// Пустой список — явная очистка.
	empty := []int{}
	require.NoError(t, svc.UpdateTrail(3, model.TrailUpdate{FeatureIDs: &empty}))
	require.NotNil(t, store.updated.FeatureIDs)
	assert.Empty(t, *store.updated.FeatureIDs)
}

func TestNotFoundMapping(t *testing.T) {
	store := &stubTrailStore{err: sql.ErrNoRows}
	svc := NewTrailService(store, &stubFeatureStore{}, &stubAuditStore{})

	_, err := svc.GetTrail(99)
	assert.ErrorIs(t, err, ErrTrailNotFound)

	err = svc.UpdateTrail(99, model.TrailUpdate{})
	assert.ErrorIs(t, err, ErrTrailNotFound)

	err = svc.DeleteTrail(99)
	assert.ErrorIs(t, err, ErrTrailNotFound)
}

func TestStoreErrorsPassThrough(t *testing.T) {
	boom := errors.New("connection reset")
	store := &stubTrailStore{err: boom}
	svc := NewTrailService(store, &stubFeatureStore{}, &stubAuditStore{})

	_, err := svc.ListTrails()
	assert.ErrorIs(t, err, boom)

	err = svc.DeleteTrail(1)
	assert.ErrorIs(t, err, boom)
}

func TestRecentAuditLogsLimit(t *testing.T) {
	audit := &stubAuditStore{logs: []model.TrailAuditLog{{LogID: 2}, {LogID: 1}}}
	svc := NewTrailService(&stubTrailStore{}, &stubFeatureStore{}, audit)

	logs, err := svc.RecentAuditLogs()
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, 10, audit.lastLimit)
}
