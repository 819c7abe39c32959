package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/shenikar/border_alert_system/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededIncidents(t *testing.T) service.IncidentRepository {
	t.Helper()
	return NewIncidentRepository(SeedIncidents(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestIncidentRepository_ListAll(t *testing.T) {
	repo := newSeededIncidents(t)

	incidents, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, incidents, 3)
	assert.Equal(t, "i1", incidents[0].ID)
	assert.Equal(t, "i3", incidents[2].ID)
}

func TestIncidentRepository_ListAllReturnsCopies(t *testing.T) {
	repo := newSeededIncidents(t)
	ctx := context.Background()

	incidents, err := repo.ListAll(ctx)
	require.NoError(t, err)
	incidents[0].Title = "mutated"
	incidents[0].Updates[0].Content = "mutated"

	stored, err := repo.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, "Suspicious Movement", stored.Title)
	assert.Equal(t, "Investigating the area with a team of 4 officers.", stored.Updates[0].Content)
}

func TestIncidentRepository_GetByID_NotFound(t *testing.T) {
	repo := newSeededIncidents(t)

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrIncidentNotFound))
}

func TestIncidentRepository_Create(t *testing.T) {
	repo := newSeededIncidents(t)
	ctx := context.Background()

	incident := &models.Incident{Title: "Tunnel found", Status: models.StatusReported}
	require.NoError(t, repo.Create(ctx, incident))
	assert.Equal(t, "i4", incident.ID)

	stored, err := repo.GetByID(ctx, "i4")
	require.NoError(t, err)
	assert.Equal(t, "Tunnel found", stored.Title)
	assert.NotNil(t, stored.Updates)
}

func TestIncidentRepository_Update(t *testing.T) {
	repo := newSeededIncidents(t)
	ctx := context.Background()

	updated, err := repo.Update(ctx, "i2", func(inc models.Incident) (models.Incident, error) {
		inc.Status = models.StatusInvestigating
		return inc, nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInvestigating, updated.Status)

	stored, err := repo.GetByID(ctx, "i2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInvestigating, stored.Status)
}

func TestIncidentRepository_UpdateErrorKeepsState(t *testing.T) {
	repo := newSeededIncidents(t)
	ctx := context.Background()
	fnErr := errors.New("rejected")

	_, err := repo.Update(ctx, "i2", func(inc models.Incident) (models.Incident, error) {
		inc.Status = models.StatusFalseAlarm
		return inc, fnErr
	})
	require.ErrorIs(t, err, fnErr)

	stored, err := repo.GetByID(ctx, "i2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReported, stored.Status)
}

func TestIncidentRepository_UpdateNotFound(t *testing.T) {
	repo := newSeededIncidents(t)

	_, err := repo.Update(context.Background(), "nope", func(inc models.Incident) (models.Incident, error) {
		t.Fatal("fn must not be called")
		return inc, nil
	})
	require.ErrorIs(t, err, service.ErrIncidentNotFound)
}

func TestIncidentRepository_ConcurrentUpdates(t *testing.T) {
	repo := newSeededIncidents(t)
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "i2", func(inc models.Incident) (models.Incident, error) {
				inc.Updates = append(inc.Updates, models.IncidentUpdate{Content: "x"})
				return inc, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(ctx, "i2")
	require.NoError(t, err)
	assert.Len(t, stored.Updates, writers)
}
