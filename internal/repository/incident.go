package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/shenikar/border_alert_system/internal/service"
)

// IncidentRepository хранит инциденты в памяти процесса
type IncidentRepository struct {
	mu        sync.RWMutex
	incidents []models.Incident
	index     map[string]int
}

func NewIncidentRepository(seed []models.Incident) service.IncidentRepository {
	r := &IncidentRepository{
		incidents: make([]models.Incident, 0, len(seed)),
		index:     make(map[string]int, len(seed)),
	}
	for _, incident := range seed {
		r.index[incident.ID] = len(r.incidents)
		r.incidents = append(r.incidents, incident.Clone())
	}
	return r
}

// ListAll возвращает копии всех инцидентов в порядке добавления
func (r *IncidentRepository) ListAll(_ context.Context) ([]models.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	incidents := make([]models.Incident, 0, len(r.incidents))
	for _, incident := range r.incidents {
		incidents = append(incidents, incident.Clone())
	}
	return incidents, nil
}

// GetByID возвращает инцидент по его ID
func (r *IncidentRepository) GetByID(_ context.Context, id string) (models.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return models.Incident{}, fmt.Errorf("incident with id %s: %w", id, service.ErrIncidentNotFound)
	}
	return r.incidents[pos].Clone(), nil
}

// Create сохраняет новый инцидент и присваивает ему ID вида i<n>
func (r *IncidentRepository) Create(_ context.Context, incident *models.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Инциденты не удаляются, поэтому порядковый номер не повторяется
	incident.ID = fmt.Sprintf("i%d", len(r.incidents)+1)
	if _, exists := r.index[incident.ID]; exists {
		return fmt.Errorf("incident with id %s already exists", incident.ID)
	}

	r.index[incident.ID] = len(r.incidents)
	r.incidents = append(r.incidents, incident.Clone())
	return nil
}

// Update выполняет read-modify-write инцидента под блокировкой записи.
// Если fn вернула ошибку, сохраненное значение не меняется.
func (r *IncidentRepository) Update(_ context.Context, id string, fn func(models.Incident) (models.Incident, error)) (models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return models.Incident{}, fmt.Errorf("incident with id %s not found for update: %w", id, service.ErrIncidentNotFound)
	}

	updated, err := fn(r.incidents[pos].Clone())
	if err != nil {
		return models.Incident{}, err
	}
	updated.ID = id
	r.incidents[pos] = updated.Clone()
	return updated, nil
}
