package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/border_alert_system/internal/events"
	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/shenikar/border_alert_system/internal/observability"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks . IncidentRepository,IncidentService,UserRepository

// IncidentRepository определяет контракт для хранилища инцидентов
type IncidentRepository interface {
	ListAll(ctx context.Context) ([]models.Incident, error)
	GetByID(ctx context.Context, id string) (models.Incident, error)
	Create(ctx context.Context, incident *models.Incident) error
	Update(ctx context.Context, id string, fn func(models.Incident) (models.Incident, error)) (models.Incident, error)
}

// IncidentService определяет контракт бизнес-логики инцидентов
type IncidentService interface {
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]models.Incident, error)
	GetIncident(ctx context.Context, id string) (models.Incident, error)
	CreateIncident(ctx context.Context, incident *models.Incident) error
	AppendUpdate(ctx context.Context, id, content, updatedBy string, status models.IncidentStatus) (models.Incident, error)
}

type incidentService struct {
	repo      IncidentRepository
	publisher events.Publisher
	metrics   *observability.Metrics
	logger    *logrus.Logger
	clock     clockwork.Clock
}

func NewIncidentService(repo IncidentRepository, publisher events.Publisher, metrics *observability.Metrics, logger *logrus.Logger, clock clockwork.Clock) IncidentService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &incidentService{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		clock:     clock,
	}
}

// ListIncidents возвращает инциденты по фильтру, новые первыми
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "ListIncidents",
		"search":   filter.Search,
		"status":   filter.Status,
		"severity": filter.Severity,
	})
	log.Debug("Listing incidents")

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	incidents := make([]models.Incident, 0, len(all))
	for _, inc := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(inc.Title), search) &&
			!strings.Contains(strings.ToLower(inc.Description), search) {
			continue
		}
		if filter.Status != "" && inc.Status != filter.Status {
			continue
		}
		if filter.Severity != "" && inc.Severity != filter.Severity {
			continue
		}
		incidents = append(incidents, inc)
	}

	sort.SliceStable(incidents, func(i, j int) bool {
		return incidents[i].ReportedAt.After(incidents[j].ReportedAt)
	})

	log.WithField("count", len(incidents)).Debug("Incidents listed successfully")
	return incidents, nil
}

// GetIncident получает инцидент по ID
func (s *incidentService) GetIncident(ctx context.Context, id string) (models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from repository")
		return models.Incident{}, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// CreateIncident регистрирует новый инцидент со статусом reported
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateIncident",
		"title":   incident.Title,
	})
	log.Info("Attempting to create a new incident")

	if strings.TrimSpace(incident.Title) == "" {
		return fmt.Errorf("service: %w: title is required", ErrInvalidIncident)
	}
	if !incident.Severity.Valid() {
		return fmt.Errorf("service: %w: unknown severity %q", ErrInvalidIncident, incident.Severity)
	}

	now := s.clock.Now().UTC()
	incident.Status = models.StatusReported
	incident.ReportedAt = now
	incident.Updates = []models.IncidentUpdate{}
	for i := range incident.Media {
		incident.Media[i].ID = uuid.NewString()
		incident.Media[i].Timestamp = now
	}

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	s.metrics.IncidentsCreated.Inc()
	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	return nil
}

// AppendUpdate добавляет запись в журнал обновлений инцидента атомарно относительно других записей
func (s *incidentService) AppendUpdate(ctx context.Context, id, content, updatedBy string, status models.IncidentStatus) (models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "AppendUpdate",
		"incident_id": id,
		"updated_by":  updatedBy,
		"status":      status,
	})
	log.Info("Appending incident update")

	now := s.clock.Now().UTC()
	updated, err := s.repo.Update(ctx, id, func(current models.Incident) (models.Incident, error) {
		return AppendUpdate(current, content, updatedBy, status, now)
	})
	if err != nil {
		if errors.Is(err, ErrEmptyContent) || errors.Is(err, ErrInvalidStatus) {
			log.WithError(err).Warn("Rejected incident update")
		} else {
			log.WithError(err).Error("Failed to append incident update")
		}
		return models.Incident{}, fmt.Errorf("service: could not append update: %w", err)
	}

	s.metrics.IncidentUpdates.WithLabelValues(string(status)).Inc()

	last := updated.Updates[len(updated.Updates)-1]
	journaled := updated.Clone()
	if err := s.publisher.Publish(ctx, events.Event{
		Type:      events.IncidentUpdated,
		Timestamp: now,
		UserID:    updatedBy,
		Incident:  &journaled,
		Update:    &last,
	}); err != nil {
		s.metrics.JournalWriteErrors.Inc()
		log.WithError(err).Warn("Failed to journal incident update")
	}

	log.WithField("update_id", last.ID).Info("Incident update appended")
	return updated, nil
}
