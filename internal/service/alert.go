package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/border_alert_system/internal/events"
	"github.com/shenikar/border_alert_system/internal/geo"
	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/shenikar/border_alert_system/internal/observability"
	"github.com/sirupsen/logrus"
)

const (
	DefaultProximityRadiusKm = 50.0
	DefaultAlertProbability  = 0.10
)

// IncidentLister источник инцидентов для синтетических оповещений
type IncidentLister interface {
	ListAll(ctx context.Context) ([]models.Incident, error)
}

// RandSource подмножество *rand.Rand из math/rand/v2
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

type AlertStoreOptions struct {
	// Seed начальные оповещения, порядок сохраняется
	Seed []models.Alert
	// RadiusKm радиус близости; <= 0 означает DefaultProximityRadiusKm
	RadiusKm float64
	// Probability вероятность нового оповещения на тик, ограничивается [0, 1]
	Probability float64
	Rand        RandSource
	Clock       clockwork.Clock
	// UserID владелец хранилища, попадает в журнал событий
	UserID string
}

// AlertStore хранит оповещения одной сессии и их состояние прочтения.
// Все изменения проходят через методы хранилища под одной блокировкой записи.
type AlertStore struct {
	mu     sync.RWMutex
	alerts []models.Alert

	incidents   IncidentLister
	publisher   events.Publisher
	metrics     *observability.Metrics
	logger      *logrus.Logger
	rnd         RandSource
	clock       clockwork.Clock
	radiusKm    float64
	probability float64
	userID      string
}

func NewAlertStore(incidents IncidentLister, publisher events.Publisher, metrics *observability.Metrics, logger *logrus.Logger, opts AlertStoreOptions) *AlertStore {
	s := &AlertStore{
		alerts:      append([]models.Alert(nil), opts.Seed...),
		incidents:   incidents,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		rnd:         opts.Rand,
		clock:       opts.Clock,
		radiusKm:    opts.RadiusKm,
		probability: min(max(opts.Probability, 0), 1),
		userID:      opts.UserID,
	}
	if s.rnd == nil {
		s.rnd = globalRand{}
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.radiusKm <= 0 {
		s.radiusKm = DefaultProximityRadiusKm
	}
	if s.publisher == nil {
		s.publisher = events.NoopPublisher{}
	}
	return s
}

// RadiusKm радиус, в пределах которого оповещение считается близким
func (s *AlertStore) RadiusKm() float64 {
	return s.radiusKm
}

// Alerts возвращает копию всех оповещений. При newestFirst список сортируется по времени,
// иначе сохраняется порядок хранения.
func (s *AlertStore) Alerts(newestFirst bool) []models.Alert {
	s.mu.RLock()
	out := append(make([]models.Alert, 0, len(s.alerts)), s.alerts...)
	s.mu.RUnlock()

	if newestFirst {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Timestamp.After(out[j].Timestamp)
		})
	}
	return out
}

// Get возвращает оповещение по ID
func (s *AlertStore) Get(id string) (models.Alert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.alerts {
		if a.ID == id {
			return a, true
		}
	}
	return models.Alert{}, false
}

// ProximityAlerts возвращает оповещения не дальше радиуса от местоположения пользователя.
// Для nil пользователя возвращается пустой список.
func (s *AlertStore) ProximityAlerts(user *models.User) []models.Alert {
	if user == nil {
		return []models.Alert{}
	}
	s.metrics.ProximityQueries.Inc()

	s.mu.RLock()
	defer s.mu.RUnlock()

	nearby := make([]models.Alert, 0)
	for _, a := range s.alerts {
		if geo.Within(user.Location, a.Location, s.radiusKm) {
			nearby = append(nearby, a)
		}
	}
	return nearby
}

// UnreadCount количество непрочитанных оповещений
func (s *AlertStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, a := range s.alerts {
		if !a.Read {
			count++
		}
	}
	return count
}

// MarkAsRead помечает оповещение прочитанным. Неизвестный ID игнорируется.
func (s *AlertStore) MarkAsRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == id {
			if !s.alerts[i].Read {
				s.alerts[i].Read = true
				s.metrics.AlertsMarkedRead.Inc()
			}
			return
		}
	}
	s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "MarkAsRead",
		"alert_id": id,
	}).Debug("Alert not found, ignoring")
}

// MarkAllAsRead помечает прочитанными все оповещения
func (s *AlertStore) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if !s.alerts[i].Read {
			s.alerts[i].Read = true
			s.metrics.AlertsMarkedRead.Inc()
		}
	}
}

// Tick с вероятностью probability создает синтетическое оповещение по случайному инциденту
// и добавляет его в начало списка. Пустой репозиторий или ошибка чтения означают пропуск тика.
func (s *AlertStore) Tick(ctx context.Context) (models.Alert, bool) {
	s.metrics.AlertTicks.Inc()

	s.mu.Lock()
	fire := s.rnd.Float64() < s.probability
	s.mu.Unlock()
	if !fire {
		return models.Alert{}, false
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "Tick",
		"user_id": s.userID,
	})

	incidents, err := s.incidents.ListAll(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to list incidents for synthetic alert")
		return models.Alert{}, false
	}
	if len(incidents) == 0 {
		log.Debug("No incidents available, skipping synthetic alert")
		return models.Alert{}, false
	}

	s.mu.Lock()
	source := incidents[s.rnd.IntN(len(incidents))]
	alert := models.Alert{
		ID:         uuid.NewString(),
		IncidentID: source.ID,
		Title:      fmt.Sprintf("New Alert: %s", source.Title),
		Message:    fmt.Sprintf("New activity detected related to incident %q. Please check immediately.", source.Title),
		Severity:   source.Severity,
		Timestamp:  s.clock.Now().UTC(),
		Read:       false,
		Location:   source.Location,
	}
	s.alerts = append([]models.Alert{alert}, s.alerts...)
	s.mu.Unlock()

	s.metrics.SyntheticAlerts.WithLabelValues(string(alert.Severity)).Inc()
	log.WithFields(logrus.Fields{
		"alert_id":    alert.ID,
		"incident_id": alert.IncidentID,
	}).Info("Synthetic alert generated")

	journaled := alert
	if err := s.publisher.Publish(ctx, events.Event{
		Type:      events.AlertCreated,
		Timestamp: alert.Timestamp,
		UserID:    s.userID,
		Alert:     &journaled,
	}); err != nil {
		s.metrics.JournalWriteErrors.Inc()
		log.WithError(err).Warn("Failed to journal synthetic alert")
	}

	return alert, true
}
