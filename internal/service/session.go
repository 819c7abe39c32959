package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/border_alert_system/internal/events"
	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/shenikar/border_alert_system/internal/observability"
	"github.com/shenikar/border_alert_system/internal/simulator"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mocks/sessionmock/mock_session_service.go -package=sessionmock . SessionService

// Значения по умолчанию для новых пользователей
var (
	DefaultSignupLocation = models.GeoCoordinate{Lat: 32.7177, Lng: 74.8573}
)

const (
	defaultSignupName = "New User"
	defaultSignupRank = "Lieutenant"
	defaultSignupUnit = "Unassigned"
)

// UserRepository определяет контракт хранилища пользователей
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// SessionService предоставляет вход, регистрацию, выход и текущего пользователя
type SessionService interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Signup(ctx context.Context, input SignupInput, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*Session, error)
	Close()
}

type SignupInput struct {
	Name     string
	Email    string
	Rank     string
	Unit     string
	Location *models.GeoCoordinate
}

// Session активная сессия офицера. Хранилище оповещений и таймер принадлежат сессии
// и живут от входа до выхода.
type Session struct {
	Token     string
	User      models.User
	StartedAt time.Time
	Alerts    *AlertStore

	simulator *simulator.Simulator
}

type SessionConfig struct {
	AlertRadiusKm    float64
	AlertProbability float64
	TickInterval     time.Duration
	// SeedAlerts стартовый набор оповещений для каждой новой сессии
	SeedAlerts func(now time.Time) []models.Alert
}

type sessionManager struct {
	users     UserRepository
	incidents IncidentLister
	publisher events.Publisher
	metrics   *observability.Metrics
	logger    *logrus.Logger
	clock     clockwork.Clock
	cfg       SessionConfig

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager(users UserRepository, incidents IncidentLister, publisher events.Publisher, metrics *observability.Metrics, logger *logrus.Logger, clock clockwork.Clock, cfg SessionConfig) SessionService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &sessionManager{
		users:     users,
		incidents: incidents,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		clock:     clock,
		cfg:       cfg,
		sessions:  make(map[string]*Session),
	}
}

// Login открывает сессию для известного email и непустого пароля
func (m *sessionManager) Login(ctx context.Context, email, password string) (*Session, error) {
	log := m.logger.WithFields(logrus.Fields{
		"service": "session",
		"method":  "Login",
		"email":   email,
	})

	if strings.TrimSpace(email) == "" || password == "" {
		log.Warn("Login attempt with empty credentials")
		return nil, ErrInvalidCredentials
	}

	user, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Warn("Login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to look up user")
		return nil, fmt.Errorf("service: could not log in: %w", err)
	}

	return m.open(ctx, user)
}

// Signup регистрирует нового офицера и сразу открывает для него сессию
func (m *sessionManager) Signup(ctx context.Context, input SignupInput, password string) (*Session, error) {
	log := m.logger.WithFields(logrus.Fields{
		"service": "session",
		"method":  "Signup",
		"email":   input.Email,
	})

	if strings.TrimSpace(input.Email) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user := &models.User{
		Name:     orDefault(input.Name, defaultSignupName),
		Email:    input.Email,
		Rank:     orDefault(input.Rank, defaultSignupRank),
		Unit:     orDefault(input.Unit, defaultSignupUnit),
		Role:     models.RoleOfficer,
		Location: DefaultSignupLocation,
	}
	if input.Location != nil {
		user.Location = *input.Location
	}

	if err := m.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			log.Warn("Signup with an email already in use")
			return nil, ErrEmailTaken
		}
		log.WithError(err).Error("Failed to create user")
		return nil, fmt.Errorf("service: could not sign up: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User signed up")
	return m.open(ctx, *user)
}

func (m *sessionManager) open(ctx context.Context, user models.User) (*Session, error) {
	now := m.clock.Now().UTC()

	var seed []models.Alert
	if m.cfg.SeedAlerts != nil {
		seed = m.cfg.SeedAlerts(now)
	}

	store := NewAlertStore(m.incidents, m.publisher, m.metrics, m.logger, AlertStoreOptions{
		Seed:        seed,
		RadiusKm:    m.cfg.AlertRadiusKm,
		Probability: m.cfg.AlertProbability,
		Clock:       m.clock,
		UserID:      user.ID,
	})

	sess := &Session{
		Token:     uuid.NewString(),
		User:      user,
		StartedAt: now,
		Alerts:    store,
	}
	sess.simulator = simulator.New(m.clock, m.cfg.TickInterval, func(ctx context.Context) {
		store.Tick(ctx)
	}, m.logger)

	// Таймер живет дольше запроса входа, поэтому отвязываем его от отмены ctx
	if err := sess.simulator.Start(context.WithoutCancel(ctx)); err != nil {
		return nil, fmt.Errorf("service: could not start alert simulator: %w", err)
	}

	m.mu.Lock()
	m.sessions[sess.Token] = sess
	m.mu.Unlock()

	m.metrics.ActiveSessions.Inc()
	m.metrics.SimulatorsRunning.Inc()
	m.logger.WithFields(logrus.Fields{
		"service": "session",
		"user_id": user.ID,
	}).Info("Session opened")
	return sess, nil
}

// Logout закрывает сессию и останавливает ее таймер до возврата
func (m *sessionManager) Logout(_ context.Context, token string) error {
	m.mu.Lock()
	sess, ok := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	m.close(sess)
	return nil
}

// Session возвращает активную сессию по токену
func (m *sessionManager) Session(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close закрывает все сессии, используется при остановке сервера
func (m *sessionManager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range all {
		m.close(sess)
	}
}

func (m *sessionManager) close(sess *Session) {
	sess.simulator.Stop()
	m.metrics.SimulatorsRunning.Dec()
	m.metrics.ActiveSessions.Dec()
	m.logger.WithFields(logrus.Fields{
		"service": "session",
		"user_id": sess.User.ID,
	}).Info("Session closed")
}

// SimulatorRunning сообщает, работает ли таймер синтетических оповещений сессии
func (s *Session) SimulatorRunning() bool {
	return s.simulator != nil && s.simulator.Running()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
