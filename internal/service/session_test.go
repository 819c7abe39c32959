package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/border_alert_system/internal/events"
	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/shenikar/border_alert_system/internal/observability"
	"github.com/shenikar/border_alert_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type sessionFixture struct {
	users   *mocks.MockUserRepository
	metrics *observability.Metrics
	clock   *clockwork.FakeClock
	svc     SessionService
}

func newSessionFixture(t *testing.T, cfg SessionConfig) sessionFixture {
	ctrl := gomock.NewController(t)
	f := sessionFixture{
		users:   mocks.NewMockUserRepository(ctrl),
		metrics: observability.NewMetricsForTesting(),
		clock:   clockwork.NewFakeClockAt(time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)),
	}
	f.svc = NewSessionManager(f.users, staticIncidents{incidents: testIncidents()}, events.NoopPublisher{}, f.metrics, newTestLogger(), f.clock, cfg)
	t.Cleanup(f.svc.Close)
	return f
}

var officer = models.User{
	ID:       "u2",
	Name:     "Vinayak Rathod",
	Email:    "vinayk.rathod@example.com",
	Role:     models.RoleOfficer,
	Location: models.GeoCoordinate{Lat: 32.9686, Lng: 75.1142},
}

func TestSessionManager_Login(t *testing.T) {
	f := newSessionFixture(t, SessionConfig{
		TickInterval: time.Minute,
		SeedAlerts: func(now time.Time) []models.Alert {
			return []models.Alert{{ID: "a1", Timestamp: now}, {ID: "a2", Read: true, Timestamp: now}}
		},
	})
	f.users.EXPECT().GetByEmail(gomock.Any(), officer.Email).Return(officer, nil)

	sess, err := f.svc.Login(context.Background(), officer.Email, "any-password")
	require.NoError(t, err)

	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, officer, sess.User)
	assert.Equal(t, f.clock.Now().UTC(), sess.StartedAt)
	assert.Equal(t, 1, sess.Alerts.UnreadCount())
	assert.Equal(t, DefaultProximityRadiusKm, sess.Alerts.RadiusKm())
	assert.True(t, sess.SimulatorRunning())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ActiveSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SimulatorsRunning))

	got, err := f.svc.Session(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestSessionManager_Login_Rejects(t *testing.T) {
	t.Run("empty credentials", func(t *testing.T) {
		f := newSessionFixture(t, SessionConfig{})
		_, err := f.svc.Login(context.Background(), "", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = f.svc.Login(context.Background(), officer.Email, "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newSessionFixture(t, SessionConfig{})
		f.users.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, ErrUserNotFound)

		_, err := f.svc.Login(context.Background(), "ghost@example.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newSessionFixture(t, SessionConfig{})
		repoErr := errors.New("boom")
		f.users.EXPECT().GetByEmail(gomock.Any(), officer.Email).Return(models.User{}, repoErr)

		_, err := f.svc.Login(context.Background(), officer.Email, "secret")
		assert.ErrorIs(t, err, repoErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSessionManager_Signup_Defaults(t *testing.T) {
	f := newSessionFixture(t, SessionConfig{})
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
		u.ID = "u5"
		return nil
	})

	sess, err := f.svc.Signup(context.Background(), SignupInput{Email: "new@example.com"}, "pw")
	require.NoError(t, err)

	assert.Equal(t, "u5", sess.User.ID)
	assert.Equal(t, "New User", sess.User.Name)
	assert.Equal(t, "Lieutenant", sess.User.Rank)
	assert.Equal(t, "Unassigned", sess.User.Unit)
	assert.Equal(t, models.RoleOfficer, sess.User.Role)
	assert.Equal(t, DefaultSignupLocation, sess.User.Location)
	assert.True(t, sess.SimulatorRunning())
}

func TestSessionManager_Signup_WithLocation(t *testing.T) {
	f := newSessionFixture(t, SessionConfig{})
	loc := models.GeoCoordinate{Lat: 34.1526, Lng: 77.5771}
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	sess, err := f.svc.Signup(context.Background(), SignupInput{
		Name:     "Capt. Meera Singh",
		Email:    "meera@example.com",
		Rank:     "Captain",
		Unit:     "Ladakh Scouts",
		Location: &loc,
	}, "pw")
	require.NoError(t, err)

	assert.Equal(t, "Capt. Meera Singh", sess.User.Name)
	assert.Equal(t, "Captain", sess.User.Rank)
	assert.Equal(t, loc, sess.User.Location)
}

func TestSessionManager_Signup_EmailTaken(t *testing.T) {
	f := newSessionFixture(t, SessionConfig{})
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrEmailTaken)

	_, err := f.svc.Signup(context.Background(), SignupInput{Email: officer.Email}, "pw")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.ActiveSessions))
}

func TestSessionManager_Logout_StopsTimer(t *testing.T) {
	f := newSessionFixture(t, SessionConfig{TickInterval: 30 * time.Second, AlertProbability: 1})
	f.users.EXPECT().GetByEmail(gomock.Any(), officer.Email).Return(officer, nil)

	sess, err := f.svc.Login(context.Background(), officer.Email, "pw")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.clock.BlockUntilContext(ctx, 1))

	f.clock.Advance(30 * time.Second)
	assert.Eventually(t, func() bool { return len(sess.Alerts.Alerts(false)) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, f.svc.Logout(context.Background(), sess.Token))
	assert.False(t, sess.SimulatorRunning())

	// После выхода тики не порождают оповещений
	f.clock.Advance(5 * time.Minute)
	assert.Never(t, func() bool { return len(sess.Alerts.Alerts(false)) > 1 }, 50*time.Millisecond, 5*time.Millisecond)

	_, err = f.svc.Session(context.Background(), sess.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, f.svc.Logout(context.Background(), sess.Token), ErrSessionNotFound)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.ActiveSessions))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.SimulatorsRunning))
}

func TestSessionManager_SessionsAreIndependent(t *testing.T) {
	f := newSessionFixture(t, SessionConfig{
		SeedAlerts: func(now time.Time) []models.Alert {
			return []models.Alert{{ID: "a1", Timestamp: now}}
		},
	})
	f.users.EXPECT().GetByEmail(gomock.Any(), officer.Email).Return(officer, nil).Times(2)

	first, err := f.svc.Login(context.Background(), officer.Email, "pw")
	require.NoError(t, err)
	second, err := f.svc.Login(context.Background(), officer.Email, "pw")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	first.Alerts.MarkAllAsRead()
	assert.Equal(t, 0, first.Alerts.UnreadCount())
	assert.Equal(t, 1, second.Alerts.UnreadCount())
}

func TestSessionManager_Close(t *testing.T) {
	f := newSessionFixture(t, SessionConfig{})
	f.users.EXPECT().GetByEmail(gomock.Any(), officer.Email).Return(officer, nil).Times(2)

	a, err := f.svc.Login(context.Background(), officer.Email, "pw")
	require.NoError(t, err)
	b, err := f.svc.Login(context.Background(), officer.Email, "pw")
	require.NoError(t, err)

	f.svc.Close()

	assert.False(t, a.SimulatorRunning())
	assert.False(t, b.SimulatorRunning())
	_, err = f.svc.Session(context.Background(), a.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.ActiveSessions))
}
