package service

import (
	"bytes"
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/border_alert_system/internal/events"
	eventmocks "github.com/shenikar/border_alert_system/internal/events/mocks"
	"github.com/shenikar/border_alert_system/internal/geo"
	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/shenikar/border_alert_system/internal/observability"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var jammu = models.GeoCoordinate{Lat: 32.7177, Lng: 74.8573}

type staticIncidents struct {
	incidents []models.Incident
	err       error
}

func (s staticIncidents) ListAll(context.Context) ([]models.Incident, error) {
	return s.incidents, s.err
}

// scriptedRand отдает заранее заданные значения по кругу
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRand) IntN(n int) int {
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func newTestAlertStore(lister IncidentLister, publisher events.Publisher, opts AlertStoreOptions) (*AlertStore, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return NewAlertStore(lister, publisher, metrics, newTestLogger(), opts), metrics
}

// northOf возвращает точку на том же меридиане в distKm к северу от origin
func northOf(origin models.GeoCoordinate, distKm float64) models.GeoCoordinate {
	return models.GeoCoordinate{
		Lat: origin.Lat + distKm/geo.EarthRadiusKm*180/math.Pi,
		Lng: origin.Lng,
	}
}

func testIncidents() []models.Incident {
	return []models.Incident{
		{ID: "i1", Title: "Suspicious Movement", Severity: models.SeverityMedium, Location: models.GeoCoordinate{Lat: 32.9686, Lng: 75.1242}},
		{ID: "i2", Title: "Border Fence Damage", Severity: models.SeverityHigh, Location: models.GeoCoordinate{Lat: 33.0055, Lng: 74.7556}},
		{ID: "i3", Title: "Unauthorized Drone Activity", Severity: models.SeverityCritical, Location: models.GeoCoordinate{Lat: 32.8686, Lng: 74.9142}},
	}
}

func TestProximityAlerts_RadiusBoundary(t *testing.T) {
	seed := []models.Alert{
		{ID: "d10", Location: northOf(jammu, 10)},
		{ID: "d49.9", Location: northOf(jammu, 49.9)},
		{ID: "d50", Location: northOf(jammu, 50.0)},
		{ID: "d50.1", Location: northOf(jammu, 50.1)},
		{ID: "d200", Location: northOf(jammu, 200)},
	}
	store, metrics := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{Seed: seed})
	user := &models.User{ID: "u1", Location: jammu}

	nearby := store.ProximityAlerts(user)

	ids := make([]string, 0, len(nearby))
	for _, a := range nearby {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"d10", "d49.9", "d50"}, ids)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProximityQueries))

	// Повторный вызов без изменений дает тот же результат
	assert.Equal(t, nearby, store.ProximityAlerts(user))
}

func TestProximityAlerts_NilUser(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{
		Seed: []models.Alert{{ID: "a1", Location: jammu}},
	})

	nearby := store.ProximityAlerts(nil)
	assert.NotNil(t, nearby)
	assert.Empty(t, nearby)
}

func TestProximityAlerts_CustomRadius(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{
		Seed: []models.Alert{
			{ID: "near", Location: northOf(jammu, 5)},
			{ID: "far", Location: northOf(jammu, 20)},
		},
		RadiusKm: 10,
	})

	nearby := store.ProximityAlerts(&models.User{Location: jammu})
	require.Len(t, nearby, 1)
	assert.Equal(t, "near", nearby[0].ID)
	assert.Equal(t, 10.0, store.RadiusKm())
}

func TestProximityAlerts_DoesNotMutate(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{
		Seed: []models.Alert{{ID: "a1", Location: jammu}},
	})

	nearby := store.ProximityAlerts(&models.User{Location: jammu})
	nearby[0].Read = true

	assert.Equal(t, 1, store.UnreadCount())
}

func TestUnreadCount(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{
		Seed: []models.Alert{{ID: "a1"}, {ID: "a2", Read: true}, {ID: "a3"}},
	})
	assert.Equal(t, 2, store.UnreadCount())

	empty, _ := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{})
	assert.Equal(t, 0, empty.UnreadCount())
}

func TestMarkAsRead_Idempotent(t *testing.T) {
	store, metrics := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{
		Seed: []models.Alert{{ID: "a1"}, {ID: "a2"}},
	})

	store.MarkAsRead("a1")
	once := store.Alerts(false)
	store.MarkAsRead("a1")
	twice := store.Alerts(false)

	assert.Equal(t, once, twice)
	assert.True(t, twice[0].Read)
	assert.False(t, twice[1].Read)
	assert.Equal(t, 1, store.UnreadCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AlertsMarkedRead))
}

func TestMarkAsRead_UnknownID(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{
		Seed: []models.Alert{{ID: "a1"}},
	})
	before := store.Alerts(false)

	store.MarkAsRead("does-not-exist")

	assert.Equal(t, before, store.Alerts(false))
}

func TestMarkAllAsRead(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{
		Seed: []models.Alert{{ID: "a1"}, {ID: "a2", Read: true}, {ID: "a3"}},
	})

	store.MarkAllAsRead()
	assert.Equal(t, 0, store.UnreadCount())

	snapshot := store.Alerts(false)
	store.MarkAllAsRead()
	assert.Equal(t, snapshot, store.Alerts(false))
}

func TestAlerts_NewestFirst(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store, _ := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{
		Seed: []models.Alert{
			{ID: "old", Timestamp: now.Add(-2 * time.Hour)},
			{ID: "new", Timestamp: now},
			{ID: "mid", Timestamp: now.Add(-time.Hour)},
		},
	})

	stored := store.Alerts(false)
	assert.Equal(t, "old", stored[0].ID)

	sorted := store.Alerts(true)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestGet(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{
		Seed: []models.Alert{{ID: "a1", Title: "first"}},
	})

	a, ok := store.Get("a1")
	require.True(t, ok)
	assert.Equal(t, "first", a.Title)

	_, ok = store.Get("a2")
	assert.False(t, ok)
}

func TestTick_GeneratesAlertFromIncident(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := eventmocks.NewMockPublisher(ctrl)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC))
	rnd := &scriptedRand{floats: []float64{0.05}, ints: []int{1}}

	store, metrics := newTestAlertStore(staticIncidents{incidents: testIncidents()}, publisher, AlertStoreOptions{
		Seed:        []models.Alert{{ID: "a1", Read: true}},
		Probability: DefaultAlertProbability,
		Rand:        rnd,
		Clock:       clock,
		UserID:      "u2",
	})

	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event events.Event) {
			assert.Equal(t, events.AlertCreated, event.Type)
			assert.Equal(t, "u2", event.UserID)
			require.NotNil(t, event.Alert)
			assert.Equal(t, "i2", event.Alert.IncidentID)
		}).Return(nil).Times(1)

	alert, ok := store.Tick(context.Background())
	require.True(t, ok)

	assert.NotEmpty(t, alert.ID)
	assert.Equal(t, "i2", alert.IncidentID)
	assert.Equal(t, "New Alert: Border Fence Damage", alert.Title)
	assert.Equal(t, `New activity detected related to incident "Border Fence Damage". Please check immediately.`, alert.Message)
	assert.Equal(t, models.SeverityHigh, alert.Severity)
	assert.Equal(t, models.GeoCoordinate{Lat: 33.0055, Lng: 74.7556}, alert.Location)
	assert.Equal(t, clock.Now().UTC(), alert.Timestamp)
	assert.False(t, alert.Read)

	all := store.Alerts(false)
	require.Len(t, all, 2)
	assert.Equal(t, alert, all[0], "new alert is prepended")
	assert.Equal(t, "a1", all[1].ID)
	assert.Equal(t, 1, store.UnreadCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SyntheticAlerts.WithLabelValues("high")))
}

func TestTick_ProbabilityThresholdIsStrict(t *testing.T) {
	store, metrics := newTestAlertStore(staticIncidents{incidents: testIncidents()}, nil, AlertStoreOptions{
		Probability: 0.10,
		Rand:        &scriptedRand{floats: []float64{0.10}, ints: []int{0}},
	})

	_, ok := store.Tick(context.Background())
	assert.False(t, ok)
	assert.Empty(t, store.Alerts(false))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AlertTicks))
}

func TestTick_EmptyRepository(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{}, nil, AlertStoreOptions{
		Probability: 1,
		Rand:        &scriptedRand{floats: []float64{0}, ints: []int{0}},
	})

	_, ok := store.Tick(context.Background())
	assert.False(t, ok)
	assert.Empty(t, store.Alerts(false))
}

func TestTick_RepositoryError(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{err: errors.New("boom")}, nil, AlertStoreOptions{
		Probability: 1,
		Rand:        &scriptedRand{floats: []float64{0}, ints: []int{0}},
	})

	_, ok := store.Tick(context.Background())
	assert.False(t, ok)
	assert.Empty(t, store.Alerts(false))
}

func TestTick_JournalErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := eventmocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(1)

	store, metrics := newTestAlertStore(staticIncidents{incidents: testIncidents()}, publisher, AlertStoreOptions{
		Probability: 1,
		Rand:        &scriptedRand{floats: []float64{0.5}, ints: []int{0}},
	})

	_, ok := store.Tick(context.Background())
	assert.True(t, ok)
	assert.Len(t, store.Alerts(false), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.JournalWriteErrors))
}

func TestTick_UniqueIDs(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{incidents: testIncidents()}, nil, AlertStoreOptions{
		Probability: 1,
		Clock:       clockwork.NewFakeClock(), // одинаковое время у всех оповещений
	})

	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		alert, ok := store.Tick(context.Background())
		require.True(t, ok)
		_, dup := seen[alert.ID]
		require.False(t, dup, "duplicate alert id %s", alert.ID)
		seen[alert.ID] = struct{}{}
	}
}

func TestTick_RateMatchesProbability(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{incidents: testIncidents()}, nil, AlertStoreOptions{
		Probability: DefaultAlertProbability,
		Rand:        rand.New(rand.NewPCG(42, 1024)),
	})

	const ticks = 10000
	generated := 0
	perIncident := make(map[string]int)
	for i := 0; i < ticks; i++ {
		if alert, ok := store.Tick(context.Background()); ok {
			generated++
			perIncident[alert.IncidentID]++
		}
	}

	// sigma = sqrt(n*p*(1-p)) = 30, допускаем 5 sigma
	assert.InDelta(t, 1000, generated, 150)
	assert.Len(t, store.Alerts(false), generated)
	for _, inc := range testIncidents() {
		assert.Positive(t, perIncident[inc.ID], "incident %s never selected", inc.ID)
	}
}

func TestAlertStore_ConcurrentAccess(t *testing.T) {
	store, _ := newTestAlertStore(staticIncidents{incidents: testIncidents()}, nil, AlertStoreOptions{
		Seed:        []models.Alert{{ID: "a1", Location: jammu}, {ID: "a2", Location: jammu}},
		Probability: 1,
	})
	user := &models.User{Location: jammu}
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(4)
		go func() { defer wg.Done(); store.Tick(ctx) }()
		go func() { defer wg.Done(); store.MarkAsRead("a1") }()
		go func() { defer wg.Done(); store.ProximityAlerts(user) }()
		go func() { defer wg.Done(); store.UnreadCount() }()
	}
	wg.Wait()

	assert.Len(t, store.Alerts(false), 22)
	store.MarkAllAsRead()
	assert.Equal(t, 0, store.UnreadCount())
}
