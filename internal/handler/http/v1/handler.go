package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/shenikar/border_alert_system/internal/events"
	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/shenikar/border_alert_system/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	recentIncidentsLimit = 3
	defaultEventsLimit   = 20
	maxEventsLimit       = 100
)

// ZoneLister источник участков границы
type ZoneLister interface {
	ListZones(ctx context.Context) ([]models.BorderZone, error)
}

// EventReader источник последних записей журнала событий
type EventReader interface {
	Recent(ctx context.Context, n int64) ([]events.Event, error)
}

type Handler struct {
	incidentService service.IncidentService
	sessionService  service.SessionService
	zones           ZoneLister
	journal         EventReader
	cookies         sessions.Store
	logger          *logrus.Logger
	validate        *validator.Validate
}

func NewHandler(incidentService service.IncidentService, sessionService service.SessionService, zones ZoneLister, cookies sessions.Store, logger *logrus.Logger) *Handler {
	return &Handler{
		incidentService: incidentService,
		sessionService:  sessionService,
		zones:           zones,
		cookies:         cookies,
		logger:          logger,
		validate:        validator.New(),
	}
}

// WithJournal подключает журнал событий к маршруту /events
func (h *Handler) WithJournal(journal EventReader) *Handler {
	h.journal = journal
	return h
}

// bindAndValidate разбирает JSON тело и проверяет теги validate.
// При ошибке ответ уже записан и возвращается false.
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// writeServiceError переводит ошибки сервисного слоя в HTTP статусы
func (h *Handler) writeServiceError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrIncidentNotFound):
		log.WithError(err).Warn("Incident not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
	case errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidIncident):
		log.WithError(err).Warn("Rejected by service")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		log.WithError(err).Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
	case errors.Is(err, service.ErrEmailTaken):
		log.WithError(err).Warn("Email already registered")
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrEmailTaken.Error()})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Log in
// @Description Open a session for a known officer. Any non-empty password is accepted.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login request"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	sess, err := h.sessionService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	if err := saveSessionCookie(c, h.cookies, sess.Token, 0); err != nil {
		log.WithError(err).Warn("Failed to set session cookie")
	}
	c.JSON(http.StatusOK, SessionToResponse(sess))
}

// @Summary Sign up
// @Description Register a new officer and open a session. Missing profile fields get defaults.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body SignupRequest true "Signup request"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 409 {object} map[string]string "Email already in use"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/signup [post]
func (h *Handler) signup(c *gin.Context) {
	var input SignupRequest
	log := h.logger.WithField("method", "signup")
	if !h.bindAndValidate(c, log, &input) {
		return
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be provided together"})
		return
	}

	sess, err := h.sessionService.Signup(c.Request.Context(), DTOToSignupInput(input), input.Password)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	if err := saveSessionCookie(c, h.cookies, sess.Token, 0); err != nil {
		log.WithError(err).Warn("Failed to set session cookie")
	}
	c.JSON(http.StatusCreated, SessionToResponse(sess))
}

// @Summary Log out
// @Description Close the current session and stop its alert simulator.
// @Tags Auth
// @Produce json
// @Security SessionToken
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	sess := currentSession(c)
	log := h.logger.WithFields(logrus.Fields{"method": "logout", "user_id": sess.User.ID})

	if err := h.sessionService.Logout(c.Request.Context(), sess.Token); err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	if err := saveSessionCookie(c, h.cookies, "", -1); err != nil {
		log.WithError(err).Warn("Failed to clear session cookie")
	}
	c.Status(http.StatusNoContent)
}

// @Summary Current user
// @Description Get the officer bound to the current session.
// @Tags Auth
// @Produce json
// @Security SessionToken
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, ModelToUserResponse(currentSession(c).User))
}

// @Summary List alerts
// @Description List all alerts of the current session. sort=newest orders by timestamp, otherwise storage order (newest generated first).
// @Tags Alerts
// @Produce json
// @Security SessionToken
// @Param sort query string false "Sort order" Enums(newest)
// @Success 200 {array} AlertResponse
// @Failure 400 {object} map[string]string "Invalid sort"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	sess := currentSession(c)

	var newestFirst bool
	switch c.Query("sort") {
	case "":
	case "newest":
		newestFirst = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort, expected newest"})
		return
	}

	c.JSON(http.StatusOK, ModelsToAlertResponses(sess.Alerts.Alerts(newestFirst), sess.User.Location))
}

// @Summary Nearby alerts
// @Description Alerts within the proximity radius of the current user's location.
// @Tags Alerts
// @Produce json
// @Security SessionToken
// @Success 200 {object} NearbyAlertsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /alerts/nearby [get]
func (h *Handler) nearbyAlerts(c *gin.Context) {
	sess := currentSession(c)
	nearby := sess.Alerts.ProximityAlerts(&sess.User)

	c.JSON(http.StatusOK, NearbyAlertsResponse{
		RadiusKm: sess.Alerts.RadiusKm(),
		Alerts:   ModelsToAlertResponses(nearby, sess.User.Location),
	})
}

// @Summary Unread alert count
// @Tags Alerts
// @Produce json
// @Security SessionToken
// @Success 200 {object} UnreadCountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /alerts/unread-count [get]
func (h *Handler) unreadCount(c *gin.Context) {
	c.JSON(http.StatusOK, UnreadCountResponse{Count: currentSession(c).Alerts.UnreadCount()})
}

// @Summary Get alert by ID
// @Description Get an alert together with the incident it refers to, if that incident still exists.
// @Tags Alerts
// @Produce json
// @Security SessionToken
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertDetailResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	sess := currentSession(c)
	id := c.Param("id")
	log := h.logger.WithFields(logrus.Fields{"method": "getAlert", "id": id})

	alert, ok := sess.Alerts.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}

	resp := AlertDetailResponse{Alert: ModelToAlertResponse(alert, sess.User.Location)}
	incident, err := h.incidentService.GetIncident(c.Request.Context(), alert.IncidentID)
	switch {
	case err == nil:
		inc := ModelToIncidentResponse(incident)
		resp.Incident = &inc
	case errors.Is(err, service.ErrIncidentNotFound):
		log.WithField("incident_id", alert.IncidentID).Debug("Alert refers to a missing incident")
	default:
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Mark alert as read
// @Description Mark one alert as read. Unknown IDs are ignored.
// @Tags Alerts
// @Produce json
// @Security SessionToken
// @Param id path string true "Alert ID"
// @Success 200 {object} UnreadCountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /alerts/{id}/read [post]
func (h *Handler) markAlertRead(c *gin.Context) {
	store := currentSession(c).Alerts
	store.MarkAsRead(c.Param("id"))
	c.JSON(http.StatusOK, UnreadCountResponse{Count: store.UnreadCount()})
}

// @Summary Mark all alerts as read
// @Tags Alerts
// @Produce json
// @Security SessionToken
// @Success 200 {object} UnreadCountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /alerts/read-all [post]
func (h *Handler) markAllAlertsRead(c *gin.Context) {
	store := currentSession(c).Alerts
	store.MarkAllAsRead()
	c.JSON(http.StatusOK, UnreadCountResponse{Count: store.UnreadCount()})
}

// @Summary Get a list of incidents
// @Description List incidents newest first, optionally filtered by free-text search, status and severity.
// @Tags Incidents
// @Produce json
// @Security SessionToken
// @Param q query string false "Search in title and description"
// @Param status query string false "Status" Enums(reported, investigating, resolved, false-alarm)
// @Param severity query string false "Severity" Enums(low, medium, high, critical)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	filter := models.IncidentFilter{
		Search:   c.Query("q"),
		Status:   models.IncidentStatus(c.Query("status")),
		Severity: models.Severity(c.Query("severity")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}
	if filter.Severity != "" && !filter.Severity.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid severity filter"})
		return
	}

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Create a new incident
// @Description Report a new incident. The reporter is the current user and the status starts as reported.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security SessionToken
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToIncidentModel(input, currentSession(c).User.ID)
	if err := h.incidentService.CreateIncident(c.Request.Context(), model); err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(*model))
}

// @Summary Get incident by ID
// @Tags Incidents
// @Produce json
// @Security SessionToken
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Append an incident update
// @Description Append a note to the incident's update log, optionally changing its status.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security SessionToken
// @Param id path string true "Incident ID"
// @Param update body AppendUpdateRequest true "Update request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/updates [post]
func (h *Handler) appendUpdate(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "appendUpdate").WithField("id", id)

	var input AppendUpdateRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	updated, err := h.incidentService.AppendUpdate(c.Request.Context(), id, input.Content, currentSession(c).User.ID, models.IncidentStatus(input.Status))
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(updated))
}

// @Summary List border zones
// @Tags Zones
// @Produce json
// @Security SessionToken
// @Success 200 {array} ZoneResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones [get]
func (h *Handler) listZones(c *gin.Context) {
	log := h.logger.WithField("method", "listZones")

	zones, err := h.zones.ListZones(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToZoneResponses(zones))
}

// @Summary Dashboard summary
// @Description Active incident count, monitored zones, nearby and unread alerts, most recent incidents.
// @Tags Dashboard
// @Produce json
// @Security SessionToken
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	sess := currentSession(c)
	log := h.logger.WithFields(logrus.Fields{"method": "dashboard", "user_id": sess.User.ID})

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), models.IncidentFilter{})
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	zones, err := h.zones.ListZones(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}

	active := 0
	for _, inc := range incidents {
		if inc.Status != models.StatusResolved {
			active++
		}
	}
	recent := incidents[:min(recentIncidentsLimit, len(incidents))]

	c.JSON(http.StatusOK, DashboardResponse{
		ActiveIncidents: active,
		MonitoredZones:  len(zones),
		UnreadAlerts:    sess.Alerts.UnreadCount(),
		NearbyAlerts:    ModelsToAlertResponses(sess.Alerts.ProximityAlerts(&sess.User), sess.User.Location),
		RecentIncidents: ModelsToIncidentResponses(recent),
	})
}

// @Summary Recent journal events
// @Description Latest alert and incident update events from the Redis journal, newest first.
// @Tags Events
// @Produce json
// @Security SessionToken
// @Param limit query int false "Number of events" default(20) minimum(1) maximum(100)
// @Success 200 {array} events.Event
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Failure 503 {object} map[string]string "Event journal disabled"
// @Router /events [get]
func (h *Handler) recentEvents(c *gin.Context) {
	log := h.logger.WithField("method", "recentEvents")
	if h.journal == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event journal disabled"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultEventsLimit)))
	if err != nil || limit < 1 || limit > maxEventsLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}

	recent, err := h.journal.Recent(c.Request.Context(), int64(limit))
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, recent)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
