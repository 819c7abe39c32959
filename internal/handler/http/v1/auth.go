package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/shenikar/border_alert_system/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	// SessionCookieName имя cookie, в которой хранится токен сессии
	SessionCookieName = "border_alert_session"
	SessionHeader     = "X-Session-Token"

	cookieTokenKey    = "token"
	sessionContextKey = "session"
)

// NewCookieStore создает хранилище cookie для токена сессии
func NewCookieStore(secret []byte) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SessionAuthMiddleware - middleware для аутентификации по токену сессии.
// Токен ищется в X-Session-Token, затем в Authorization: Bearer, затем в cookie.
func SessionAuthMiddleware(sessionService service.SessionService, store sessions.Store, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, store)
		if token == "" {
			log.Warn("Session token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session token required"})
			return
		}

		sess, err := sessionService.Session(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				log.Warn("Unknown or expired session token")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
				return
			}
			log.WithError(err).Error("Failed to resolve session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

func sessionToken(c *gin.Context, store sessions.Store) string {
	if token := c.GetHeader(SessionHeader); token != "" {
		return token
	}
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if store == nil {
		return ""
	}
	// Поврежденная или чужая cookie дает пустую сессию
	cookie, err := store.Get(c.Request, SessionCookieName)
	if err != nil {
		return ""
	}
	token, _ := cookie.Values[cookieTokenKey].(string)
	return token
}

// currentSession возвращает сессию, установленную SessionAuthMiddleware
func currentSession(c *gin.Context) *service.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*service.Session)
	return sess
}

// saveSessionCookie записывает токен в cookie. maxAge < 0 удаляет cookie.
func saveSessionCookie(c *gin.Context, store sessions.Store, token string, maxAge int) error {
	if store == nil {
		return nil
	}
	cookie, err := store.Get(c.Request, SessionCookieName)
	if err != nil && cookie == nil {
		return err
	}
	if maxAge < 0 {
		cookie.Options.MaxAge = -1
		delete(cookie.Values, cookieTokenKey)
	} else {
		cookie.Values[cookieTokenKey] = token
	}
	return cookie.Save(c.Request, c.Writer)
}
