package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authUC "github.com/minhvu/folio/internal/application/usecase/auth"
	"github.com/minhvu/folio/internal/cms"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/logger"
)

const (
	GinContextKeyUserID = "userID"
	GinContextKeyEmail  = "userEmail"
)

// AuthMiddleware gates the admin surface. Every request revalidates the
// bearer token against the session use case, so revocation and expiry
// take effect immediately. An expired token additionally feeds the
// session gate, which clears the admin workspace.
func AuthMiddleware(sessionUC *authUC.CurrentSessionUseCase, gate *cms.Gate, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		session, err := sessionUC.Execute(c.Request.Context(), authUC.CurrentSessionInput{AccessToken: tokenString})
		if err != nil {
			if errors.Is(err, authUC.ErrSessionExpired) {
				gate.Apply(cms.Event{Kind: cms.EventAuthChange, Authenticated: false})
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or revoked token"})
			return
		}

		c.Set(GinContextKeyUserID, session.UserID)
		c.Set(GinContextKeyEmail, session.Email)
		c.Next()
	}
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// ErrorMiddleware converts errors attached by handlers into the uniform
// JSON error body. Every mutation failure surfaces through here; nothing
// is swallowed.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Error("Request failed", err)
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(status, appErr.ToJSON())
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
	}
}
