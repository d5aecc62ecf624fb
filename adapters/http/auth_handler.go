package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authUC "github.com/minhvu/folio/internal/application/usecase/auth"
	"github.com/minhvu/folio/internal/cms"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/logger"
)

type AuthHandler struct {
	signInUseCase  *authUC.SignInUseCase
	signOutUseCase *authUC.SignOutUseCase
	sessionUseCase *authUC.CurrentSessionUseCase
	gate           *cms.Gate
	logger         logger.Logger
}

func NewAuthHandler(
	signInUC *authUC.SignInUseCase,
	signOutUC *authUC.SignOutUseCase,
	sessionUC *authUC.CurrentSessionUseCase,
	gate *cms.Gate,
	log logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		signInUseCase:  signInUC,
		signOutUseCase: signOutUC,
		sessionUseCase: sessionUC,
		gate:           gate,
		logger:         log,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login issues a session token. A failed attempt feeds the gate too,
// which by the transition rules leaves the state unchanged; the auth
// error message reaches the caller word for word.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	output, err := h.signInUseCase.Execute(c.Request.Context(), authUC.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.gate.Apply(cms.Event{Kind: cms.EventSignInResult, Err: err})

		var appErr *apperror.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperror.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": appErr.Message})
			return
		}
		c.Error(err)
		return
	}

	h.gate.Apply(cms.Event{Kind: cms.EventSignInResult})

	c.JSON(http.StatusOK, gin.H{
		"access_token": output.AccessToken,
		"email":        output.Email,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization header is required"})
		return
	}

	if err := h.signOutUseCase.Execute(c.Request.Context(), authUC.SignOutInput{AccessToken: token}); err != nil {
		c.Error(err)
		return
	}

	h.gate.Apply(cms.Event{Kind: cms.EventSignOut})

	c.Status(http.StatusNoContent)
}

// Session reports the current session; the startup probe of the admin
// client. The answer also drives the gate's initial check.
func (h *AuthHandler) Session(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		h.gate.Apply(cms.Event{Kind: cms.EventInitialCheck, Authenticated: false})
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	session, err := h.sessionUseCase.Execute(c.Request.Context(), authUC.CurrentSessionInput{AccessToken: token})
	if err != nil {
		h.gate.Apply(cms.Event{Kind: cms.EventInitialCheck, Authenticated: false})
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	h.gate.Apply(cms.Event{Kind: cms.EventInitialCheck, Authenticated: true})

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"email":         session.Email,
		"expires_at":    session.ExpiresAt,
	})
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return token
}
