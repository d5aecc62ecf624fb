package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/auth"
	"github.com/minhvu/folio/pkg/logger"
)

type CurrentSessionUseCase struct {
	jwtSvc   *auth.JWTService
	sessions SessionStore
	logger   logger.Logger
}

func NewCurrentSessionUseCase(jwtSvc *auth.JWTService, sessions SessionStore, log logger.Logger) *CurrentSessionUseCase {
	return &CurrentSessionUseCase{
		jwtSvc:   jwtSvc,
		sessions: sessions,
		logger:   log,
	}
}

type CurrentSessionInput struct {
	AccessToken string
}

type CurrentSessionOutput struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// ErrSessionExpired marks a session that ended by time rather than by
// tampering; callers translate it into an auth-change signal.
var ErrSessionExpired = errors.New("session expired")

func (uc *CurrentSessionUseCase) Execute(ctx context.Context, input CurrentSessionInput) (*CurrentSessionOutput, error) {
	ctx, span := tracer.Start(ctx, "CurrentSession")
	defer span.End()

	claims, err := uc.jwtSvc.ValidateToken(input.AccessToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperror.NewUnauthorized("session expired", ErrSessionExpired)
		}
		span.RecordError(err)
		return nil, apperror.NewUnauthorized("invalid session token", err)
	}

	revoked, err := uc.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to check session revocation", err)
	}
	if revoked {
		return nil, apperror.NewUnauthorized("session revoked", nil)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewUnauthorized("invalid session token", err)
	}

	return &CurrentSessionOutput{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
