package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/auth"
	"github.com/minhvu/folio/pkg/logger"
)

type SignOutUseCase struct {
	jwtSvc   *auth.JWTService
	sessions SessionStore
	logger   logger.Logger
}

func NewSignOutUseCase(jwtSvc *auth.JWTService, sessions SessionStore, log logger.Logger) *SignOutUseCase {
	return &SignOutUseCase{
		jwtSvc:   jwtSvc,
		sessions: sessions,
		logger:   log,
	}
}

type SignOutInput struct {
	AccessToken string
}

// Execute revokes the token for the rest of its lifespan. An already
// expired token signs out successfully; there is no session left to
// revoke.
func (uc *SignOutUseCase) Execute(ctx context.Context, input SignOutInput) error {
	ctx, span := tracer.Start(ctx, "SignOut")
	defer span.End()

	claims, err := uc.jwtSvc.ValidateToken(input.AccessToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil
		}
		span.RecordError(err)
		return apperror.NewUnauthorized("invalid session token", err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := uc.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		uc.logger.Error("Failed to revoke session", err, zap.String("token_id", claims.ID))
		span.RecordError(err)
		return apperror.NewInternal("failed to revoke session", err)
	}
	return nil
}
