package auth

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/minhvu/folio/internal/domain/user"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/auth"
	"github.com/minhvu/folio/pkg/logger"
)

// invalidCredentials is the message returned verbatim to the caller
// for both an unknown email and a wrong password; sign-in never
// reveals which half was wrong.
const invalidCredentials = "Invalid login credentials"

// SessionStore is the revocation list consulted while a token is still
// inside its lifespan. Signing out adds the token id until its natural
// expiry.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

var tracer = otel.Tracer("auth_usecase")

type SignInUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewSignInUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *SignInUseCase {
	return &SignInUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type SignInInput struct {
	Email    string
	Password string
}

type SignInOutput struct {
	AccessToken string
	Email       string
}

func (uc *SignInUseCase) Execute(ctx context.Context, input SignInInput) (*SignInOutput, error) {
	ctx, span := tracer.Start(ctx, "SignIn")
	defer span.End()

	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			err = apperror.NewUnauthorized(invalidCredentials, nil)
		}
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		err := apperror.NewUnauthorized(invalidCredentials, nil)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID, u.Email)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &SignInOutput{AccessToken: token, Email: u.Email}, nil
}
