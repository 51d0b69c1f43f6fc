package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenService issues HS256 JWTs whose subject is the user id.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Issue signs a token for userID that expires after the configured
// duration.
func (s *tokenService) Issue(ctx context.Context, userID uuid.UUID) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.tokenIssuer, userID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.Issue").Msg("error issuing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify checks signature, algorithm, issuer and expiry of tokenString.
// Expiry is reported separately from every other failure.
func (s *tokenService) Verify(ctx context.Context, tokenString string) (uuid.UUID, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		log := logger.FromContext(ctx)
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug().Err(err).Msg("token expired")
			return uuid.Nil, ErrTokenExpired
		}
		log.Debug().Err(err).Msg("token rejected")
		return uuid.Nil, ErrTokenInvalid
	}

	return token.UserID, nil
}
