package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// bearerScheme is the only accepted Authorization scheme. It is compared
// case-sensitively.
const bearerScheme = "Bearer "

// ErrInvalidAuthorizationHeader is returned by [ParseBearerToken] for any
// header that is not exactly "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID (UUID) encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("go-task-keeper", userID, time.Hour, "secret")
func GenerateJWTToken(issuer string, userID uuid.UUID, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" || userID == uuid.Nil {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims,
		SignedString:     tokenString,
		UserID:           userID,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signing method check (HS256 only)
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) claim presence and conversion to a UUID
//
// Errors of the jwt package are wrapped, so callers can match
// [jwt.ErrTokenExpired] with errors.Is.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	parsed := models.Token{Token: token, RegisteredClaims: *claims, SignedString: tokenString}
	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := parsed.GetUserID()
	if err != nil {
		return models.Token{}, err
	}
	parsed.UserID = userID

	return parsed, nil
}

// ParseBearerToken extracts the token from an Authorization header value of
// the exact form "Bearer <token>". The token must be non-empty and must not
// contain spaces.
func ParseBearerToken(authorizationHeader string) (string, error) {
	token, ok := strings.CutPrefix(authorizationHeader, bearerScheme)
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}
