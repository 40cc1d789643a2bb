package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/GarageLog/garage-log-backend/config"
	"github.com/GarageLog/garage-log-backend/logger"
)

var (
	// ErrTokenExpired is returned when JWT validation fails due to expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for general token validation failures (signature, format).
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenMissingClaim is returned if the 'sub' claim is missing.
	ErrTokenMissingClaim = errors.New("token missing required claim")
)

// Validator defines the interface for validating tokens.
type Validator interface {
	Validate(tokenString string) (string, error)
}

// JWTValidator validates Supabase access tokens. HS256 with the project JWT
// secret is tried first; asymmetric tokens fall back to the project's JWKS
// endpoint, fetched through a refreshing cache.
type JWTValidator struct {
	staticSecret []byte
	jwksURL      string
	jwksCache    *jwk.Cache
}

var _ Validator = (*JWTValidator)(nil)

// NewJWTValidator creates a validator instance using application configuration.
func NewJWTValidator(cfg *config.Config) (Validator, error) {
	log := logger.GetLogger()

	v := &JWTValidator{}

	if cfg.ExternalServices.SupabaseJWTSecret != "" {
		v.staticSecret = []byte(cfg.ExternalServices.SupabaseJWTSecret)
		log.Info("JWT validator: HS256 validation enabled")
	}

	if cfg.ExternalServices.SupabaseURL != "" {
		v.jwksURL = fmt.Sprintf("%s/auth/v1/.well-known/jwks.json", cfg.ExternalServices.SupabaseURL)
		v.jwksCache = jwk.NewCache(context.Background())
		if err := v.jwksCache.Register(v.jwksURL, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
			return nil, fmt.Errorf("failed to register JWKS endpoint: %w", err)
		}
		log.Infow("JWT validator: JWKS validation enabled", "url", v.jwksURL)
	}

	if v.staticSecret == nil && v.jwksCache == nil {
		return nil, fmt.Errorf("jwt validator requires SUPABASE_JWT_SECRET or SUPABASE_URL")
	}

	return v, nil
}

// Validate parses and validates the token, returning the subject claim.
func (v *JWTValidator) Validate(tokenString string) (string, error) {
	var staticErr error
	if len(v.staticSecret) > 0 {
		userID, err := v.parseWith(tokenString, jwt.WithKey(jwa.HS256, v.staticSecret))
		if err == nil {
			return userID, nil
		}
		staticErr = err
	}

	if v.jwksCache != nil {
		keySet, err := v.jwksCache.Get(context.Background(), v.jwksURL)
		if err != nil {
			logger.GetLogger().Warnw("JWKS fetch failed", "error", err)
		} else {
			userID, err := v.parseWith(tokenString, jwt.WithKeySet(keySet))
			if err == nil {
				return userID, nil
			}
			if staticErr == nil {
				staticErr = err
			}
		}
	}

	if staticErr != nil {
		if errors.Is(staticErr, ErrTokenExpired) || errors.Is(staticErr, ErrTokenMissingClaim) {
			return "", staticErr
		}
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, staticErr)
	}
	return "", ErrTokenInvalid
}

func (v *JWTValidator) parseWith(tokenString string, keyOption jwt.ParseOption) (string, error) {
	token, err := jwt.Parse([]byte(tokenString), keyOption, jwt.WithValidate(true))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return "", fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return "", err
	}

	sub := token.Subject()
	if sub == "" {
		return "", ErrTokenMissingClaim
	}
	return sub, nil
}
