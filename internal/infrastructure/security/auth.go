// Package security issues and verifies the bearer tokens that identify planner users
package security

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

const revokedKeyPrefix = "auth:revoked:"

var (
	// ErrInvalidToken is returned for malformed, expired or badly signed tokens
	ErrInvalidToken = stderrors.New("invalid token")
	// ErrTokenRevoked is returned for tokens on the revocation list
	ErrTokenRevoked = stderrors.New("token has been revoked")
)

// Claims represents JWT claims structure. The subject holds the user ID.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService signs and validates HS256 access tokens
type TokenService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	revoked    outbound.CacheRepository
	now        func() time.Time
	logger     *zap.Logger
}

// NewTokenService creates a token service. A nil cache disables revocation.
// Without a configured secret a random one is used, so tokens do not survive
// a restart.
func NewTokenService(cfg config.AuthConfig, revoked outbound.CacheRepository, logger *zap.Logger) *TokenService {
	expiration := cfg.JWTExpiration
	if expiration <= 0 {
		expiration = time.Hour
	}
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = []byte(uuid.NewString() + uuid.NewString())
		logger.Warn("auth.jwt_secret not set, using an ephemeral signing key")
	}
	return &TokenService{
		secret:     secret,
		issuer:     cfg.JWTIssuer,
		expiration: expiration,
		revoked:    revoked,
		now:        time.Now,
		logger:     logger.Named("auth"),
	}
}

// GenerateAccessToken creates a signed access token for userID
func (s *TokenService) GenerateAccessToken(userID uuid.UUID) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiration)
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses a token and returns its claims
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	if s.revoked != nil && claims.ID != "" {
		_, err := s.revoked.Get(ctx, revokedKeyPrefix+claims.ID)
		switch {
		case err == nil:
			return nil, ErrTokenRevoked
		case !stderrors.Is(err, outbound.ErrCacheMiss):
			// Revocation is advisory when the cache is unavailable.
			s.logger.Warn("Failed to check token revocation", zap.Error(err))
		}
	}

	return claims, nil
}

// RevokeToken puts a token's ID on the revocation list until it would expire anyway
func (s *TokenService) RevokeToken(ctx context.Context, claims *Claims) error {
	if s.revoked == nil {
		return stderrors.New("token revocation is not configured")
	}
	ttl := s.expiration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Set(ctx, revokedKeyPrefix+claims.ID, []byte("revoked"), ttl)
}

// SubjectID returns the user the claims identify
func (c *Claims) SubjectID() uuid.UUID {
	id, _ := uuid.Parse(c.Subject)
	return id
}
