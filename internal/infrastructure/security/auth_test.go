package security

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/memory"
)

type TokenServiceTestSuite struct {
	suite.Suite
	cache   *memory.CacheRepository
	service *TokenService
	cfg     config.AuthConfig
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.cfg = config.AuthConfig{
		JWTSecret:     "test-secret-key-for-testing-only-32-bytes",
		JWTIssuer:     "nutriplan-test",
		JWTExpiration: time.Hour,
	}
	s.cache = memory.NewCacheRepository(time.Minute)
	s.service = NewTokenService(s.cfg, s.cache, zap.NewNop())
}

func (s *TokenServiceTestSuite) TearDownTest() {
	s.cache.Close()
}

func (s *TokenServiceTestSuite) TestGenerateAndValidate() {
	userID := uuid.New()

	token, expiresAt, err := s.service.GenerateAccessToken(userID)
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := s.service.ValidateToken(context.Background(), token)
	s.Require().NoError(err)
	s.Equal(userID, claims.SubjectID())
	s.Equal(userID.String(), claims.UserID)
	s.Equal("nutriplan-test", claims.Issuer)
}

func (s *TokenServiceTestSuite) TestRejectsTamperedAndForeignTokens() {
	token, _, err := s.service.GenerateAccessToken(uuid.New())
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(context.Background(), token+"x")
	s.ErrorIs(err, ErrInvalidToken)

	other := NewTokenService(config.AuthConfig{JWTSecret: "another-secret", JWTIssuer: "nutriplan-test"}, nil, zap.NewNop())
	foreign, _, err := other.GenerateAccessToken(uuid.New())
	s.Require().NoError(err)
	_, err = s.service.ValidateToken(context.Background(), foreign)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestRejectsExpiredToken() {
	s.service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := s.service.GenerateAccessToken(uuid.New())
	s.Require().NoError(err)

	s.service.now = time.Now
	_, err = s.service.ValidateToken(context.Background(), token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestRejectsNonHMACSigningMethod() {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "nutriplan-test",
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(context.Background(), unsigned)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestRejectsNonUUIDSubject() {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "nutriplan-test",
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(context.Background(), signed)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestRevocation() {
	ctx := context.Background()
	token, _, err := s.service.GenerateAccessToken(uuid.New())
	s.Require().NoError(err)

	claims, err := s.service.ValidateToken(ctx, token)
	s.Require().NoError(err)
	s.Require().NoError(s.service.RevokeToken(ctx, claims))

	_, err = s.service.ValidateToken(ctx, token)
	s.ErrorIs(err, ErrTokenRevoked)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func TestRevokeWithoutCache(t *testing.T) {
	service := NewTokenService(config.AuthConfig{JWTSecret: "secret"}, nil, zap.NewNop())
	token, _, err := service.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	claims, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Error(t, service.RevokeToken(context.Background(), claims))
}
