package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret      = "test-secret-that-is-long-enough-for-testing"
	testWrongSecret = "wrong-secret-that-is-long-enough-for-testing"
	testLifetime    = 60 * time.Minute
)

var testEpoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// serviceAt builds an hmacJWTService whose clock is pinned to now, with no
// clock-skew leeway, so expiry tests behave deterministically. The refresh
// lifetime is 24x the access lifetime.
func serviceAt(secret string, now time.Time) JWTService {
	return &hmacJWTService{
		signingKey:           []byte(secret),
		tokenLifetime:        testLifetime,
		refreshTokenLifetime: 24 * testLifetime,
		timeFunc:             func() time.Time { return now },
		clockSkew:            0,
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := serviceAt(testSecret, testEpoch)

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	// Compare Unix timestamps to avoid timezone issues
	assert.Equal(t, testEpoch.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, testEpoch.Add(testLifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	// Each case mints (or fabricates) a token and picks the service that
	// will validate it, which lets cases move the clock or change the key
	// between the two steps.
	tests := []struct {
		name    string
		setup   func(t *testing.T) (JWTService, string)
		wantErr error
	}{
		{
			name: "valid token",
			setup: func(t *testing.T) (JWTService, string) {
				svc := serviceAt(testSecret, testEpoch)
				return svc, mustGenerateToken(t, svc, userID)
			},
		},
		{
			name: "expired token",
			setup: func(t *testing.T) (JWTService, string) {
				token := mustGenerateToken(t, serviceAt(testSecret, testEpoch), userID)
				late := serviceAt(testSecret, testEpoch.Add(testLifetime+time.Hour))
				return late, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "invalid signature",
			setup: func(t *testing.T) (JWTService, string) {
				token := mustGenerateToken(t, serviceAt(testSecret, testEpoch), userID)
				return serviceAt(testWrongSecret, testEpoch), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setup: func(t *testing.T) (JWTService, string) {
				return serviceAt(testSecret, testEpoch), "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "refresh token rejected as access token",
			setup: func(t *testing.T) (JWTService, string) {
				svc := serviceAt(testSecret, testEpoch)
				return svc, mustGenerateRefreshToken(t, svc, userID)
			},
			wantErr: ErrWrongTokenType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setup(t)
			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name    string
		setup   func(t *testing.T) (JWTService, string)
		wantErr error
	}{
		{
			name: "valid refresh token",
			setup: func(t *testing.T) (JWTService, string) {
				svc := serviceAt(testSecret, testEpoch)
				return svc, mustGenerateRefreshToken(t, svc, userID)
			},
		},
		{
			name: "expired refresh token",
			setup: func(t *testing.T) (JWTService, string) {
				token := mustGenerateRefreshToken(t, serviceAt(testSecret, testEpoch), userID)
				late := serviceAt(testSecret, testEpoch.Add(24*testLifetime+time.Hour))
				return late, token
			},
			wantErr: ErrExpiredRefreshToken,
		},
		{
			name: "access token rejected as refresh token",
			setup: func(t *testing.T) (JWTService, string) {
				svc := serviceAt(testSecret, testEpoch)
				return svc, mustGenerateToken(t, svc, userID)
			},
			wantErr: ErrWrongTokenType,
		},
		{
			name: "malformed refresh token",
			setup: func(t *testing.T) (JWTService, string) {
				return serviceAt(testSecret, testEpoch), "garbage"
			},
			wantErr: ErrInvalidRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setup(t)
			claims, err := svc.ValidateRefreshToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
			assert.Equal(t, "refresh", claims.TokenType)
		})
	}
}

func mustGenerateToken(t *testing.T, svc JWTService, userID uuid.UUID) string {
	t.Helper()
	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	return token
}

func mustGenerateRefreshToken(t *testing.T, svc JWTService, userID uuid.UUID) string {
	t.Helper()
	token, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)
	return token
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(testAuthConfig("tooshort"))
	assert.Error(t, err)
}

func TestNewJWTServiceAcceptsValidConfig(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig("test-jwt-secret-that-is-32-chars-long"))
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
