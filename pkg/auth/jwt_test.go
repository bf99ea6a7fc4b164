package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	s, err := NewJWTService(testSecret, 1, "quiz-api")
	require.NoError(t, err)
	return s
}

func TestNewJWTService_ShortSecret(t *testing.T) {
	_, err := NewJWTService("short", 1, "quiz-api")
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := newTestJWTService(t)

	token, issued, err := s.GenerateToken(&entity.User{ID: 42, Username: "alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, issued.ID, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.ExpiresIn(time.Now()).Seconds(), 5)
}

func TestJWTService_UniqueJTI(t *testing.T) {
	s := newTestJWTService(t)
	user := &entity.User{ID: 1, Username: "bob"}

	_, first, err := s.GenerateToken(user)
	require.NoError(t, err)
	_, second, err := s.GenerateToken(user)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestJWTService_Expired(t *testing.T) {
	s := newTestJWTService(t)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := s.GenerateToken(&entity.User{ID: 1, Username: "bob"})
	require.NoError(t, err)

	_, err = newTestJWTService(t).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	other, err := NewJWTService("ffffffffffffffffffffffffffffffff", 1, "quiz-api")
	require.NoError(t, err)
	token, _, err := other.GenerateToken(&entity.User{ID: 1, Username: "bob"})
	require.NoError(t, err)

	_, err = newTestJWTService(t).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_Malformed(t *testing.T) {
	_, err := newTestJWTService(t).ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	claims := &JWTCustomClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ID: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWTService(t).ParseToken(token)
	assert.Error(t, err)
}
