package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpass/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret, 24*time.Hour)

	token, err := issuer.Issue("station-1", domain.RoleAssistant)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "station-1", claims.Subject)
	assert.Equal(t, "Asistente", claims.Role)

	_, err = issuer.Issue("x", domain.Role("root"))
	assert.Error(t, err)
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"
	valid, err := NewJWTIssuer(secret, time.Hour).Issue("u-1", domain.RoleTeacher)
	require.NoError(t, err)

	expiredIssuer := NewJWTIssuer(secret, time.Hour).(*jwtIssuer)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue("u-1", domain.RoleTeacher)
	require.NoError(t, err)

	otherSecret, err := NewJWTIssuer("other", time.Hour).Issue("u-1", domain.RoleTeacher)
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "root",
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    *domain.Session
		wantErr bool
	}{
		{name: "valid", token: valid, want: &domain.Session{UserID: "u-1", Role: domain.RoleTeacher}},
		{name: "expired", token: expired, wantErr: true},
		{name: "wrong secret", token: otherSecret, wantErr: true},
		{name: "unknown role", token: badRole, wantErr: true},
		{name: "garbage", token: "not-a-jwt", wantErr: true},
	}
	verifier := NewJWTVerifier(secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := verifier.Verify(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
