package auth

import (
	"campus-chat/errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Generate("alice")
	req.NoError(err)

	userID, err := issuer.Validate(token)
	req.NoError(err)
	req.Equal("alice", userID)
}

func TestToken_Rejections(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("secret", time.Hour)

	// Given a token signed with another secret
	foreign, err := NewTokenIssuer("other", time.Hour).Generate("alice")
	req.NoError(err)

	// Given an expired token
	expiredIssuer := NewTokenIssuer("secret", time.Minute)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredIssuer.Generate("alice")
	req.NoError(err)

	// Given an unsigned token
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "alice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	req.NoError(err)

	for name, token := range map[string]string{
		"foreign secret": foreign,
		"expired":        expired,
		"none algorithm": none,
		"garbage":        "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Validate(token)
			require.ErrorIs(t, err, errors.ErrInvalidToken)
			require.ErrorIs(t, err, errors.ErrForbidden)
		})
	}
}
