// Package auth implements the stateless token codec and the password
// hashing capability used by the session issuer.
//
// Tokens are self-contained HS256 JWTs carrying the principal identifier
// as subject plus a kind claim distinguishing short-lived access tokens
// from long-lived refresh tokens. Validity is decided purely from the
// signature and the embedded expiry; the server keeps no token state.
package auth

import (
	"errors"
	"time"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind selects the expiry policy for an issued token.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims includes the registered claims and the token kind.
type Claims struct {
	jwt.RegisteredClaims
	Kind TokenKind `json:"kind"`
}

// Codec issues and verifies signed tokens. It is safe for concurrent use:
// all fields are read-only after construction.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewCodec constructs a Codec around the server signing secret and the
// per-kind validity durations.
func NewCodec(secret []byte, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (c *Codec) ttl(kind TokenKind) time.Duration {
	if kind == TokenKindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue signs a token for the given subject with the lifetime selected by
// kind. The result is a compact, URL-safe JWS string.
func (c *Codec) Issue(subject string, kind TokenKind) (string, error) {
	if subject == "" {
		return "", common.ErrorValidation
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl(kind))),
		},
		Kind: kind,
	})

	return token.SignedString(c.secret)
}

// Verify validates the signature and expiry of tokenString and checks that
// it was issued with the expected kind. On success it returns the subject.
// Failures map to common.ErrTokenExpired for expired tokens and
// common.ErrInvalidToken for everything else (bad signature, malformed
// structure, wrong algorithm, kind mismatch).
func (c *Codec) Verify(tokenString string, kind TokenKind) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Kind != kind || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
