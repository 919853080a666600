package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avelasqz/library-management/internal"
)

// TokenIssuer signs and parses access tokens. Secret and default TTL come
// from the security config at construction; there is no package-level state.
type TokenIssuer struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewTokenIssuer(cfg internal.SecurityConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(cfg.JWTSecret),
		defaultTTL: cfg.AccessTokenTTL,
	}
}

func (t *TokenIssuer) DefaultTTL() time.Duration {
	return t.defaultTTL
}

// IssueToken signs a token for subject with an absolute expiry of now+ttl.
// A zero ttl falls back to the configured default. Negative ttl produces an
// already-expired token, which ParseToken will reject.
func (t *TokenIssuer) IssueToken(subject string, scopes []string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = t.defaultTTL
	}

	claims := Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ParseToken verifies signature and expiry, then checks the claim shape.
// Bad signature, malformed payload, or an expired token all surface as
// ErrInvalidToken; a structurally valid token whose claims are missing the
// subject surfaces as ErrInvalidCredentials.
func (t *TokenIssuer) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, internal.ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, internal.ErrInvalidCredentials
	}

	return claims, nil
}
