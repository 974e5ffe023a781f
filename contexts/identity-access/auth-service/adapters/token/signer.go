package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"requisite/contexts/identity-access/auth-service/domain/entities"
	"requisite/contexts/identity-access/auth-service/ports"
)

type claims struct {
	Domain   string `json:"domain"`
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 bearer tokens. Tokens carry only the
// (domain, userName) identity and an expiry; no sliding-expiry state is kept
// server-side because every authenticated response carries a fresh token.
type Signer struct {
	secret []byte
	ttl    time.Duration
	clock  ports.Clock
}

func NewSigner(secret string, ttl time.Duration, clock ports.Clock) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl, clock: clock}, nil
}

func (s *Signer) Sign(user entities.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Domain:   user.Domain,
		UserName: user.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// Verify fails closed: any parse, signature, or expiry failure reports no
// identity rather than an error.
func (s *Signer) Verify(raw string) (ports.TokenClaims, bool) {
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return ports.TokenClaims{}, false
	}
	payload, ok := parsed.Claims.(*claims)
	if !ok || payload.Domain == "" || payload.UserName == "" {
		return ports.TokenClaims{}, false
	}
	return ports.TokenClaims{Domain: payload.Domain, UserName: payload.UserName}, true
}

func (s *Signer) now() time.Time {
	if s.clock != nil {
		return s.clock.Now().UTC()
	}
	return time.Now().UTC()
}
