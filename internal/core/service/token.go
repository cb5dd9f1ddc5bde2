package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and validates HS256 JWTs. The signing secret is
// process-wide configuration, read-only after startup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token carrying the user id as subject plus a username claim,
// expiring ttl from now.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses and verifies a token. Any decode failure, signature
// mismatch, unexpected signing method, or past expiry yields
// domain.ErrInvalidToken — never a partial identity.
func (s *TokenService) Validate(token string) (ports.Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return ports.Identity{}, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return ports.Identity{}, domain.ErrInvalidToken
	}
	return ports.Identity{UserID: claims.Subject, Username: claims.Username}, nil
}

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
