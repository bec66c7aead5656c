package session

import (
	"errors"
	"fmt"
	"stay/config"
	"stay/shared/timezone"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token has expired")
	ErrInvalidClaim = errors.New("invalid session token claim")
)

// Claims carries the guest session identity. A session scopes the booking
// drafts and the pending-reservation marker of one anonymous guest; it is
// not an account login.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Token pairs a signed session token with its session ID and lifetime.
type Token struct {
	SessionID string `json:"session_id"`
	Signed    string `json:"signed"`
	ExpiresIn int64  `json:"expires_in"`
}

// Sessions issues and validates guest session tokens.
type Sessions interface {
	Issue() (*Token, error)
	Validate(tokenString string) (*Claims, error)
}

type sessionsImpl struct {
	cfg *config.Config
}

func New(cfg *config.Config) Sessions {
	return &sessionsImpl{
		cfg: cfg,
	}
}

func (s *sessionsImpl) Issue() (*Token, error) {
	now := timezone.Now()
	expiry := now.Add(time.Duration(s.cfg.Session.ExpireMinutes) * time.Minute)
	sessionID := uuid.NewString()

	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.Session.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &Token{
		SessionID: sessionID,
		Signed:    signed,
		ExpiresIn: int64(expiry.Sub(now).Seconds()),
	}, nil
}

func (s *sessionsImpl) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.cfg.Session.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.SessionID == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}
