package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
)

const magicLinkPurpose = "magic_link"

var (
	ErrInvalidLink = httperr.ErrBusinessMsg("invalid_link", "This sign-in link is invalid or has expired.")
	ErrLinkUsed    = httperr.ErrBusinessMsg("link_already_used", "This sign-in link has already been used.")
)

// NonceStore remembers consumed link ids until they would have expired anyway.
type NonceStore interface {
	// Consume reports true the first time nonce is seen.
	Consume(ctx context.Context, nonce string, ttl time.Duration) (bool, error)
}

type RedisNonceStore struct {
	client *redis.Client
}

func NewRedisNonceStore(client *redis.Client) *RedisNonceStore {
	return &RedisNonceStore{client: client}
}

func (s *RedisNonceStore) Consume(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, "magiclink:"+nonce, 1, ttl).Result()
}

type MemoryNonceStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

func NewMemoryNonceStore() *MemoryNonceStore {
	return &MemoryNonceStore{seen: map[string]time.Time{}, now: time.Now}
}

func (s *MemoryNonceStore) Consume(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.seen {
		if now.After(exp) {
			delete(s.seen, k)
		}
	}

	if _, ok := s.seen[nonce]; ok {
		return false, nil
	}
	s.seen[nonce] = now.Add(ttl)
	return true, nil
}

type magicClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// MagicLinks issues and redeems single-use HS256 sign-in tokens.
type MagicLinks struct {
	secret []byte
	ttl    time.Duration
	nonces NonceStore
	now    func() time.Time
}

func NewMagicLinks(secret string, ttl time.Duration, nonces NonceStore) *MagicLinks {
	return &MagicLinks{
		secret: []byte(secret),
		ttl:    ttl,
		nonces: nonces,
		now:    time.Now,
	}
}

func (m *MagicLinks) Issue(email string) (string, error) {
	now := m.now()
	claims := magicClaims{
		Purpose: magicLinkPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Redeem validates the token and burns it. It returns the email it was issued for.
func (m *MagicLinks) Redeem(ctx context.Context, tokenString string) (string, error) {
	var claims magicClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidLink
	}
	if claims.Purpose != magicLinkPurpose || claims.Subject == "" || claims.ID == "" {
		return "", ErrInvalidLink
	}

	remaining := claims.ExpiresAt.Time.Sub(m.now())
	if remaining < time.Second {
		remaining = time.Second
	}

	first, err := m.nonces.Consume(ctx, claims.ID, remaining)
	if err != nil {
		return "", err
	}
	if !first {
		return "", ErrLinkUsed
	}
	return claims.Subject, nil
}

// IsLinkError reports whether err is a rejected link rather than an outage.
func IsLinkError(err error) bool {
	return errors.Is(err, ErrInvalidLink) || errors.Is(err, ErrLinkUsed)
}
