package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is the fixed lifetime of an issued credential.
	SessionDuration  = time.Hour
	sessionKeyPrefix = "session:"
)

// Sessions issues and validates opaque bearer tokens backed by Redis.
type Sessions struct {
	client *redis.Client
}

func NewSessions(client *redis.Client) *Sessions {
	return &Sessions{client: client}
}

// Create issues a new token bound to the user, valid for SessionDuration.
func (s *Sessions) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.client.Set(ctx, sessionKeyPrefix+token, userID.String(), SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a token to its user id. A missing or expired token is
// not an error, just invalid.
func (s *Sessions) Validate(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}
	userIDStr, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false, err
	}
	return userID, true, nil
}
