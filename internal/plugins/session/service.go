package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arlden/adpanel/internal/apperror"
	"github.com/arlden/adpanel/internal/gateway"
)

// sessionKeyPrefix is the Redis key prefix for session data.
const sessionKeyPrefix = "session:"

// sessionTokenBytes is the number of random bytes in a browser session
// token. 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
// This token is local to the panel; it is not the remote bearer token.
const sessionTokenBytes = 32

// Service defines the session guard contract. Handlers call these methods;
// they never touch Redis or the gateway's auth operations directly.
type Service interface {
	// Login authenticates against the remote auth service and, on success,
	// creates a browser session holding the issued bearer token. Returns
	// the browser session token for the cookie.
	Login(ctx context.Context, creds gateway.Credentials) (string, error)

	// Validate looks up a browser session token and returns the session
	// data if it exists and hasn't expired.
	Validate(ctx context.Context, token string) (*Session, error)

	// Logout invalidates the remote token (best-effort) and removes the
	// browser session. The local session is always cleared, even when the
	// remote invalidation fails.
	Logout(ctx context.Context, token string) error
}

// service implements Service with Redis-backed sessions.
type service struct {
	gw         gateway.Client
	redis      *redis.Client
	sessionTTL time.Duration
}

// NewService creates a session service with the given dependencies.
func NewService(gw gateway.Client, rdb *redis.Client, sessionTTL time.Duration) Service {
	return &service{
		gw:         gw,
		redis:      rdb,
		sessionTTL: sessionTTL,
	}
}

func (s *service) Login(ctx context.Context, creds gateway.Credentials) (string, error) {
	remoteToken, err := s.gw.Login(ctx, creds)
	if err != nil {
		// Surface the gateway's error as-is; the handler renders it.
		return "", err
	}

	session := Session{
		RemoteToken: remoteToken,
		Email:       creds.Email,
		CreatedAt:   time.Now().UTC(),
	}

	// Fetch the display name. Non-critical: login succeeds without it.
	if profile, err := s.gw.FetchProfile(gateway.WithToken(ctx, remoteToken)); err == nil {
		session.Name = profile.Name
	} else {
		slog.Warn("failed to fetch profile after login",
			slog.String("email", creds.Email),
			slog.Any("error", err),
		)
	}

	token, err := s.store(ctx, session)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("creating session: %w", err))
	}

	slog.Info("user logged in", slog.String("email", creds.Email))
	return token, nil
}

func (s *service) Validate(ctx context.Context, token string) (*Session, error) {
	data, err := s.redis.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, apperror.NewUnauthorized("session expired or invalid")
	}
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reading session from Redis: %w", err))
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("unmarshaling session: %w", err))
	}
	return &session, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	// Best-effort remote invalidation. The local session is removed no
	// matter what the remote service says.
	if session, err := s.Validate(ctx, token); err == nil {
		if err := s.gw.Logout(gateway.WithToken(ctx, session.RemoteToken)); err != nil {
			slog.Warn("remote logout failed", slog.Any("error", err))
		}
	}

	if err := s.redis.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting session from Redis: %w", err))
	}
	return nil
}

// store generates a random session token and writes the session to Redis
// with the configured TTL.
func (s *service) store(ctx context.Context, session Session) (string, error) {
	token, err := generateSessionToken()
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("marshaling session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKeyPrefix+token, data, s.sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("storing session in Redis: %w", err)
	}
	return token, nil
}

// generateSessionToken creates a cryptographically random hex-encoded token.
func generateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
