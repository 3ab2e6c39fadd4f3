package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
	"github.com/fitlife-app/fitlife/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fitlife-session||"
	tokensSetKey     = "fitlife-sessions"
)

// Session binds a locally minted token to the remote API credentials it
// stands for.
type Session struct {
	UserID    string `json:"user_id"`
	APIToken  string `json:"api_token"`
	CreatedAt int64  `json:"created_at"`
}

// accountClient is the slice of the remote API needed for sign-in and
// sign-up.
type accountClient interface {
	SignIn(ctx context.Context, email, password string) (*fitlifeapi.Session, error)
	SignUp(ctx context.Context, email, password, name string) (*fitlifeapi.Session, error)
}

type Service struct {
	api         accountClient
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(
	api accountClient,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		api:            api,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login verifies the credentials against the remote API and, on
// success, mints a local session token mapped to the remote bearer
// token.
func (as *Service) Login(ctx context.Context, email, password string, createdAt time.Time) (string, error) {
	remoteSession, err := as.api.SignIn(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("remote sign in: %w", err)
	}
	return as.storeSession(ctx, remoteSession, createdAt)
}

// Register creates the account remotely and opens a session for it.
func (as *Service) Register(ctx context.Context, email, password, name string, createdAt time.Time) (string, error) {
	remoteSession, err := as.api.SignUp(ctx, email, password, name)
	if err != nil {
		return "", fmt.Errorf("remote sign up: %w", err)
	}
	return as.storeSession(ctx, remoteSession, createdAt)
}

func (as *Service) storeSession(ctx context.Context, remoteSession *fitlifeapi.Session, createdAt time.Time) (string, error) {
	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	session := Session{
		UserID:    remoteSession.UserID,
		APIToken:  remoteSession.Token,
		CreatedAt: createdAt.Unix(),
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	if err := as.redisClient.Set(ctx, sessionKey, payload, 0).Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	if err := as.redisClient.Get(ctx, sessionKey).Err(); err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	if err := as.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return false, err
	}

	// remove token from the list of sessions
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return true, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Warnln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Warnf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		sessionKey := sessionKeyPrefix + token
		cmd := as.redisClient.Get(ctx, sessionKey)
		if err := cmd.Err(); err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		var session Session
		if err := json.Unmarshal([]byte(cmd.Val()), &session); err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			toRemove = append(toRemove, token)
			continue
		}

		createdAt := time.Unix(session.CreatedAt, 0)
		if time.Since(createdAt) > as.ttl {
			log.Warnf("=>\twill clean the session with token: %s", token)
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		sessionKey := sessionKeyPrefix + token
		if err := as.redisClient.Del(ctx, sessionKey).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}

		// remove token from the list of sessions
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
	}
}
