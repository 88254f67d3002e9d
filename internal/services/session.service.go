package services

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// SessionTTL matches the 30-day auth cookie lifetime.
const SessionTTL = 30 * 24 * time.Hour

const sessionKeyPrefix = "session:"

// SessionStore is the KV surface sessions need; the redis adapter
// satisfies it.
type SessionStore interface {
	Set(key string, value []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
	Del(key string) error
}

// SessionService gates the whole API behind one shared secret. There is
// no per-user identity: a correct password or recovery code yields an
// opaque token, and any live token is fully authorized.
type SessionService struct {
	store        SessionStore
	password     string
	recoveryCode string
}

func NewSessionService(store SessionStore, password, recoveryCode string) *SessionService {
	return &SessionService{
		store:        store,
		password:     password,
		recoveryCode: recoveryCode,
	}
}

func (s *SessionService) Login(password string) (string, error) {
	if !secretMatches(s.password, password) {
		return "", ErrInvalidCredentials
	}
	return s.issue()
}

// LoginWithRecoveryCode is the forgot-password path; it issues the same
// kind of session as a password login.
func (s *SessionService) LoginWithRecoveryCode(code string) (string, error) {
	if !secretMatches(s.recoveryCode, code) {
		return "", ErrInvalidCredentials
	}
	return s.issue()
}

func (s *SessionService) Verify(token string) error {
	if token == "" {
		return ErrSessionNotFound
	}
	if _, err := s.store.Get(sessionKeyPrefix + token); err != nil {
		return ErrSessionNotFound
	}
	return nil
}

func (s *SessionService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.store.Del(sessionKeyPrefix + token)
}

func (s *SessionService) issue() (string, error) {
	token := uuid.NewString()
	if err := s.store.Set(sessionKeyPrefix+token, []byte("authenticated"), SessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

// secretMatches accepts the configured secret either as a bcrypt hash or
// as plaintext; plaintext falls back to a constant-time compare.
func secretMatches(configured, presented string) bool {
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(presented)) == 1
}
