// Package services contains the application services of the blog client.
// This file defines the session manager: register, login, logout, loading
// the current user and keeping the persisted token and the API client's
// default authorization in step with the in-memory session.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/api"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// User-facing session messages.
const (
	MsgSessionExpired = "Session expired. Please login again."
	MsgTokenMissing   = "Login succeeded but token missing"
	MsgLoginFailed    = "Login failed"
	MsgRegisterFailed = "Registration failed"
	MsgLoadUserFailed = "Failed to load user"
)

// ErrTokenMissing is returned by Login when the response has no token.
var ErrTokenMissing = errors.New("login response carried no token")

// SessionAPI is the part of the backend the session manager talks to.
type SessionAPI interface {
	SetAuthToken(token string)
	OnUnauthorized(fn func())
	Register(ctx context.Context, r models.Registration) error
	Login(ctx context.Context, c models.Credentials) (*models.LoginResponse, error)
	Me(ctx context.Context) (*models.MeResponse, error)
}

// SessionManager owns the process-wide Session.
//
// Invariants:
//   - User is nil whenever Token is empty.
//   - The API client's default token always equals Session.Token; it is
//     updated before any user fetch that depends on it.
//   - A 401 on any authenticated call ends the session as Logout does and
//     sets MsgSessionExpired.
//
// Methods are safe for concurrent use. No network call is made while the
// internal lock is held.
type SessionManager struct {
	api    SessionAPI
	db     *sql.DB
	logger logging.Logger

	mu      sync.Mutex
	state   models.Session
	subs    map[int]func(models.Session)
	nextSub int
}

// NewSessionManager wires the manager to client and the local store, and
// subscribes to the client's unauthorized hook.
func NewSessionManager(client SessionAPI, db *sql.DB, logger logging.Logger) *SessionManager {
	m := &SessionManager{
		api:    client,
		db:     db,
		logger: logger,
		subs:   make(map[int]func(models.Session)),
	}
	client.OnUnauthorized(m.expire)
	return m
}

// Init restores a persisted token, installs it as the default authorization
// and loads its user. Load failures end up in Session.Error, not in the
// returned error, which reports storage problems only.
func (m *SessionManager) Init(ctx context.Context) error {
	token, err := metadata.NewSQLiteRepository(m.db).Get(ctx, common.TokenKey)
	if err != nil {
		return fmt.Errorf("read persisted token: %w", err)
	}

	m.update(func(s *models.Session) {
		s.Token = string(token)
		s.User = nil
		m.api.SetAuthToken(s.Token)
	})

	if len(token) > 0 {
		m.logger.Debug(ctx, "restored session token")
		m.LoadUser(ctx)
	}
	return nil
}

// Register creates an account without logging in.
func (m *SessionManager) Register(ctx context.Context, r models.Registration) error {
	m.update(func(s *models.Session) {
		s.Loading = true
		s.Error = ""
	})

	err := m.api.Register(ctx, r)

	m.update(func(s *models.Session) {
		s.Loading = false
		if err != nil {
			s.Error = api.Message(err, MsgRegisterFailed)
		}
	})

	if err != nil {
		m.logger.Warn(ctx, "registration failed", "email", r.Email, "error", err)
		return err
	}
	m.logger.Info(ctx, "registered", "email", r.Email)
	return nil
}

// Login exchanges credentials for a token. On success the token is persisted
// together with the e-mail (for prefilling the next login), installed as the
// default authorization and the returned user is stored. If the token
// differs from the previous one the user is then reloaded.
//
// A success response without a token leaves the session untouched apart
// from Error and writes nothing to the store.
func (m *SessionManager) Login(ctx context.Context, c models.Credentials) error {
	m.update(func(s *models.Session) {
		s.Loading = true
		s.Error = ""
	})
	defer m.update(func(s *models.Session) { s.Loading = false })

	resp, err := m.api.Login(ctx, c)
	if err != nil {
		m.logger.Warn(ctx, "login failed", "email", c.Email, "error", err)
		m.update(func(s *models.Session) { s.Error = api.Message(err, MsgLoginFailed) })
		return err
	}

	if resp == nil || resp.Token == "" {
		m.logger.Warn(ctx, "login response without token", "email", c.Email)
		m.update(func(s *models.Session) { s.Error = MsgTokenMissing })
		return ErrTokenMissing
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(resp.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.LastEmailKey, []byte(c.Email))
	})
	if err != nil {
		m.update(func(s *models.Session) { s.Error = MsgLoginFailed })
		return fmt.Errorf("persist token: %w", err)
	}

	changed := false
	m.update(func(s *models.Session) {
		changed = s.Token != resp.Token
		s.Token = resp.Token
		m.api.SetAuthToken(s.Token)
		s.User = resp.User
	})

	m.logger.Info(ctx, "logged in", "email", c.Email)

	if changed {
		m.LoadUser(ctx)
	}
	return nil
}

// Logout clears the session and the persisted token. It never touches the
// network.
func (m *SessionManager) Logout(ctx context.Context) error {
	return m.endSession(ctx, "")
}

// LoadUser refreshes Session.User from GET /api/auth/me. Without a token it
// just clears the user. A 401 ends the session with MsgSessionExpired; any
// other failure clears the user and records the server message.
func (m *SessionManager) LoadUser(ctx context.Context) {
	if m.Token() == "" {
		m.update(func(s *models.Session) { s.User = nil })
		return
	}

	resp, err := m.api.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			// the client's hook may already have ended the session
			if m.Token() != "" {
				m.expire()
			}
			return
		}
		m.logger.Warn(ctx, "loading user failed", "error", err)
		m.update(func(s *models.Session) {
			s.User = nil
			s.Error = api.Message(err, MsgLoadUserFailed)
		})
		return
	}

	m.update(func(s *models.Session) {
		if s.Token == "" {
			return
		}
		s.User = resp.User
		s.Error = ""
	})
}

// LastEmail returns the e-mail of the last successful login, if any.
func (m *SessionManager) LastEmail(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(m.db).Get(ctx, common.LastEmailKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// State returns a snapshot of the session.
func (m *SessionManager) State() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Token returns the current bearer token or "".
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Token
}

// TokenExpiry reads the exp claim of the current token without verifying
// its signature; the backend remains the authority. ok is false when there
// is no token, it is not a JWT or it has no expiry.
func (m *SessionManager) TokenExpiry() (exp time.Time, ok bool) {
	token := m.Token()
	if token == "" {
		return time.Time{}, false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	at, err := parsed.Claims.GetExpirationTime()
	if err != nil || at == nil {
		return time.Time{}, false
	}
	return at.Time, true
}

// Subscribe registers fn to receive a snapshot after every session change.
// fn runs synchronously on the goroutine that made the change and must not
// call back into the manager's mutating methods. The returned func removes
// the subscription.
func (m *SessionManager) Subscribe(fn func(models.Session)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// expire is the reaction to a 401 on an authenticated call.
func (m *SessionManager) expire() {
	ctx := context.Background()
	m.logger.Warn(ctx, "session expired")
	if err := m.endSession(ctx, MsgSessionExpired); err != nil {
		m.logger.Error(ctx, "clearing expired session failed", "error", err)
	}
}

func (m *SessionManager) endSession(ctx context.Context, message string) error {
	m.update(func(s *models.Session) {
		s.Token = ""
		s.User = nil
		s.Error = message
		m.api.SetAuthToken("")
	})

	if err := metadata.NewSQLiteRepository(m.db).Delete(ctx, common.TokenKey); err != nil {
		return fmt.Errorf("remove persisted token: %w", err)
	}
	return nil
}

// update applies fn under the lock and then notifies subscribers outside it.
func (m *SessionManager) update(fn func(s *models.Session)) {
	m.mu.Lock()
	fn(&m.state)
	if m.state.Token == "" {
		m.state.User = nil
	}
	snap := m.snapshot()
	subs := make([]func(models.Session), 0, len(m.subs))
	for _, sub := range m.subs {
		subs = append(subs, sub)
	}
	m.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (m *SessionManager) snapshot() models.Session {
	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
