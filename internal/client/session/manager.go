package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/client"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/storage"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/token"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/logging"
)

type Manager struct {
	store     storage.Store
	api       AuthAPI
	nav       Navigator
	log       logging.Logger
	now       func() time.Time
	sched     Scheduler
	loginPath string

	mu      sync.Mutex
	state   State
	user    *models.Profile
	token   string
	loading bool
	timer   Timer
	// gen is bumped whenever the timer is cancelled; a firing timer only
	// acts if its captured generation is still current.
	gen uint64
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l.With("component", "session") }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithScheduler(s Scheduler) Option {
	return func(m *Manager) { m.sched = s }
}

func WithLoginPath(p string) Option {
	return func(m *Manager) {
		if p != "" {
			m.loginPath = p
		}
	}
}

// New returns a manager in the Uninitialized state. nav may be nil, in which
// case forced logouts do not navigate.
func New(store storage.Store, api AuthAPI, nav Navigator, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		api:       api,
		nav:       nav,
		log:       logging.Discard(),
		now:       time.Now,
		sched:     wallScheduler{},
		loginPath: DefaultLoginPath,
		state:     StateUninitialized,
		loading:   true,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Hydrate restores the persisted session. The session is kept only if both
// the token and the profile are stored, the profile decodes and the token is
// valid now; otherwise both keys are removed and the manager is Anonymous.
func (m *Manager) Hydrate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateHydrating
	m.loading = true

	tok := m.read(ctx, TokenKey)
	rawUser := m.read(ctx, UserKey)

	var user *models.Profile
	if tok != "" && rawUser != "" {
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			m.log.Warn(ctx, "stored profile unreadable", "err", err)
			user = nil
		}
	}

	if user == nil || !token.Valid(tok, m.now()) {
		m.clearLocked(ctx)
		m.loading = false
		m.log.Debug(ctx, "hydrated anonymous session")
		return
	}

	m.token = tok
	m.user = user
	m.state = StateAuthenticated
	m.loading = false
	if !m.armLocked(ctx, tok) {
		m.clearLocked(ctx)
		return
	}
	m.log.Debug(ctx, "hydrated session", "user", user.ID)
}

func (m *Manager) read(ctx context.Context, key string) string {
	v, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.log.Warn(ctx, "session storage read failed", "key", key, "err", err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// Login authenticates against the API. On failure the returned error is a
// *Failure whose Message is the API's message or a generic one.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return m.failure(ctx, "login", err, defaultLoginMessage, false)
	}
	return m.establish(ctx, resp, defaultLoginMessage)
}

// Register creates an account and signs it in. The failure message prefers
// the API's message, then its first field error, then a generic one.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) error {
	resp, err := m.api.Register(ctx, req)
	if err != nil {
		return m.failure(ctx, "register", err, defaultRegisterMessage, true)
	}
	return m.establish(ctx, resp, defaultRegisterMessage)
}

func (m *Manager) failure(ctx context.Context, op string, err error, fallback string, useFieldErrors bool) error {
	msg := fallback

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Message != "":
			msg = apiErr.Message
		case useFieldErrors && apiErr.FirstFieldMessage() != "":
			msg = apiErr.FirstFieldMessage()
		}
	}

	m.log.Info(ctx, op+" failed", "err", err)
	return &Failure{Message: msg, Err: err}
}

func (m *Manager) establish(ctx context.Context, resp *models.AuthResponse, fallback string) error {
	if resp == nil || resp.Token == "" {
		return &Failure{Message: fallback, Err: errors.New("auth response without token")}
	}

	user := resp.User

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, TokenKey, resp.Token); err != nil {
		m.log.Error(ctx, "persist token failed", "err", err)
	}
	if raw, err := json.Marshal(user); err != nil {
		m.log.Error(ctx, "encode profile failed", "err", err)
	} else if err := m.store.Set(ctx, UserKey, string(raw)); err != nil {
		m.log.Error(ctx, "persist profile failed", "err", err)
	}

	m.token = resp.Token
	m.user = &user
	m.state = StateAuthenticated
	m.loading = false

	if !m.armLocked(ctx, resp.Token) {
		m.log.Warn(ctx, "token already expired or without expiry, logging out")
		m.clearLocked(ctx)
	}
	return nil
}

// Logout clears the session. With redirect set the Navigator is sent to the
// login path.
func (m *Manager) Logout(ctx context.Context, redirect bool) {
	m.mu.Lock()
	m.clearLocked(ctx)
	m.mu.Unlock()

	if redirect {
		m.redirect()
	}
}

// Close cancels the expiry timer. The session itself is left in storage.
func (m *Manager) Close() {
	m.mu.Lock()
	m.cancelTimerLocked()
	m.mu.Unlock()
}

func (m *Manager) redirect() {
	if m.nav != nil {
		m.nav.RedirectTo(m.loginPath)
	}
}

// armLocked replaces any outstanding timer with one for tok. It returns false
// when tok has no usable exp or has already expired; no timer is armed then.
func (m *Manager) armLocked(ctx context.Context, tok string) bool {
	m.cancelTimerLocked()

	claims, ok := token.Decode(tok)
	if !ok {
		return false
	}
	exp, ok := claims.ExpiresAt()
	if !ok {
		return false
	}

	// Sub saturates instead of overflowing for far-future exp.
	d := exp.Sub(m.now().Truncate(time.Millisecond))
	if d <= 0 {
		return false
	}

	gen := m.gen
	m.timer = m.sched.AfterFunc(d, func() { m.expire(gen) })
	m.log.Debug(ctx, "expiry timer armed", "in", d)
	return true
}

func (m *Manager) cancelTimerLocked() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) expire(gen uint64) {
	ctx := context.Background()

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.clearLocked(ctx)
	m.mu.Unlock()

	m.log.Info(ctx, "session expired")
	m.redirect()
}

func (m *Manager) clearLocked(ctx context.Context) {
	m.cancelTimerLocked()

	if err := m.store.Remove(ctx, TokenKey, UserKey); err != nil {
		m.log.Error(ctx, "clear session storage failed", "err", err)
	}

	m.token = ""
	m.user = nil
	m.state = StateAnonymous
}

// User returns a copy of the current profile, or nil.
func (m *Manager) User() *models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyProfile(m.user)
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Loading is true until Hydrate has finished.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:         m.state,
		User:          copyProfile(m.user),
		Token:         m.token,
		Loading:       m.loading,
		Authenticated: m.token != "",
	}
}

func copyProfile(p *models.Profile) *models.Profile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
