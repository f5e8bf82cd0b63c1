package broker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leadkit/igbroker/instagram"
	"github.com/leadkit/igbroker/pkg/logger"
)

// Config holds the broker's environment-driven settings.
type Config struct {
	StateDir       string        `env:"IG_STATE_DIR" envDefault:"storage/ig_state"`
	Proxy          string        `env:"IG_PROXY"`
	RequestTimeout time.Duration `env:"IG_REQUEST_TIMEOUT" envDefault:"20s"`
}

// pendingTwoFactor tracks an interrupted login awaiting a 2FA code.
type pendingTwoFactor struct {
	Username   string
	Password   string
	Identifier string
	Methods    []string
}

// pendingChallengeInfo tracks an interrupted login awaiting challenge
// resolution. Password is empty when the challenge surfaced outside login.
type pendingChallengeInfo struct {
	Username string
	Password string
}

// Service brokers authenticated platform sessions for accounts. Callers are
// expected to serialize operations per account; the service only guards its
// own bookkeeping.
type Service struct {
	log      *slog.Logger
	registry *Registry
	store    *FileStore

	mu               sync.Mutex
	pending2FA       map[string]pendingTwoFactor
	pendingChallenge map[string]pendingChallengeInfo

	// Injection points for tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSleep replaces the pacing sleep used between mass sends and
// pagination pages.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Service) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// WithClock replaces the wall clock used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a broker backed by the given registry and store.
func NewService(registry *Registry, store *FileStore, opts ...Option) *Service {
	s := &Service{
		log:              logger.NewNoop(),
		registry:         registry,
		store:            store,
		pending2FA:       make(map[string]pendingTwoFactor),
		pendingChallenge: make(map[string]pendingChallengeInfo),
		sleep:            time.Sleep,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clients reports how many accounts hold a live client, for health output.
func (s *Service) Clients() int {
	return s.registry.Len()
}

// saveSession snapshots the client's current settings to disk. Persistence
// failures are logged, not surfaced: a live session must not fail because
// the snapshot could not be written.
func (s *Service) saveSession(ctx context.Context, accountID, username string, cl instagram.Client) {
	settings, err := cl.Settings()
	if err != nil {
		s.log.ErrorContext(ctx, "failed to export session settings",
			logger.AccountID(accountID), logger.Error(err))
		return
	}
	rec := Record{Username: username, Session: settings, SavedAt: s.now()}
	if err := s.store.Save(accountID, rec); err != nil {
		s.log.ErrorContext(ctx, "failed to persist session record",
			logger.AccountID(accountID), logger.Error(err))
	}
}

func (s *Service) setPending2FA(accountID string, p pendingTwoFactor) {
	s.mu.Lock()
	s.pending2FA[accountID] = p
	s.mu.Unlock()
}

func (s *Service) takePending2FA(accountID string) (pendingTwoFactor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending2FA[accountID]
	return p, ok
}

func (s *Service) clearPending2FA(accountID string) {
	s.mu.Lock()
	delete(s.pending2FA, accountID)
	s.mu.Unlock()
}

func (s *Service) setPendingChallenge(accountID string, p pendingChallengeInfo) {
	s.mu.Lock()
	s.pendingChallenge[accountID] = p
	s.mu.Unlock()
}

func (s *Service) getPendingChallenge(accountID string) (pendingChallengeInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pendingChallenge[accountID]
	return p, ok
}

func (s *Service) clearPendingChallenge(accountID string) {
	s.mu.Lock()
	delete(s.pendingChallenge, accountID)
	s.mu.Unlock()
}

// client returns the live client for accountID or ErrNotConnected.
func (s *Service) client(accountID string) (instagram.Client, error) {
	cl, ok := s.registry.Get(accountID)
	if !ok {
		return nil, ErrNotConnected
	}
	return cl, nil
}
