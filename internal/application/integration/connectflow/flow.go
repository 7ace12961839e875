package connectflow

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/pulse-inc/pulse/internal/shared/logger"
)

const (
	// DefaultPollInterval is how often the popup is checked for being closed.
	DefaultPollInterval = 500 * time.Millisecond

	stateKeyPrefix = "oauth_state:"
)

type Config struct {
	Provider     string
	RedirectURI  string
	PollInterval time.Duration
}

// Flow is a single-use connect attempt. Run or Resume may be called once;
// the flow resolves to exactly one result or error.
type Flow struct {
	cfg        Config
	authorizer Authorizer
	popup      Popup
	exchanger  Exchanger
	session    SessionStorage
	logger     logger.Interface

	mu    sync.Mutex
	state State
	err   error

	// OnTransition, when set, observes every accepted transition.
	OnTransition func(from, to State)
}

func New(cfg Config, authorizer Authorizer, popup Popup, exchanger Exchanger, session SessionStorage, log logger.Interface) *Flow {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if session == nil {
		session = NewMemorySession()
	}
	return &Flow{
		cfg:        cfg,
		authorizer: authorizer,
		popup:      popup,
		exchanger:  exchanger,
		session:    session,
		logger:     log,
		state:      StateIdle,
	}
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the failure cause once the flow is in StateFailed.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Flow) transition(to State) error {
	f.mu.Lock()
	from := f.state
	if !canTransition(from, to) {
		f.mu.Unlock()
		return &TransitionError{From: from, To: to}
	}
	f.state = to
	f.mu.Unlock()

	f.logger.Debugw("connect flow transition", "provider", f.cfg.Provider, "from", from.String(), "to", to.String())
	if f.OnTransition != nil {
		f.OnTransition(from, to)
	}
	return nil
}

func (f *Flow) fail(err error) error {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
	if terr := f.transition(StateFailed); terr != nil {
		return terr
	}
	f.logger.Warnw("connect flow failed", "provider", f.cfg.Provider, "error", err)
	return err
}

func (f *Flow) stateKey() string {
	return stateKeyPrefix + f.cfg.Provider
}

// Run opens the popup and blocks until the flow is connected, failed or ctx ends.
func (f *Flow) Run(ctx context.Context) (*ExchangeResult, error) {
	if err := f.transition(StatePopupOpen); err != nil {
		return nil, err
	}

	authURL, state, err := f.authorizer.Authorize(ctx, f.cfg.RedirectURI)
	if err != nil {
		return nil, f.fail(fmt.Errorf("failed to build authorization url: %w", err))
	}
	f.session.Set(f.stateKey(), state)

	if err := f.popup.Open(ctx, authURL); err != nil {
		f.session.Delete(f.stateKey())
		return nil, f.fail(fmt.Errorf("%w: %v", ErrPopupBlocked, err))
	}
	defer func() { _ = f.popup.Close() }()

	if err := f.transition(StateAwaitingCallback); err != nil {
		return nil, err
	}

	cb, err := f.await(ctx)
	if err != nil {
		f.session.Delete(f.stateKey())
		return nil, f.fail(err)
	}

	return f.handleCallback(ctx, cb)
}

// Resume handles the redirect that lands on the opener itself, reading code,
// state and error from its query string.
func (f *Flow) Resume(ctx context.Context, query url.Values) (*ExchangeResult, error) {
	return f.handleCallback(ctx, Callback{
		Code:  query.Get("code"),
		State: query.Get("state"),
		Error: query.Get("error"),
	})
}

func (f *Flow) await(ctx context.Context) (Callback, error) {
	ticker := time.NewTicker(f.cfg.PollInterval)
	defer ticker.Stop()

	callbacks := f.popup.Callbacks()
	for {
		select {
		case cb, ok := <-callbacks:
			if !ok {
				return Callback{}, ErrCancelled
			}
			return cb, nil
		case <-ticker.C:
			if f.popup.Closed() {
				return Callback{}, ErrCancelled
			}
		case <-ctx.Done():
			return Callback{}, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
	}
}

func (f *Flow) handleCallback(ctx context.Context, cb Callback) (*ExchangeResult, error) {
	expected, ok := f.session.Get(f.stateKey())
	f.session.Delete(f.stateKey())

	if cb.Error != "" {
		return nil, f.fail(fmt.Errorf("%w: %s", ErrProviderDenied, cb.Error))
	}
	if !ok || expected == "" || cb.State != expected {
		return nil, f.fail(ErrStateMismatch)
	}
	if cb.Code == "" {
		return nil, f.fail(ErrMissingCode)
	}

	if err := f.transition(StateExchanging); err != nil {
		return nil, err
	}

	result, err := f.exchanger.Exchange(ctx, cb.Code, cb.State, f.cfg.RedirectURI)
	if err != nil {
		return nil, f.fail(fmt.Errorf("exchange failed: %w", err))
	}

	if err := f.transition(StateConnected); err != nil {
		return nil, err
	}
	f.logger.Infow("connect flow completed", "provider", f.cfg.Provider, "team_id", result.TeamID, "user_id", result.UserID)
	return result, nil
}
