// Package plaidlink is the state machine behind the bank linking widget.
//
// Linking a bank runs through an external Link session: the widget fetches
// a short-lived link token, waits until the external opener is ready, opens
// the session, and exchanges the resulting public token for a persisted
// connection on the backend.
package plaidlink

import (
	"context"
	"sync"

	"github.com/account-manager/backend/internal/client"
	"github.com/rs/zerolog/log"
)

// API is the part of the backend API the widget consumes.
type API interface {
	PlaidStatus(ctx context.Context) (client.PlaidStatus, error)
	LinkToken(ctx context.Context) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (client.ExchangeResult, error)
	SyncPlaid(ctx context.Context) (client.SyncResult, error)
}

// State is the linking state of the widget. The tagged states rule out
// illegal combinations such as exchanging and syncing at the same time.
type State string

const (
	// StateDisabled means the backend has no Plaid credentials. The
	// widget stays disabled until it is recreated.
	StateDisabled State = "disabled"

	StateIdle              State = "idle"
	StateAwaitingLinkToken State = "awaiting-link-token"
	StateLinkOpen          State = "link-open"
	StateExchanging        State = "exchanging"
	StateSyncing           State = "syncing"
)

// Widget drives one bank linking control.
//
// open is called with the link token once both the token has arrived and
// the external opener reported ready, in whichever order that happens.
// onSuccess is called after a completed exchange and after every finished
// sync, and is expected to trigger the dashboard reload.
type Widget struct {
	api       API
	open      func(linkToken string)
	onSuccess func()

	mu          sync.Mutex
	state       State
	openerReady bool
	linkToken   string
}

func New(api API, open func(linkToken string), onSuccess func()) *Widget {
	return &Widget{
		api:       api,
		open:      open,
		onSuccess: onSuccess,
		state:     StateDisabled,
	}
}

// Init queries the backend for the Plaid feature flag. Without it, the
// widget stays disabled and ignores all further input.
func (w *Widget) Init(ctx context.Context) error {
	status, err := w.api.PlaidStatus(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if status.Enabled {
		w.state = StateIdle
	}

	return nil
}

// State returns the current state of the widget.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Link starts a linking session by fetching a link token. The session
// opens once the external opener is ready as well. Anywhere but in the
// idle state, Link does nothing.
func (w *Widget) Link(ctx context.Context) {
	w.mu.Lock()
	if w.state != StateIdle {
		w.mu.Unlock()
		return
	}
	w.state = StateAwaitingLinkToken
	w.mu.Unlock()

	token, err := w.api.LinkToken(ctx)

	w.mu.Lock()
	if err != nil {
		log.Error().Err(err).Msg("fetching link token failed")
		w.state = StateIdle
		w.mu.Unlock()
		return
	}

	w.linkToken = token
	w.maybeOpenLocked()
	w.mu.Unlock()
}

// SetOpenerReady signals that the external opener can open a session.
// Readiness and the link token arrive independently, the session opens
// when the later of the two lands.
func (w *Widget) SetOpenerReady() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.openerReady = true
	w.maybeOpenLocked()
}

// maybeOpenLocked opens the linking session once both preconditions hold.
// Callers must hold the mutex.
func (w *Widget) maybeOpenLocked() {
	if w.state != StateAwaitingLinkToken || w.linkToken == "" || !w.openerReady {
		return
	}

	w.state = StateLinkOpen
	w.open(w.linkToken)
}

// HandleLinkSuccess exchanges the public token of a completed session for
// a persisted connection. The held link token is cleared so the session
// cannot reopen. On success, the parent's success callback runs. Failures
// are logged, not surfaced.
func (w *Widget) HandleLinkSuccess(ctx context.Context, publicToken string) {
	w.mu.Lock()
	if w.state != StateLinkOpen {
		w.mu.Unlock()
		return
	}
	w.state = StateExchanging
	w.linkToken = ""
	w.mu.Unlock()

	_, err := w.api.ExchangePublicToken(ctx, publicToken)

	w.mu.Lock()
	w.state = StateIdle
	w.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Msg("exchanging public token failed")
		return
	}

	w.onSuccess()
}

// HandleLinkExit handles the user leaving the linking session without
// completing it. The held token is cleared without exchanging.
func (w *Widget) HandleLinkExit() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateLinkOpen && w.state != StateAwaitingLinkToken {
		return
	}

	w.linkToken = ""
	w.state = StateIdle
}

// Sync re-pulls the balances of all linked connections. The success
// callback runs even when single connections reported errors, those are
// logged only. Anywhere but in the idle state, Sync does nothing.
func (w *Widget) Sync(ctx context.Context) {
	w.mu.Lock()
	if w.state != StateIdle {
		w.mu.Unlock()
		return
	}
	w.state = StateSyncing
	w.mu.Unlock()

	result, err := w.api.SyncPlaid(ctx)

	w.mu.Lock()
	w.state = StateIdle
	w.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Msg("sync failed")
		return
	}

	for _, syncError := range result.Errors {
		log.Error().Str("item-id", syncError.ItemID).Str("error", syncError.Error).Msg("sync failed for one connection")
	}

	w.onSuccess()
}
