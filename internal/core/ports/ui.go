package ports

import (
	"context"
	"time"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

type AccountSelectorParams struct {
	Scene                 domain.Scene
	LinkNetworkID         string
	LinkNetworkDeriveType domain.DeriveType
	EditMode              bool
}

// Navigator opens the account selector screen.
type Navigator interface {
	PushAccountSelector(ctx context.Context, params AccountSelectorParams) error
}

// Notifier surfaces transient messages to the user.
type Notifier interface {
	NotifyError(message string, err error)
	// ShowCheckingDevice displays the device check overlay until the returned
	// function is called.
	ShowCheckingDevice(connectID string) (hide func())
}

// KnownErrorMatcher opens a guided recovery dialog when err is one it knows.
type KnownErrorMatcher interface {
	ShowDialogIfErrorMatched(ctx context.Context, err error)
}

// SelectorMetrics collects runtime figures of the selection engine.
type SelectorMetrics interface {
	ObserveLockWait(lock string, wait time.Duration)
	IncUpdate(scene domain.SceneName, committed bool)
	IncAutoSelect(scene domain.SceneName, outcome string)
}
