package selector

import "time"

// Pacing holds the artificial delays of the wallet setup workflow.
type Pacing struct {
	// StepDelay is waited right after each progress event.
	StepDelay time.Duration
	// MinDuration is the least time wallet creation and account generation
	// are shown for.
	MinDuration time.Duration
	// ReadyDelay is waited after the Ready event.
	ReadyDelay time.Duration
}

type Config struct {
	// WebDappMode pins every scene but swap to the all-networks view.
	WebDappMode bool
	// DefaultNetworkID is assigned by auto-select when a slot has an account
	// but no usable network.
	DefaultNetworkID string
	// AutoSelectSettleDelay is waited before auto-select looks at a slot so
	// that bursts of changes settle first.
	AutoSelectSettleDelay time.Duration
	// HwAccountSettleDelay is waited before scanning wallets, giving freshly
	// created hardware accounts time to be stored.
	HwAccountSettleDelay time.Duration
	Pacing               Pacing
}

// DefaultConfig returns the delays used by the mobile and desktop apps.
func DefaultConfig() Config {
	return Config{
		DefaultNetworkID:      "evm--1",
		AutoSelectSettleDelay: 300 * time.Millisecond,
		HwAccountSettleDelay:  600 * time.Millisecond,
		Pacing: Pacing{
			StepDelay:   100 * time.Millisecond,
			MinDuration: time.Second,
			ReadyDelay:  2 * time.Second,
		},
	}
}
