package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tdex-network/account-selector/internal/config"
	"github.com/tdex-network/account-selector/internal/core/application"
	"github.com/tdex-network/account-selector/internal/core/application/selector"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
	"github.com/urfave/cli/v2"
)

var demo = cli.Command{
	Name: "demo",
	Usage: "create and remove an HD wallet on a throwaway in-memory store " +
		"and print how the home selection converges",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "how long to wait for each step to settle",
			Value: 10 * time.Second,
		},
	},
	Action: demoAction,
}

type demoStep struct {
	Step     string                 `json:"step"`
	Selected domain.SelectedAccount `json:"selected"`
	Usable   bool                   `json:"usable"`
}

func demoAction(ctx *cli.Context) error {
	cfg := config.GetSelectorConfig()
	cfg.Pacing = selector.Pacing{}

	e, err := newEngine(application.DBInMemory, cfg)
	if err != nil {
		return err
	}
	defer e.close()

	bg, cancel := context.WithCancel(context.Background())
	defer cancel()

	timeout := ctx.Duration("timeout")
	home := e.app.SelectorService().NewScene(domain.SceneHome, "")
	if err := home.Start(bg); err != nil {
		return err
	}
	defer home.Stop()

	steps := make([]demoStep, 0, 3)
	record := func(step string) {
		steps = append(steps, demoStep{
			Step:     step,
			Selected: home.GetSelectedAccount(0),
			Usable:   home.GetActiveAccountInfo(0).IsUsable(),
		})
	}

	if err := waitFor(timeout, func() bool {
		return home.GetActiveAccountInfo(0).Ready
	}); err != nil {
		return fmt.Errorf("initial selection: %w", err)
	}
	// Without any wallet auto-select may find nothing usable.
	_ = waitFor(cfg.AutoSelectSettleDelay+cfg.HwAccountSettleDelay+time.Second,
		func() bool { return home.GetActiveAccountInfo(0).IsUsable() },
	)
	record("start")

	created, err := home.CreateHDWallet(bg, ports.CreateHDWalletParams{
		Name: "demo",
	})
	if err != nil {
		return err
	}
	walletID := created.Created.Wallet.ID
	if err := waitFor(timeout, func() bool {
		return home.GetSelectedAccount(0).WalletID == walletID &&
			home.GetActiveAccountInfo(0).IsUsable()
	}); err != nil {
		return fmt.Errorf("selecting wallet %s: %w", walletID, err)
	}
	record("create " + walletID)

	if err := home.RemoveWallet(bg, walletID, false); err != nil {
		return err
	}
	if err := waitFor(timeout, func() bool {
		selected := home.GetSelectedAccount(0)
		info := home.GetActiveAccountInfo(0)
		return selected.WalletID != walletID &&
			(info.IsUsable() || !selected.HasAccount())
	}); err != nil {
		return fmt.Errorf("leaving wallet %s: %w", walletID, err)
	}
	record("remove " + walletID)

	return printJSON(ctx.App.Writer, steps)
}

func waitFor(timeout time.Duration, cond func() bool) error {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(timeout)

	for !cond() {
		select {
		case <-deadline:
			return fmt.Errorf("not settled after %s", timeout)
		case <-ticker.C:
		}
	}
	return nil
}
