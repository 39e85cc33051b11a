package main

import (
	"context"

	"github.com/tdex-network/account-selector/internal/config"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var set = cli.Command{
	Name:  "set",
	Usage: "update the selection of a scene slot and store it",
	Flags: []cli.Flag{
		&sceneFlag,
		&urlFlag,
		&numFlag,
		&cli.StringFlag{Name: "wallet", Usage: "the selected wallet id"},
		&cli.StringFlag{Name: "indexed", Usage: "the selected indexed account id"},
		&cli.StringFlag{Name: "others", Usage: "the selected singleton account id"},
		&cli.StringFlag{Name: "network", Usage: "the selected network id"},
		&cli.StringFlag{Name: "derive", Usage: "the derive type of the network"},
		&cli.StringFlag{Name: "focus", Usage: "the wallet focused in the selector"},
	},
	Action: setAction,
}

func setAction(ctx *cli.Context) error {
	name, url, err := sceneFromFlags(ctx)
	if err != nil {
		return err
	}
	num := ctx.Int(numFlag.Name)

	changes := 0
	for _, flag := range []string{
		"wallet", "indexed", "others", "network", "derive", "focus",
	} {
		if ctx.IsSet(flag) {
			changes++
		}
	}
	if changes == 0 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	e, err := newEngine(config.GetString(config.DBTypeKey), config.GetSelectorConfig())
	if err != nil {
		return err
	}
	defer e.close()

	bg := context.Background()
	scene := e.app.SelectorService().NewScene(name, url, num)
	if err := scene.InitFromStorage(bg); err != nil {
		return err
	}

	if _, err := scene.UpdateSelectedAccount(bg, num,
		func(old domain.SelectedAccount) domain.SelectedAccount {
			next := old
			if ctx.IsSet("wallet") {
				next.WalletID = ctx.String("wallet")
			}
			if ctx.IsSet("indexed") {
				next.IndexedAccountID = ctx.String("indexed")
				if !ctx.IsSet("wallet") && next.IndexedAccountID != "" {
					next.WalletID = domain.WalletIDFromAccountID(next.IndexedAccountID)
				}
			}
			if ctx.IsSet("others") {
				next.OthersWalletAccountID = ctx.String("others")
			}
			if ctx.IsSet("network") {
				next.NetworkID = ctx.String("network")
			}
			if ctx.IsSet("derive") {
				next.DeriveType = domain.DeriveType(ctx.String("derive"))
			}
			if ctx.IsSet("focus") {
				next.FocusedWallet = ctx.String("focus")
			}
			return next
		},
	); err != nil {
		return err
	}

	if err := scene.SaveToStorage(bg, num); err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, scene.GetSelectedAccount(num))
}
