package main

import (
	"context"

	"github.com/tdex-network/account-selector/internal/config"
	"github.com/urfave/cli/v2"
)

var list = cli.Command{
	Name:   "list",
	Usage:  "list the stored selections of a scene",
	Flags:  []cli.Flag{&sceneFlag, &urlFlag},
	Action: listAction,
}

func listAction(ctx *cli.Context) error {
	name, url, err := sceneFromFlags(ctx)
	if err != nil {
		return err
	}

	e, err := newEngine(config.GetString(config.DBTypeKey), config.GetSelectorConfig())
	if err != nil {
		return err
	}
	defer e.close()

	m, err := e.repo().SelectedAccountRepository().GetSelectedAccountsMap(
		context.Background(), name, url,
	)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, m)
}
