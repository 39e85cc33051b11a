package main

import (
	"context"

	"github.com/tdex-network/account-selector/internal/config"
	"github.com/urfave/cli/v2"
)

var derivetypes = cli.Command{
	Name:   "derive-types",
	Usage:  "print the preferred derive type of every network by scope",
	Action: deriveTypesAction,
}

func deriveTypesAction(ctx *cli.Context) error {
	e, err := newEngine(config.GetString(config.DBTypeKey), config.GetSelectorConfig())
	if err != nil {
		return err
	}
	defer e.close()

	table, err := e.app.SelectorService().GlobalDeriveTypes(context.Background())
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, table)
}
