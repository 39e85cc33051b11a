package main

import (
	"context"
	"fmt"

	"github.com/tdex-network/account-selector/internal/config"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var get = cli.Command{
	Name:   "get",
	Usage:  "print the stored selection of a scene slot",
	Flags:  []cli.Flag{&sceneFlag, &urlFlag, &numFlag},
	Action: getAction,
}

func getAction(ctx *cli.Context) error {
	name, url, err := sceneFromFlags(ctx)
	if err != nil {
		return err
	}
	scene := domain.Scene{Name: name, URL: url, Num: ctx.Int(numFlag.Name)}

	e, err := newEngine(config.GetString(config.DBTypeKey), config.GetSelectorConfig())
	if err != nil {
		return err
	}
	defer e.close()

	selected, err := e.repo().SelectedAccountRepository().GetSelectedAccount(
		context.Background(), scene,
	)
	if err != nil {
		return err
	}
	if selected == nil {
		return fmt.Errorf("no selection stored for %s", scene)
	}
	return printJSON(ctx.App.Writer, selected)
}
