package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/client"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/config"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/model"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/report"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/watch"
)

// WatchCommand follows a contract's processing until terminal.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Follow a contract's processing until it completes or fails",
		ArgsUsage: "<contract-id>",
		Flags:     []cli.Flag{ConfigFlag()},
		Action:    watchAction,
	}
}

func watchAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: watch <contract-id>", 1)
	}

	api, cfg, err := newClient(c)
	if err != nil {
		return err
	}
	return followContract(c, api, cfg, c.Args().First())
}

// followContract runs a watch session and renders updates until the
// contract reaches a terminal state.
func followContract(c *cli.Context, api *client.Client, cfg *config.Config, id string) error {
	interval := time.Duration(cfg.Poll.IntervalMS) * time.Millisecond
	session := watch.Start(api, id, watch.WithInterval(interval))
	defer session.Stop()

	for snap := range session.Updates() {
		switch snap.State {
		case watch.StateLoading:
			continue
		case watch.StateNotFound:
			return cli.Exit(fmt.Sprintf("contract %s not found or failed to load", id), 1)
		}

		contract := snap.Contract
		switch {
		case contract.Status == model.StatusFailed:
			return cli.Exit(fmt.Sprintf("processing failed: %s", contract.ErrorMessage), 1)
		case contract.Status == model.StatusCompleted:
			report.Render(os.Stdout, contract)
			return nil
		default:
			fmt.Printf("%s  %d%%\n", contract.Status, contract.Progress)
		}
	}

	return nil
}
