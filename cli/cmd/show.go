package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/client"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/report"
)

// ShowCommand fetches and renders a contract's full report.
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a contract's extraction report",
		ArgsUsage: "<contract-id>",
		Flags:     []cli.Flag{ConfigFlag()},
		Action:    showAction,
	}
}

func showAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: show <contract-id>", 1)
	}
	id := c.Args().First()

	api, _, err := newClient(c)
	if err != nil {
		return err
	}

	contract, err := api.Get(c.Context, id)
	if err != nil {
		if errors.Is(err, client.ErrResourceNotReady) {
			return cli.Exit(fmt.Sprintf("contract is still processing: %s", client.Detail(err)), 1)
		}
		return cli.Exit(fmt.Sprintf("failed to load contract: %s", client.Detail(err)), 1)
	}

	report.Render(os.Stdout, contract)
	return nil
}

// StatusCommand prints a contract's lightweight processing status.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Show a contract's processing status",
		ArgsUsage: "<contract-id>",
		Flags:     []cli.Flag{ConfigFlag()},
		Action:    statusAction,
	}
}

func statusAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: status <contract-id>", 1)
	}

	api, _, err := newClient(c)
	if err != nil {
		return err
	}

	st, err := api.GetStatus(c.Context, c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("status unavailable: %s", client.Detail(err)), 1)
	}

	fmt.Printf("%s  %s  %d%%\n", st.ContractID, st.Status, st.Progress)
	if st.ErrorMessage != "" {
		fmt.Printf("error: %s\n", st.ErrorMessage)
	}
	return nil
}
