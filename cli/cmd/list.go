package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/client"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/model"
)

// ListCommand lists contracts page by page.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List contracts",
		Flags: []cli.Flag{
			ConfigFlag(),
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "Contracts per page",
				Value: 10,
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Filter by status: pending, processing, completed, failed",
			},
		},
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	status := model.Status(c.String("status"))
	if status != "" && !status.Valid() {
		return cli.Exit(fmt.Sprintf("unknown status %q", status), 1)
	}

	api, _, err := newClient(c)
	if err != nil {
		return err
	}

	resp, err := api.List(c.Context, client.ListOptions{
		Page:     c.Int("page"),
		PageSize: c.Int("page-size"),
		Status:   status,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to list contracts: %s", client.Detail(err)), 1)
	}

	for _, contract := range resp.Contracts {
		fmt.Printf("%s  %-10s  %s\n", contract.ID, contract.Status, contract.Filename)
	}
	fmt.Printf("page %d/%d (%d total)\n", resp.Page, resp.TotalPages, resp.Total)
	return nil
}
