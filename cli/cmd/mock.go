package cmd

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/mockapi"
)

// MockCommand runs the in-process mock of the contract service for
// local development.
func MockCommand() *cli.Command {
	return &cli.Command{
		Name:  "mock",
		Usage: "Run a local mock of the contract service",
		Flags: []cli.Flag{
			ConfigFlag(),
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port",
				Value: 8000,
			},
			&cli.IntFlag{
				Name:  "step",
				Usage: "Progress advance per status poll",
				Value: 40,
			},
		},
		Action: mockAction,
	}
}

func mockAction(c *cli.Context) error {
	if _, err := setup(c); err != nil {
		return err
	}

	srv := mockapi.New(mockapi.WithStep(c.Int("step")))
	addr := fmt.Sprintf(":%d", c.Int("port"))

	slog.Info("mock contract service listening", "addr", addr)
	return srv.Router().Run(addr)
}
