// Command cip is the Contract Intelligence Parser client: it uploads
// contract PDFs, follows their asynchronous processing, and renders the
// extracted report.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/cli/cmd"
)

func main() {
	// .env overrides are optional; a missing file is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "cip",
		Usage: "Contract Intelligence Parser client",
		Commands: []*cli.Command{
			cmd.UploadCommand(),
			cmd.StatusCommand(),
			cmd.ShowCommand(),
			cmd.WatchCommand(),
			cmd.ListCommand(),
			cmd.DownloadCommand(),
			cmd.MockCommand(),
		},
	}

	// cli.Exit errors are printed and exited by the default handler;
	// anything else lands here.
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
