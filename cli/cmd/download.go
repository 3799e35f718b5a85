package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/archive"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/client"
)

// DownloadCommand saves a contract's original file locally, with
// optional object-storage archival. The operation is idempotent: it can
// be re-run safely and overwrites the local copy.
func DownloadCommand() *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "Download a contract's original file",
		ArgsUsage: "<contract-id>",
		Flags: []cli.Flag{
			ConfigFlag(),
			&cli.StringFlag{
				Name:  "out",
				Usage: "Output path (defaults to the server-supplied filename)",
			},
			&cli.BoolFlag{
				Name:  "archive",
				Usage: "Also store the file in the configured archive bucket",
			},
		},
		Action: downloadAction,
	}
}

func downloadAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: download <contract-id>", 1)
	}
	id := c.Args().First()

	api, cfg, err := newClient(c)
	if err != nil {
		return err
	}

	body, filename, err := api.Download(c.Context, id)
	if err != nil {
		return cli.Exit(fmt.Sprintf("download failed: %s", client.Detail(err)), 1)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return cli.Exit(fmt.Sprintf("download failed: %v", err), 1)
	}

	out := c.String("out")
	if out == "" {
		out = filename
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to save %s: %w", out, err)
	}
	fmt.Printf("saved %s (%d bytes)\n", out, len(data))

	if c.Bool("archive") {
		if !cfg.Archive.Enabled() {
			return cli.Exit("archive requested but not configured", 1)
		}
		arc, err := archive.New(&cfg.Archive)
		if err != nil {
			return err
		}
		if err := arc.EnsureBucket(c.Context); err != nil {
			return err
		}
		if err := arc.Store(c.Context, id, filename, bytes.NewReader(data), int64(len(data))); err != nil {
			return err
		}
		fmt.Printf("archived as %s\n", archive.ObjectName(id, filename))
	}

	return nil
}
