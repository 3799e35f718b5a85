package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/client"
)

// UploadCommand submits a contract file for processing.
func UploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload a contract PDF for extraction",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			ConfigFlag(),
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Follow processing until it finishes",
			},
		},
		Action: uploadAction,
	}
}

func uploadAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: upload <file>", 1)
	}
	path := c.Args().First()

	api, cfg, err := newClient(c)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	contentType := contentTypeFor(path)

	// The gate runs before the request is built; a rejected file never
	// touches the network.
	if err := client.ValidateUpload(contentType, info.Size()); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	resp, err := api.Upload(c.Context, filepath.Base(path), contentType, info.Size(), f)
	if err != nil {
		return cli.Exit(fmt.Sprintf("upload rejected: %s", client.Detail(err)), 1)
	}

	fmt.Printf("%s\n", resp.Message)
	fmt.Printf("contract_id: %s\n", resp.ContractID)

	if c.Bool("watch") {
		return followContract(c, api, cfg, resp.ContractID)
	}
	return nil
}

// contentTypeFor maps the file extension to a MIME type. Only .pdf maps
// to the accepted type; everything else fails the gate.
func contentTypeFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return client.AcceptedContentType
	}
	return "application/octet-stream"
}
