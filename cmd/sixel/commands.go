package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/cam-per/sixel/graphics"
	"github.com/cam-per/sixel/utils"
)

func (a *app) infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Describe the sixel images in the input",
		ArgsUsage: "INPUT",
		Flags:     inputFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			data, err := readInput(cmd)
			if err != nil {
				return err
			}
			all, err := bodies(cmd, data)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			for i, body := range all {
				decoder, err := a.decode(body)
				if err != nil {
					return cli.Exit(err, 1)
				}
				num, den := decoder.Aspect()
				diag := decoder.Diagnostics()

				fmt.Fprintf(w, "#%d\n", i)
				fmt.Fprintf(w, "  body:     %s\n", humanize.Bytes(uint64(len(body))))
				fmt.Fprintf(w, "  size:     %dx%d (%s pixels)\n",
					decoder.Width(), decoder.Height(),
					humanize.Comma(int64(decoder.Width()*decoder.Height())))
				fmt.Fprintf(w, "  buffer:   %s\n", humanize.Bytes(uint64(len(decoder.Pix()))))
				fmt.Fprintf(w, "  aspect:   %d:%d\n", num, den)
				fmt.Fprintf(w, "  palette:  %d\n", len(decoder.Palette()))
				fmt.Fprintf(w, "  problems: unhandled=%d clamped=%d invalid-color=%d oversize=%d\n",
					diag.Unhandled, diag.Clamped, diag.InvalidColor, diag.Oversize)
			}
			return nil
		},
	}
}

func (a *app) pngCommand() *cli.Command {
	return a.exportCommand("png", "Convert a sixel image to PNG", graphics.EncodePNG)
}

func (a *app) gifCommand() *cli.Command {
	return a.exportCommand("gif", "Convert a sixel image to GIF", graphics.EncodeGIF)
}

func (a *app) exportCommand(name, usage string, encode func(io.Writer, *graphics.Raster) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "INPUT",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "file to write, - for standard output",
				Required: true,
			},
		}, inputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raster, err := a.raster(cmd)
			if err != nil {
				return err
			}

			output := cmd.String("output")
			if output == "-" {
				if err := encode(cmd.Root().Writer, raster); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			}

			f, err := os.Create(output)
			if err != nil {
				return cli.Exit(err, 1)
			}
			if err := encode(f, raster); err != nil {
				f.Close()
				return cli.Exit(fmt.Errorf("encoding %s: %w", output, err), 1)
			}
			if err := f.Close(); err != nil {
				return cli.Exit(err, 1)
			}

			a.logger.Sugar().Infow("wrote image",
				"path", output,
				"width", raster.Width(),
				"height", raster.Height())
			return nil
		},
	}
}

func (a *app) dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "Hex dump the sixel body of the input",
		ArgsUsage: "INPUT",
		Flags:     inputFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			body, err := selectBody(cmd)
			if err != nil {
				return err
			}
			r := bytes.NewReader(body)
			if err := utils.HexDump(cmd.Root().Writer, r, 0, int64(len(body))); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
	}
}
