package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cam-per/sixel/graphics"
	"github.com/cam-per/sixel/internal/dcs"
	"github.com/cam-per/sixel/sixel"
	"github.com/cam-per/sixel/utils"
)

// inputFlags returns fresh flags for each command since flags keep their
// parsed value.
func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "utf8",
			Usage: "input carries C1 controls encoded as UTF-8",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail on sequences cut off by the end of input",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "input is a bare sixel body without DCS framing",
		},
		&cli.IntFlag{
			Name:  "index",
			Usage: "which sixel sequence of the input to use",
		},
	}
}

// readInput returns the named file, or standard input for "-".
func readInput(cmd *cli.Command) ([]byte, error) {
	if cmd.NArg() < 1 {
		return nil, cli.Exit("missing INPUT argument", 2)
	}
	name := cmd.Args().First()

	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, cli.Exit(err, 1)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, cli.Exit(fmt.Errorf("reading %s: %w", name, err), 1)
	}
	if cmd.Bool("utf8") {
		data = utils.Latin1(data)
	}
	return data, nil
}

// bodies returns the sixel bodies in data.
func bodies(cmd *cli.Command, data []byte) ([][]byte, error) {
	if cmd.Bool("raw") {
		return [][]byte{data}, nil
	}

	seqs, err := dcs.Extract(data, cmd.Bool("strict"))
	if err != nil {
		return nil, cli.Exit(err, 1)
	}

	out := make([][]byte, len(seqs))
	for i, seq := range seqs {
		out[i] = seq.Body
	}
	return out, nil
}

// selectBody applies --index to the bodies of the input.
func selectBody(cmd *cli.Command) ([]byte, error) {
	data, err := readInput(cmd)
	if err != nil {
		return nil, err
	}
	all, err := bodies(cmd, data)
	if err != nil {
		return nil, err
	}

	index := int(cmd.Int("index"))
	if index < 0 || index >= len(all) {
		return nil, cli.Exit(fmt.Sprintf("index %d out of range: input has %d sequences", index, len(all)), 2)
	}
	return all[index], nil
}

func (a *app) decode(body []byte) (*sixel.Decoder, error) {
	decoder, err := sixel.Decode(bytes.NewReader(body),
		sixel.WithLogger(a.logger),
		sixel.WithMaxPixels(a.cfg.Decoder.MaxPixels),
	)
	if err != nil {
		return nil, err
	}
	// a body holding only raster attributes is sized here, before diagnostics
	decoder.Flush()

	if diag := decoder.Diagnostics(); !diag.Clean() {
		a.logger.Warn("sixel body decoded with problems",
			zap.Int("unhandled", diag.Unhandled),
			zap.Int("clamped", diag.Clamped),
			zap.Int("invalidColor", diag.InvalidColor),
			zap.Int("oversize", diag.Oversize))
	}
	return decoder, nil
}

// raster decodes the selected body into an image.
func (a *app) raster(cmd *cli.Command) (*graphics.Raster, error) {
	body, err := selectBody(cmd)
	if err != nil {
		return nil, err
	}
	decoder, err := a.decode(body)
	if err != nil {
		return nil, cli.Exit(err, 1)
	}
	return decoder.Raster(graphics.NextID(), a.cfg.Cell.Height), nil
}
