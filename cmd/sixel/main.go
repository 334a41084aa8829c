package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cam-per/sixel/internal/config"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// app carries what the root command sets up for its subcommands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand(out io.Writer) *cli.Command {
	a := &app{logger: zap.NewNop()}

	return &cli.Command{
		Name:    "sixel",
		Usage:   "decode, inspect and display sixel graphics",
		Version: "1.0.0",
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to TOML configuration",
				Sources: cli.EnvVars("SIXEL_CONFIG"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "development logging at debug level",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, a.setup(cmd)
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			a.logger.Sync() //nolint:errcheck
			return nil
		},
		Commands: []*cli.Command{
			a.infoCommand(),
			a.pngCommand(),
			a.gifCommand(),
			a.dumpCommand(),
			a.viewCommand(),
		},
	}
}

func (a *app) setup(cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	if cmd.Bool("verbose") {
		cfg.Log.Development = true
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return cli.Exit(fmt.Errorf("init logger: %w", err), 1)
	}
	zap.ReplaceGlobals(logger)
	a.logger = logger
	return nil
}

func newLogger(cfg config.Log) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}
