// Package main is the vec-outliers CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/viant/vec-outliers/config"
)

var (
	name    = "vec-outliers"
	version = "v0.0.1-default"

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to a YAML config file (optional)",
	}
	dbFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "Path to the SQLite embedding store (overrides config)",
	}
)

func main() {
	app := &cli.App{
		Name:    name,
		Version: version,
		Usage:   "KNN outlier scoring for stored embedding sets",
		Flags: []cli.Flag{
			debugFlag,
			configFlag,
			dbFlag,
		},
		Commands: []*cli.Command{
			ingestCmd,
			scoreCmd,
			detectCmd,
			setsCmd,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(1)
	}
}

// loadConfig merges the optional config file with command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String(configFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.Bool(debugFlag.Name) {
		cfg.Debug = true
	}
	if db := c.String(dbFlag.Name); db != "" {
		cfg.Store.DatabasePath = db
	}
	return cfg, cfg.Validate()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
