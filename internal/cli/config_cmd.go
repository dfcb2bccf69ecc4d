// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jeranaias/curriculumlab/internal/config"
)

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "Inspect and edit the configuration",
	Subcommands: []*cli.Command{
		{
			Name:  "show",
			Usage: "Print the effective configuration as TOML",
			Action: func(c *cli.Context) error {
				fmt.Fprint(envFrom(c).out, envFrom(c).cfg.String())
				return nil
			},
		},
		{
			Name:  "path",
			Usage: "Print the configuration file path",
			Action: func(c *cli.Context) error {
				path, err := config.ConfigPathTOML()
				if err != nil {
					return err
				}
				fmt.Fprintln(envFrom(c).out, path)
				return nil
			},
		},
		{
			Name:      "get",
			Usage:     "Print one value (dot notation, e.g. export.output_dir)",
			ArgsUsage: "KEY",
			Action: func(c *cli.Context) error {
				key, err := argAt(c, 0, "KEY")
				if err != nil {
					return err
				}
				v, err := envFrom(c).cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintln(envFrom(c).out, v)
				return nil
			},
		},
		{
			Name:      "set",
			Usage:     "Write one value to the configuration file (--config or the default path)",
			ArgsUsage: "KEY VALUE",
			Action:    runConfigSet,
		},
		{
			Name:  "keys",
			Usage: "List every configuration key",
			Action: func(c *cli.Context) error {
				for _, k := range config.GetAllKeys() {
					fmt.Fprintln(envFrom(c).out, k)
				}
				return nil
			},
		},
		{
			Name:  "init",
			Usage: "Write the default configuration file if none exists",
			Action: func(c *cli.Context) error {
				path, err := config.ConfigPathTOML()
				if err != nil {
					return err
				}
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists", path)
				}
				if err := config.EnsureConfigDir(); err != nil {
					return err
				}
				if err := config.SaveTOML(config.Default(), path); err != nil {
					return err
				}
				fmt.Fprintln(envFrom(c).errOut, RenderStatus("ok")+" wrote "+path)
				return nil
			},
		},
	},
}

// runConfigSet edits the file itself, so environment overrides never end
// up persisted.
func runConfigSet(c *cli.Context) error {
	e := envFrom(c)
	key, err := argAt(c, 0, "KEY")
	if err != nil {
		return err
	}
	if c.Args().Len() < 2 {
		return errors.New("missing VALUE argument")
	}
	value := c.Args().Get(1)

	path := c.String("config")
	if path == "" {
		if path, err = config.ConfigPathTOML(); err != nil {
			return err
		}
		if err := config.EnsureConfigDir(); err != nil {
			return err
		}
	}

	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if err := config.LoadFile(cfg, path); err != nil {
			return err
		}
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := config.SaveFile(cfg, path); err != nil {
		return err
	}
	e.log.Debug("config updated", "path", path, "key", key)
	fmt.Fprintln(e.errOut, RenderStatus("ok")+fmt.Sprintf(" %s = %v (%s)", key, value, path))
	return nil
}
