package main

import (
	"flag"
	"fmt"

	"github.com/example/rasterpaint/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *configCmd) Program() string { return c.root.subcommand("config") }

func (c *configCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		fmt.Fprint(stdout, c.settings().String())
		return nil
	case "path":
		path := config.NewLoader(version, c.root.configPath).GetConfigPath()
		if path == "" {
			path = config.UserConfigPath()
		}
		fmt.Fprintln(stdout, path)
		return nil
	case "save":
		path, err := config.NewLoader(version, c.root.configPath).Save(c.settings())
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "saved %s\n", path)
		return nil
	}
	return fmt.Errorf("unknown config command: %s", args[0])
}

func (c *configCmd) settings() *config.Config {
	if c.root == nil || c.root.config == nil {
		return config.New()
	}
	return c.root.config
}
