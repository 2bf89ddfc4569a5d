package main

import (
	"flag"
	"fmt"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Program() string { return v.r.subcommand("version") }

func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Run() error {
	fmt.Fprintf(stdout, "%s version %s\n", v.r.Program(), version)
	if commit != "" {
		fmt.Fprintf(stdout, "commit %s\n", commit)
	}
	if date != "" {
		fmt.Fprintf(stdout, "built %s\n", date)
	}
	return nil
}
