// Package main is the entry point for the volplan CLI.
//
// volplan applies the volume plans requested for a node: it creates and
// attaches EBS volumes, builds LVM volume groups and logical volumes on
// them, formats new volumes and mounts them. Every step is idempotent so
// the tool can be run on each boot or configuration run.
//
// Commands: apply, plan, plans, doctor, version.
//
// For detailed usage information, run:
//
//	volplan --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/volplan/cmd/volplan/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
