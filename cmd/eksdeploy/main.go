// Package main is the entry point for the eksdeploy CLI.
//
// eksdeploy drives an EKS cluster deployment to completion: it validates the
// configuration, provisions the cluster IAM role, requests cluster creation,
// polls the cluster status until it is ACTIVE (or fails), registers a health
// alarm, and scales the worker autoscaling group.
//
// For detailed usage information, run:
//
//	eksdeploy --help
package main

import (
	"fmt"
	"os"

	"github.com/pitfunie/eksdeploy/cmd/eksdeploy/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
