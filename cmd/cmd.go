// Package cmd implements console commands
package cmd

import (
	"os"

	"github.com/smira/commander"
	"github.com/smira/flag"
)

// RootCommand creates root command in command tree
func RootCommand() *commander.Command {
	cmd := &commander.Command{
		UsageLine: os.Args[0],
		Short:     "source signature verification tool",
		Long: `
gpgverify verifies detached OpenPGP signatures of the source files a
package declares. It classifies declared files into plain sources,
detached signatures and public keyrings, pairs every signature with
the source and keyring that authenticate it, and executes the
resulting plan, aborting the build on the first signature that fails
to verify.`,
		Flag: *flag.NewFlagSet("gpgverify", flag.ExitOnError),
		Subcommands: []*commander.Command{
			makeCmdVerify(),
			makeCmdPlan(),
			makeCmdConfig(),
			makeCmdVersion(),
		},
	}

	cmd.Flag.String("config", "", "location of configuration file (default locations are ~/.gpgverify.conf, /etc/gpgverify.conf)")
	cmd.Flag.String("log-level", "info", "log level (debug, info, warning, error)")
	cmd.Flag.String("log-format", "default", "log output format (default, json)")
	cmd.Flag.String("gpg-provider", "", "PGP implementation (gpg, gpg1, gpg2, internal)")
	cmd.Flag.String("tmp-dir", "", "directory for scoped keyring stores (default is the system temp directory)")

	return cmd
}
