package cmd

import (
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/gpgverify-dev/gpgverify/gpgverify"
)

func gpgverifyVersion(cmd *commander.Command, args []string) error {
	fmt.Printf("gpgverify version: %s\n", gpgverify.Version)
	return nil
}

func makeCmdVersion() *commander.Command {
	return &commander.Command{
		Run:       gpgverifyVersion,
		UsageLine: "version",
		Short:     "display version",
		Long: `
Shows gpgverify version.

ex:
  $ gpgverify version
`,
		Flag: *flag.NewFlagSet("gpgverify-version", flag.ExitOnError),
	}
}
