package cmd

import (
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"
)

func gpgverifyPlan(cmd *commander.Command, args []string) error {
	triples, err := resolvePlan(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("Verification plan:\n")
	for _, triple := range triples {
		fmt.Printf("  %s\n", triple)
	}

	return nil
}

func makeCmdPlan() *commander.Command {
	cmd := &commander.Command{
		Run:       gpgverifyPlan,
		UsageLine: "plan -sources=FILE [source,signature[,keyring]]...",
		Short:     "show the verification plan without executing it",
		Long: `
Command plan resolves the verification plan the same way verify does
and prints the resulting (source, signature, keyring) triples instead
of invoking the verifier.

Example:

  $ gpgverify plan -sources=SOURCES
`,
		Flag: *flag.NewFlagSet("gpgverify-plan", flag.ExitOnError),
	}

	addPlanFlags(cmd)

	return cmd
}
