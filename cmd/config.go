package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/smira/commander"
)

func makeCmdConfig() *commander.Command {
	return &commander.Command{
		UsageLine: "config",
		Short:     "manage gpgverify configuration",
		Subcommands: []*commander.Command{
			makeCmdConfigShow(),
		},
	}
}

func gpgverifyConfigShow(cmd *commander.Command, args []string) error {
	encoded, err := json.MarshalIndent(context.Config(), "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode config: %s", err)
	}

	fmt.Println(string(encoded))

	return nil
}

func makeCmdConfigShow() *commander.Command {
	return &commander.Command{
		Run:       gpgverifyConfigShow,
		UsageLine: "show",
		Short:     "show current gpgverify's config",
		Long: `
Command show displays the current gpgverify configuration.

Example:

  $ gpgverify config show
`,
	}
}
