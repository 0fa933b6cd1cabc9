package main

import (
	"os"

	"github.com/gpgverify-dev/gpgverify/cmd"
	"github.com/gpgverify-dev/gpgverify/gpgverify"
)

// Version variable, filled in at link time
var Version string

func main() {
	if Version == "" {
		Version = "unknown"
	}

	gpgverify.Version = Version

	os.Exit(cmd.Run(cmd.RootCommand(), os.Args[1:], true))
}
