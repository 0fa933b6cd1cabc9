package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/smira/flag"

	"github.com/gpgverify-dev/gpgverify/pgp"
	"github.com/gpgverify-dev/gpgverify/utils"
)

// ToolContext is a common context shared by all commands: flags,
// lazily loaded configuration and the selected verifier provider
type ToolContext struct {
	flags        *flag.FlagSet
	config       *utils.ConfigStructure
	configLoaded bool
}

var context *ToolContext

// InitContext initializes context with flags and sets up logging
func InitContext(flags *flag.FlagSet) error {
	context = &ToolContext{flags: flags}

	level := context.lookupOption(context.Config().LogLevel, "log-level")
	if context.lookupOption(context.Config().LogFormat, "log-format") == "json" {
		utils.SetupJSONLogger(level, os.Stderr)
	} else {
		utils.SetupDefaultLogger(level)
	}

	return nil
}

// Config loads and returns current configuration
func (context *ToolContext) Config() *utils.ConfigStructure {
	if !context.configLoaded {
		context.config = utils.DefaultConfig()

		configLocation := context.flags.Lookup("config").Value.String()
		if configLocation != "" {
			err := utils.LoadConfig(configLocation, context.config)
			if err != nil {
				Fatal(err)
			}
		} else {
			configLocations := []string{
				filepath.Join(os.Getenv("HOME"), ".gpgverify.conf"),
				"/etc/gpgverify.conf",
			}

			for _, configLocation := range configLocations {
				err := utils.LoadConfig(configLocation, context.config)
				if err == nil {
					break
				}
				if !os.IsNotExist(err) {
					Fatal(fmt.Errorf("error loading config file %s: %s", configLocation, err))
				}
			}
		}

		context.configLoaded = true
	}
	return context.config
}

// Flags returns command flags
func (context *ToolContext) Flags() *flag.FlagSet {
	return context.flags
}

func (context *ToolContext) lookupOption(defaultValue string, name string) (value string) {
	value = defaultValue
	if context.flags.IsSet(name) {
		value = context.flags.Lookup(name).Value.String()
	}
	return
}

func (context *ToolContext) pgpProvider() string {
	provider := context.lookupOption(context.Config().GpgProvider, "gpg-provider")

	switch provider {
	case "gpg", "gpg1", "gpg2", "internal":
	default:
		Fatal(fmt.Errorf("unknown gpg provider: %v", provider))
	}

	return provider
}

func getGPGFinder(provider string) pgp.GPGFinder {
	switch provider {
	case "gpg1":
		return pgp.GPG1Finder()
	case "gpg2":
		return pgp.GPG2Finder()
	}

	return pgp.GPGDefaultFinder()
}

// GetVerifier returns Verifier with respect to provider
func (context *ToolContext) GetVerifier() pgp.Verifier {
	provider := context.pgpProvider()
	if provider == "internal" {
		return &pgp.GoVerifier{}
	}

	verifier, err := pgp.NewGpgVerifier(getGPGFinder(provider))
	if err != nil {
		Fatal(err)
	}

	log.Debug().Str("provider", provider).Msg("using external gnupg verifier")

	return verifier
}

// TmpDir returns directory for scoped keyring stores
func (context *ToolContext) TmpDir() string {
	return context.lookupOption(context.Config().TmpDir, "tmp-dir")
}
