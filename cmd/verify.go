package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/gpgverify-dev/gpgverify/pgp"
	"github.com/gpgverify-dev/gpgverify/plan"
	"github.com/gpgverify-dev/gpgverify/source"
)

// returnCodeVerificationFailed distinguishes a rejected signature from
// planning errors in the exit status
const returnCodeVerificationFailed = 3

func gpgverifyVerify(cmd *commander.Command, args []string) error {
	triples, err := resolvePlan(cmd, args)
	if err != nil {
		return err
	}

	verifier := context.GetVerifier()
	if err = verifier.Init(); err != nil {
		return err
	}

	err = pgp.NewExecutor(verifier, context.TmpDir()).Execute(triples)
	if err != nil {
		var failure *pgp.VerificationError
		if errors.As(err, &failure) {
			panic(&FatalError{ReturnCode: returnCodeVerificationFailed, Message: err.Error()})
		}
		return err
	}

	fmt.Printf("All %d signature(s) verified.\n", len(triples))

	return nil
}

// resolvePlan runs the shared planning pipeline: load the declared
// source list, classify it, parse pairing arguments and resolve the
// final plan
func resolvePlan(cmd *commander.Command, args []string) ([]plan.Triple, error) {
	manifest := cmd.Flag.Lookup("sources").Value.Get().(string)
	if manifest == "" {
		cmd.Usage()
		return nil, commander.ErrCommandError
	}

	list, err := source.LoadManifest(manifest)
	if err != nil {
		return nil, fmt.Errorf("unable to load declared source list: %s", err)
	}

	roles := list.ClassifyAll(newClassifier())

	requests, err := plan.ParseRequests(strings.Join(args, " "), list)
	if err != nil {
		return nil, err
	}

	keyRef := cmd.Flag.Lookup("key").Value.Get().(string)

	return plan.Resolve(list, roles, requests, keyRef)
}

func newClassifier() *source.Classifier {
	classifier := source.NewClassifier()

	config := context.Config()
	if len(config.SignatureExtensions) > 0 {
		classifier.SignatureExtensions = config.SignatureExtensions
	}
	if len(config.KeyringExtensions) > 0 {
		classifier.KeyringExtensions = config.KeyringExtensions
	}

	return classifier
}

func addPlanFlags(cmd *commander.Command) {
	cmd.Flag.String("sources", "", "path to the declared source list file")
	cmd.Flag.String("key", "", "default keyring reference (source number or filename)")
}

func makeCmdVerify() *commander.Command {
	cmd := &commander.Command{
		Run:       gpgverifyVerify,
		UsageLine: "verify -sources=FILE [source,signature[,keyring]]...",
		Short:     "verify source signatures",
		Long: `
Command verify resolves the verification plan for the declared source
list and executes it. Without pairing arguments every detached
signature is paired automatically with the source file obtained by
stripping the signature's extension, verified against the default
keyring (the -key reference, or the first keyring among the declared
sources). Pairing arguments override automatic discovery completely.

Example:

  $ gpgverify verify -sources=SOURCES pkg.tar,pkg.tar.sig,upstream.gpg
`,
		Flag: *flag.NewFlagSet("gpgverify-verify", flag.ExitOnError),
	}

	addPlanFlags(cmd)

	return cmd
}
