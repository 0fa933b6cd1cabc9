package pgp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/gpgverify-dev/gpgverify/plan"
)

// VerificationError reports a signature rejected by the verifier
type VerificationError struct {
	Signature string
	Err       error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("signature %s did not verify: %s", e.Signature, e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// Executor runs a verification plan in order: each triple gets a
// fresh private keyring store, so one signature's trust material never
// leaks into another's check. The first failing triple aborts the
// remaining ones.
type Executor struct {
	verifier Verifier
	tmpRoot  string
}

// NewExecutor creates an executor on top of a verifier; scoped keyring
// stores are created under tmpRoot (empty means the system default)
func NewExecutor(verifier Verifier, tmpRoot string) *Executor {
	return &Executor{verifier: verifier, tmpRoot: tmpRoot}
}

// Execute verifies every triple in plan order, stopping at the first
// failure
func (e *Executor) Execute(triples []plan.Triple) error {
	for _, triple := range triples {
		if err := e.executeOne(triple); err != nil {
			return err
		}
	}

	return nil
}

func (e *Executor) executeOne(triple plan.Triple) error {
	log.Info().
		Str("source", triple.Source.Base()).
		Str("signature", triple.Signature.Base()).
		Str("keyring", triple.Keyring.Base()).
		Msg("verifying signature")

	if _, err := ReadKeyMaterial(triple.Keyring.Path); err != nil {
		return err
	}

	store, err := os.MkdirTemp(e.tmpRoot, "gpgverify-keys-")
	if err != nil {
		return errors.Wrap(err, "unable to create scoped keyring store")
	}
	defer func() {
		// the store is released even when verification fails
		_ = os.RemoveAll(store)
	}()

	binaryKeyring := filepath.Join(store, "pubring.gpg")

	if err = e.verifier.Dearmor(triple.Keyring.Path, binaryKeyring); err != nil {
		return errors.Wrapf(err, "unable to dearmor keyring %s", triple.Keyring.Base())
	}

	keyInfo, err := e.verifier.VerifyDetached(binaryKeyring, triple.Signature.Path, triple.Source.Path)
	if err != nil {
		return &VerificationError{Signature: triple.Signature.Base(), Err: err}
	}

	for _, key := range keyInfo.GoodKeys {
		log.Debug().Str("signature", triple.Signature.Base()).Str("key", string(key)).Msg("good signature")
	}

	return nil
}
