package pgp

import (
	"bytes"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	pgperrors "github.com/ProtonMail/go-crypto/openpgp/errors"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/pkg/errors"
)

// Test interface
var (
	_ Verifier = &GoVerifier{}
)

// GoVerifier is implementation of Verifier interface using Go internal
// OpenPGP library, for environments without GnuPG executables
type GoVerifier struct{}

// Init is a no-op: the internal implementation has no external dependencies
func (g *GoVerifier) Init() error {
	return nil
}

// Dearmor converts an ASCII-armored public keyring into its binary
// form at destination. A keyring that is already binary is copied
// through unchanged.
func (g *GoVerifier) Dearmor(keyring, destination string) error {
	data, err := os.ReadFile(keyring)
	if err != nil {
		return errors.Wrapf(err, "unable to read keyring %s", keyring)
	}

	payload := data
	if bytes.Contains(data, []byte(publicKeyBlockMarker)) {
		block, err := armor.Decode(bytes.NewReader(data))
		if err != nil {
			return errors.Wrapf(err, "unable to dearmor keyring %s", keyring)
		}

		payload, err = io.ReadAll(block.Body)
		if err != nil {
			return errors.Wrapf(err, "unable to dearmor keyring %s", keyring)
		}
	}

	if err = os.WriteFile(destination, payload, 0644); err != nil {
		return errors.Wrapf(err, "unable to write binary keyring %s", destination)
	}

	return nil
}

// VerifyDetached checks a detached signature against cleartext using
// only keys in keyring
func (g *GoVerifier) VerifyDetached(keyring, signature, cleartext string) (*KeyInfo, error) {
	entities, err := ReadKeyMaterial(keyring)
	if err != nil {
		return nil, err
	}

	sigData, err := os.ReadFile(signature)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read signature %s", signature)
	}

	sigBody, err := signatureBody(sigData)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse signature %s", signature)
	}

	signed, err := os.Open(cleartext)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", cleartext)
	}
	defer func() {
		_ = signed.Close()
	}()

	result := &KeyInfo{}

	signer, err := openpgp.CheckDetachedSignature(entities, signed, bytes.NewReader(sigBody), nil)
	if err != nil {
		if err == pgperrors.ErrUnknownIssuer {
			if issuer, ok := issuerKeyID(sigBody); ok {
				result.MissingKeys = append(result.MissingKeys, KeyFromUint64(issuer))
			}
		}
		return result, errors.Wrapf(err, "verification of %s with %s failed", cleartext, signature)
	}

	if signer != nil && signer.PrimaryKey != nil {
		result.GoodKeys = append(result.GoodKeys, KeyFromUint64(signer.PrimaryKey.KeyId))
	}

	return result, nil
}

// signatureBody strips ASCII armor from a detached signature; binary
// signatures pass through as is
func signatureBody(data []byte) ([]byte, error) {
	if !bytes.Contains(data, []byte("BEGIN PGP SIGNATURE")) {
		return data, nil
	}

	block, err := armor.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return io.ReadAll(block.Body)
}

// issuerKeyID extracts the issuer key ID from the first signature
// packet, for reporting which key is missing from the keyring
func issuerKeyID(sigBody []byte) (uint64, bool) {
	p, err := packet.Read(bytes.NewReader(sigBody))
	if err != nil {
		return 0, false
	}

	sig, ok := p.(*packet.Signature)
	if !ok || sig.IssuerKeyId == nil {
		return 0, false
	}

	return *sig.IssuerKeyId, true
}
