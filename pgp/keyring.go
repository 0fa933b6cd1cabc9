package pgp

import (
	"bytes"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/pkg/errors"
)

const publicKeyBlockMarker = "BEGIN PGP PUBLIC KEY BLOCK"

// ReadKeyMaterial loads a public keyring, armored or binary, failing
// when it contains no keys. An extension is only a hint: the chosen
// keyring is always confirmed to actually hold key material before it
// is handed to the verifier.
func ReadKeyMaterial(path string) (openpgp.EntityList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read keyring %s", path)
	}

	var entities openpgp.EntityList

	if bytes.Contains(data, []byte(publicKeyBlockMarker)) {
		entities, err = openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	} else {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse keyring %s", path)
	}

	if len(entities) == 0 {
		return nil, errors.Errorf("keyring %s contains no key material", path)
	}

	return entities, nil
}
