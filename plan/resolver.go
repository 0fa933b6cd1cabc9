package plan

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/gpgverify-dev/gpgverify/source"
)

// Resolve merges explicit pairing requests with automatic pairing of
// classified signatures into the final ordered verification plan.
// Explicit and automatic modes are mutually exclusive: a package either
// fully specifies its pairings or relies entirely on discovery.
func Resolve(list *source.List, roles map[string]source.Role, requests []Request, defaultKeyRef string) ([]Triple, error) {
	defaultKeyring, err := resolveDefaultKeyring(list, roles, defaultKeyRef)
	if err != nil {
		return nil, err
	}

	var triples []Triple

	if len(requests) > 0 {
		triples, err = resolveExplicit(requests, defaultKeyring)
	} else {
		triples, err = resolveAutomatic(list, roles, defaultKeyring)
	}
	if err != nil {
		return nil, err
	}

	if err = checkSignatureCoverage(list, roles, triples); err != nil {
		return nil, err
	}

	return triples, nil
}

func resolveDefaultKeyring(list *source.List, roles map[string]source.Role, defaultKeyRef string) (*source.File, error) {
	if defaultKeyRef != "" {
		keyring, err := list.Resolve(defaultKeyRef)
		if err != nil {
			return nil, errors.Wrap(err, "unable to resolve default keyring")
		}
		return keyring, nil
	}

	// first keyring in declaration order wins
	for _, file := range list.Files() {
		if roles[file.Path] == source.Keyring {
			keyring := file
			return &keyring, nil
		}
	}

	return nil, nil
}

func resolveExplicit(requests []Request, defaultKeyring *source.File) ([]Triple, error) {
	triples := make([]Triple, 0, len(requests))

	for _, request := range requests {
		keyring := request.Keyring
		if keyring == nil {
			if defaultKeyring == nil {
				return nil, &ConflictError{Reason: "a common key is required but none was specified or found"}
			}
			keyring = defaultKeyring
		}

		triple := Triple{Source: request.Source, Signature: request.Signature, Keyring: keyring}
		if err := checkDistinct(triple); err != nil {
			return nil, err
		}

		triples = append(triples, triple)
	}

	return triples, nil
}

func resolveAutomatic(list *source.List, roles map[string]source.Role, defaultKeyring *source.File) ([]Triple, error) {
	var triples []Triple

	for _, file := range list.Files() {
		if roles[file.Path] != source.Signature {
			continue
		}

		if defaultKeyring == nil {
			return nil, &ConflictError{Reason: fmt.Sprintf("no keyring specified and none found (needed for %s)", file.Base())}
		}

		signature := file
		match := matchSource(list, roles, signature.Base())
		if match == nil {
			return nil, &GapError{Signature: signature.Base()}
		}

		triple := Triple{Source: match, Signature: &signature, Keyring: defaultKeyring}
		if err := checkDistinct(triple); err != nil {
			return nil, err
		}

		triples = append(triples, triple)
	}

	return triples, nil
}

// matchSource finds the plain source a signature covers by stripping
// the signature's last extension. A candidate that is itself a
// signature or a keyring is not a match.
func matchSource(list *source.List, roles map[string]source.Role, signatureBase string) *source.File {
	dot := strings.LastIndex(signatureBase, ".")
	if dot <= 0 {
		return nil
	}
	stripped := signatureBase[:dot]

	for i, file := range list.Files() {
		if file.Base() == stripped && roles[file.Path] == source.Plain {
			return &list.Files()[i]
		}
	}

	return nil
}

func checkDistinct(triple Triple) error {
	if triple.Source.Path == triple.Signature.Path {
		return &ConflictError{Reason: fmt.Sprintf("%s can't be its own signature", triple.Source.Base())}
	}
	if triple.Source.Path == triple.Keyring.Path {
		return &ConflictError{Reason: fmt.Sprintf("%s can't be its own keyring", triple.Source.Base())}
	}
	return nil
}

// checkSignatureCoverage enforces that every declared signature lands
// in exactly one triple: a plan that silently skips or reuses a
// signature is no plan at all
func checkSignatureCoverage(list *source.List, roles map[string]source.Role, triples []Triple) error {
	counts := make(map[string]int)
	for _, triple := range triples {
		counts[triple.Signature.Path]++
	}

	for _, file := range list.Files() {
		if roles[file.Path] != source.Signature {
			continue
		}
		switch counts[file.Path] {
		case 0:
			return &ConflictError{Reason: fmt.Sprintf("signature %s is not covered by any pairing", file.Base())}
		case 1:
		default:
			return &ConflictError{Reason: fmt.Sprintf("signature %s is paired more than once", file.Base())}
		}
	}

	return nil
}
