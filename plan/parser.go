package plan

import (
	"strings"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/pkg/errors"

	"github.com/gpgverify-dev/gpgverify/source"
)

// ParseRequests turns the raw pairing argument string into structured
// requests, resolving every field against the declared source list.
// Parsing stops at the first malformed token: a broken argument string
// never yields a partial plan.
func ParseRequests(raw string, list *source.List) ([]Request, error) {
	tokens, err := shellwords.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "unable to tokenize pairing arguments")
	}

	var requests []Request

	for _, token := range tokens {
		fields := strings.Split(token, ",")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, &ParseError{Token: token}
		}
		for _, field := range fields {
			if field == "" {
				return nil, &ParseError{Token: token}
			}
		}

		request := Request{}

		if request.Source, err = list.Resolve(fields[0]); err != nil {
			return nil, err
		}
		if request.Signature, err = list.Resolve(fields[1]); err != nil {
			return nil, err
		}
		if len(fields) == 3 {
			if request.Keyring, err = list.Resolve(fields[2]); err != nil {
				return nil, err
			}
		}

		requests = append(requests, request)
	}

	return requests, nil
}
