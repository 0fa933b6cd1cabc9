// Package plan reconciles explicit pairing requests with automatic
// signature discovery into one ordered verification plan.
package plan

import (
	"fmt"

	"github.com/gpgverify-dev/gpgverify/source"
)

// Request is a single requested verification unit as given by the
// package author. Keyring is nil when the request relies on the
// default keyring. Requests are never mutated after parsing.
type Request struct {
	Source    *source.File
	Signature *source.File
	Keyring   *source.File
}

// Triple is the final resolved unit of verification work: all three
// members are declared files with concrete paths
type Triple struct {
	Source    *source.File
	Signature *source.File
	Keyring   *source.File
}

func (t Triple) String() string {
	return fmt.Sprintf("%s: signature %s, keyring %s", t.Source.Base(), t.Signature.Base(), t.Keyring.Base())
}

// ParseError is returned for a pairing argument that doesn't match the
// 2- or 3-field grammar
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed pairing argument %q: expected source,signature or source,signature,keyring", e.Token)
}

// ConflictError is returned when explicit requests and discovered
// keyrings can't be reconciled into a plan
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// GapError is returned when a signature has no matching source file to
// pair with
type GapError struct {
	Signature string
}

func (e *GapError) Error() string {
	return fmt.Sprintf("signature %s found with no matching source file", e.Signature)
}
