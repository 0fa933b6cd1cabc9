package source

import (
	"fmt"
	"strconv"
	"strings"
)

// ReferenceError is returned when a source reference doesn't resolve
// to exactly one declared file
type ReferenceError struct {
	Ref    string
	Reason string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unable to resolve source reference %q: %s", e.Ref, e.Reason)
}

// Resolve maps a source reference to the declared file it denotes.
// A numeric reference is matched against declared source numbers,
// anything else against base filenames. References never contain
// directory components.
func (l *List) Resolve(ref string) (*File, error) {
	if strings.ContainsAny(ref, `/\`) {
		return nil, &ReferenceError{Ref: ref, Reason: "path separators are not allowed in source references"}
	}

	if number, err := strconv.Atoi(ref); err == nil {
		for i := range l.files {
			if l.files[i].Number == number {
				return &l.files[i], nil
			}
		}
		return nil, &ReferenceError{Ref: ref,
			Reason: fmt.Sprintf("no source number %d declared (the primary source is number 0)", number)}
	}

	var found *File
	for i := range l.files {
		if l.files[i].Base() != ref {
			continue
		}
		if found != nil {
			return nil, &ReferenceError{Ref: ref, Reason: "name matches more than one declared source"}
		}
		found = &l.files[i]
	}

	if found == nil {
		return nil, &ReferenceError{Ref: ref, Reason: "no declared source with that name"}
	}

	return found, nil
}
