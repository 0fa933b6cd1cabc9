package source

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
)

// OptionsFileName is the tool's own per-package options file: it shares
// the keyring extension but is never trust material
const OptionsFileName = "gpgverify.gpg"

// Default filename extensions recognized by the classifier
var (
	DefaultSignatureExtensions = []string{".sig", ".asc", ".sign"}
	DefaultKeyringExtensions   = []string{".gpg", ".pgp", ".keyring"}
)

const (
	signatureMarker = "BEGIN PGP SIGNATURE"
	publicKeyMarker = "BEGIN PGP PUBLIC KEY BLOCK"

	// ASCII armor lines are short, 16K covers 10 of anything sane
	classifyReadLimit = 16 * 1024
	classifyLineLimit = 10
)

// Classifier labels declared source files as plain sources, detached
// signatures or public keyrings. Classification is pure: it never
// modifies the file and may be repeated.
type Classifier struct {
	SignatureExtensions []string
	KeyringExtensions   []string
}

// NewClassifier creates a classifier with default extension lists
func NewClassifier() *Classifier {
	return &Classifier{
		SignatureExtensions: DefaultSignatureExtensions,
		KeyringExtensions:   DefaultKeyringExtensions,
	}
}

// Classify derives the role of a single file. Extension checks run
// first (binary signatures and keyrings have no readable markers),
// content sniffing of the first lines settles the rest. Unreadable
// files are classified by extension alone.
func (c *Classifier) Classify(path string) Role {
	base := strings.ToLower(File{Path: path}.Base())

	if hasAnySuffix(base, c.SignatureExtensions) {
		return Signature
	}

	keyringName := base != OptionsFileName && hasAnySuffix(base, c.KeyringExtensions)

	head := readHead(path, classifyReadLimit)
	if head == nil || filetype.IsArchive(head) {
		// no marker scan for unreadable files or binary containers
		if keyringName {
			return Keyring
		}
		return Plain
	}

	if containsMarker(head, signatureMarker) {
		return Signature
	}

	if keyringName || containsMarker(head, publicKeyMarker) {
		return Keyring
	}

	return Plain
}

// ClassifyAll computes the role of every declared file once, keyed by
// path. Callers hold on to the result for the duration of the build
// instead of re-sniffing ad hoc.
func (l *List) ClassifyAll(c *Classifier) map[string]Role {
	roles := make(map[string]Role, len(l.files))
	for _, file := range l.files {
		roles[file.Path] = c.Classify(file.Path)
	}
	return roles
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func readHead(path string, limit int) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() {
		_ = f.Close()
	}()

	head := make([]byte, limit)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil
	}

	return head[:n]
}

// containsMarker scans at most the first classifyLineLimit lines,
// binary-safe, stopping at EOF
func containsMarker(head []byte, marker string) bool {
	lines := bytes.SplitN(head, []byte("\n"), classifyLineLimit+1)
	if len(lines) > classifyLineLimit {
		lines = lines[:classifyLineLimit]
	}
	for _, line := range lines {
		if bytes.Contains(line, []byte(marker)) {
			return true
		}
	}
	return false
}
