package pgp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Test interface
var (
	_ Verifier = &GpgVerifier{}
)

// GpgVerifier is implementation of Verifier interface using gpg and
// gpgv as external programs: gpg dearmors keyrings, gpgv checks
// detached signatures
type GpgVerifier struct {
	gpg     string
	gpgv    string
	version GPGVersion
}

// NewGpgVerifier creates a new gpg verifier, discovering matching gpg
// and gpgv executables
func NewGpgVerifier(finder GPGFinder) (*GpgVerifier, error) {
	gpg, versionGPG, err := finder.FindGPG()
	if err != nil {
		return nil, err
	}

	gpgv, versionGPGV, err := finder.FindGPGV()
	if err != nil {
		return nil, err
	}

	if versionGPG != versionGPGV {
		return nil, errors.New("gpg and gpgv versions don't match")
	}

	return &GpgVerifier{gpg: gpg, gpgv: gpgv, version: versionGPG}, nil
}

// Init verifies that gpg and gpgv are available
func (g *GpgVerifier) Init() error {
	for _, bin := range []string{g.gpg, g.gpgv} {
		output, err := exec.Command(bin, "--version").CombinedOutput()
		if err != nil {
			return fmt.Errorf("unable to execute %s: %s (is gnupg installed?): %s", bin, err, string(output))
		}
	}

	return nil
}

// Dearmor converts an ASCII-armored public keyring into its binary
// form at destination
func (g *GpgVerifier) Dearmor(keyring, destination string) error {
	args := []string{"--batch", "--yes", "--no-auto-check-trustdb", "-o", destination, "--dearmor", keyring}

	output, err := exec.Command(g.gpg, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("dearmoring of %s failed: %s: %s", keyring, err, string(output))
	}

	return nil
}

// VerifyDetached checks a detached signature against cleartext using
// only keys in keyring
func (g *GpgVerifier) VerifyDetached(keyring, signature, cleartext string) (*KeyInfo, error) {
	args := []string{"--keyring", keyring, signature, cleartext}
	return g.runGpgv(args, fmt.Sprintf("%s with %s", cleartext, signature))
}

func (g *GpgVerifier) runGpgv(args []string, context string) (*KeyInfo, error) {
	args = append([]string{"--status-fd", "3"}, args...)
	cmd := exec.Command(g.gpgv, args...)

	tempf, err := os.CreateTemp("", "gpgverify-status")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tempf.Close()
	}()

	err = os.Remove(tempf.Name())
	if err != nil {
		return nil, err
	}

	cmd.ExtraFiles = []*os.File{tempf}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = stderr.Close()
	}()

	err = cmd.Start()
	if err != nil {
		return nil, err
	}

	buffer := &bytes.Buffer{}

	_, err = io.Copy(io.MultiWriter(os.Stderr, buffer), stderr)
	if err != nil {
		return nil, err
	}

	cmderr := cmd.Wait()

	_, _ = tempf.Seek(0, 0)

	statusr := bufio.NewScanner(tempf)

	result := &KeyInfo{}

	for statusr.Scan() {
		line := strings.TrimSpace(statusr.Text())

		if strings.HasPrefix(line, "[GNUPG:] GOODSIG ") {
			result.GoodKeys = append(result.GoodKeys, Key(strings.Fields(line)[2]))
		} else if strings.HasPrefix(line, "[GNUPG:] NO_PUBKEY ") {
			result.MissingKeys = append(result.MissingKeys, Key(strings.Fields(line)[2]))
		}
	}

	if err = statusr.Err(); err != nil {
		return nil, err
	}

	if cmderr != nil {
		if details := strings.TrimSpace(buffer.String()); details != "" {
			return result, fmt.Errorf("verification of %s failed: %s: %s", context, cmderr, details)
		}
		return result, fmt.Errorf("verification of %s failed: %s", context, cmderr)
	}

	return result, nil
}
