package pgp

import (
	"os"
	"path/filepath"

	. "gopkg.in/check.v1"
)

type GoVerifierSuite struct {
	verifier Verifier
}

var _ = Suite(&GoVerifierSuite{})

func (s *GoVerifierSuite) SetUpSuite(c *C) {
	s.verifier = &GoVerifier{}
	c.Assert(s.verifier.Init(), IsNil)
}

func (s *GoVerifierSuite) TestDearmor(c *C) {
	destination := filepath.Join(c.MkDir(), "pubring.gpg")

	err := s.verifier.Dearmor(filepath.Join("testdata", "upstream.asc"), destination)
	c.Assert(err, IsNil)

	// armor stripped down to the exact binary export
	dearmored, err := os.ReadFile(destination)
	c.Assert(err, IsNil)

	binary, err := os.ReadFile(filepath.Join("testdata", "upstream.bin"))
	c.Assert(err, IsNil)

	c.Check(dearmored, DeepEquals, binary)
}

func (s *GoVerifierSuite) TestDearmorBinaryPassthrough(c *C) {
	destination := filepath.Join(c.MkDir(), "pubring.gpg")

	err := s.verifier.Dearmor(filepath.Join("testdata", "upstream.bin"), destination)
	c.Assert(err, IsNil)

	_, err = ReadKeyMaterial(destination)
	c.Check(err, IsNil)
}

func (s *GoVerifierSuite) TestVerifyDetachedArmored(c *C) {
	keyInfo, err := s.verifier.VerifyDetached(
		filepath.Join("testdata", "upstream.bin"),
		filepath.Join("testdata", "pkg.tar.asc"),
		filepath.Join("testdata", "pkg.tar"))
	c.Assert(err, IsNil)
	c.Check(keyInfo.GoodKeys, DeepEquals, []Key{"876FA4FEF0F6BB56"})
}

func (s *GoVerifierSuite) TestVerifyDetachedBinary(c *C) {
	keyInfo, err := s.verifier.VerifyDetached(
		filepath.Join("testdata", "upstream.bin"),
		filepath.Join("testdata", "pkg.tar.sig"),
		filepath.Join("testdata", "pkg.tar"))
	c.Assert(err, IsNil)
	c.Check(keyInfo.GoodKeys, DeepEquals, []Key{"876FA4FEF0F6BB56"})
}

func (s *GoVerifierSuite) TestVerifyDetachedUnknownKey(c *C) {
	keyInfo, err := s.verifier.VerifyDetached(
		filepath.Join("testdata", "other.asc"),
		filepath.Join("testdata", "pkg.tar.asc"),
		filepath.Join("testdata", "pkg.tar"))
	c.Assert(err, ErrorMatches, "verification of .* failed.*")
	c.Check(keyInfo.MissingKeys, DeepEquals, []Key{"876FA4FEF0F6BB56"})
}

func (s *GoVerifierSuite) TestVerifyDetachedTampered(c *C) {
	tampered := filepath.Join(c.MkDir(), "pkg.tar")
	err := os.WriteFile(tampered, []byte("not what was signed"), 0644)
	c.Assert(err, IsNil)

	_, err = s.verifier.VerifyDetached(
		filepath.Join("testdata", "upstream.bin"),
		filepath.Join("testdata", "pkg.tar.asc"),
		tampered)
	c.Assert(err, NotNil)
}
