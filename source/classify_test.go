package source

import (
	"os"
	"path/filepath"

	check "gopkg.in/check.v1"
)

type ClassifySuite struct {
	classifier *Classifier
	tempDir    string
}

var _ = check.Suite(&ClassifySuite{})

const armoredSignature = `-----BEGIN PGP SIGNATURE-----

iHUEABYKAB0WIQSfg2zHDIoXgpZKZ/KHb6T+8Pa7VgUCZKq1MQAKCRCHb6T+8Pa7
VjKWAP9ZuQQduhdEHPi5SGrbXCmm2rcyAmd3scw9/JKOUS7dlQD/Zc0rBsUfqiLB
-----END PGP SIGNATURE-----
`

const armoredPublicKey = `-----BEGIN PGP PUBLIC KEY BLOCK-----

mDMEZKq1IBYJKwYBBAHaRw8BAQdAf7/WaTGApB3GLv4idBLHfeKBfeK5Y3CqCfY5
dGVzdCBrZXkgPHRlc3RAZXhhbXBsZS5jb20+
-----END PGP PUBLIC KEY BLOCK-----
`

func (s *ClassifySuite) SetUpSuite(c *check.C) {
	s.classifier = NewClassifier()
}

func (s *ClassifySuite) SetUpTest(c *check.C) {
	s.tempDir = c.MkDir()
}

func (s *ClassifySuite) write(c *check.C, name string, contents []byte) string {
	path := filepath.Join(s.tempDir, name)
	err := os.WriteFile(path, contents, 0644)
	c.Assert(err, check.IsNil)
	return path
}

func (s *ClassifySuite) TestSignatureByExtension(c *check.C) {
	// binary signatures carry no readable marker, the extension decides
	for _, name := range []string{"pkg.tar.sig", "pkg.tar.asc", "pkg.tar.sign"} {
		path := s.write(c, name, []byte{0x88, 0x75, 0x04, 0x00})
		c.Check(s.classifier.Classify(path), check.Equals, Signature, check.Commentf("name: %s", name))
	}
}

func (s *ClassifySuite) TestSignatureByContent(c *check.C) {
	path := s.write(c, "pkg.tar.detached", []byte(armoredSignature))
	c.Check(s.classifier.Classify(path), check.Equals, Signature)
}

func (s *ClassifySuite) TestKeyringByExtension(c *check.C) {
	for _, name := range []string{"upstream.gpg", "upstream.pgp", "upstream.keyring"} {
		path := s.write(c, name, []byte{0x98, 0x33, 0x04})
		c.Check(s.classifier.Classify(path), check.Equals, Keyring, check.Commentf("name: %s", name))
	}
}

func (s *ClassifySuite) TestKeyringByContent(c *check.C) {
	path := s.write(c, "KEYS", []byte(armoredPublicKey))
	c.Check(s.classifier.Classify(path), check.Equals, Keyring)
}

func (s *ClassifySuite) TestOptionsFileNeverKeyring(c *check.C) {
	path := s.write(c, OptionsFileName, []byte("keyserver hkps://keys.example.com\n"))
	c.Check(s.classifier.Classify(path), check.Equals, Plain)
}

func (s *ClassifySuite) TestPlainSource(c *check.C) {
	path := s.write(c, "README", []byte("just a text file\nwith some lines\n"))
	c.Check(s.classifier.Classify(path), check.Equals, Plain)
}

func (s *ClassifySuite) TestArchiveFastPath(c *check.C) {
	// gzip magic: recognized container skips the marker scan
	path := s.write(c, "pkg-1.0.tar.gz", []byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00})
	c.Check(s.classifier.Classify(path), check.Equals, Plain)
}

func (s *ClassifySuite) TestMarkerBeatsKeyringExtension(c *check.C) {
	// content inspection outranks the keyring extension hint
	path := s.write(c, "odd.gpg", []byte(armoredSignature))
	c.Check(s.classifier.Classify(path), check.Equals, Signature)
}

func (s *ClassifySuite) TestMarkerBeyondLineLimit(c *check.C) {
	contents := []byte("line\nline\nline\nline\nline\nline\nline\nline\nline\nline\n" + armoredSignature)
	path := s.write(c, "deep-marker", contents)
	c.Check(s.classifier.Classify(path), check.Equals, Plain)
}

func (s *ClassifySuite) TestUnreadableByExtension(c *check.C) {
	c.Check(s.classifier.Classify(filepath.Join(s.tempDir, "gone.sig")), check.Equals, Signature)
	c.Check(s.classifier.Classify(filepath.Join(s.tempDir, "gone.gpg")), check.Equals, Keyring)
	c.Check(s.classifier.Classify(filepath.Join(s.tempDir, "gone.tar")), check.Equals, Plain)
}

func (s *ClassifySuite) TestClassifyAll(c *check.C) {
	tarball := s.write(c, "pkg.tar", []byte("contents"))
	signature := s.write(c, "pkg.tar.sig", []byte{0x88, 0x75})
	keyring := s.write(c, "upstream.gpg", []byte{0x98, 0x33})

	list, err := NewList([]File{
		{Path: tarball, Number: 0},
		{Path: signature, Number: 1},
		{Path: keyring, Number: 2},
	})
	c.Assert(err, check.IsNil)

	roles := list.ClassifyAll(s.classifier)
	c.Check(roles, check.DeepEquals, map[string]Role{
		tarball:   Plain,
		signature: Signature,
		keyring:   Keyring,
	})
}
