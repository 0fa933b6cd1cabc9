package pgp

import (
	"os"
	"path/filepath"
	"runtime"

	. "gopkg.in/check.v1"
)

type FinderSuite struct {
	bins     string
	origPath string
}

var _ = Suite(&FinderSuite{})

func (s *FinderSuite) SetUpSuite(c *C) {
	_, file, _, _ := runtime.Caller(0)
	s.bins = filepath.Join(filepath.Dir(file), "testdata", "bins")
}

func (s *FinderSuite) SetUpTest(c *C) {
	s.origPath = os.Getenv("PATH")
}

func (s *FinderSuite) TearDownTest(c *C) {
	_ = os.Setenv("PATH", s.origPath)
}

func (s *FinderSuite) TestGPG2Finder(c *C) {
	_ = os.Setenv("PATH", filepath.Join(s.bins, "gnupg2"))

	gpg, version, err := GPG2Finder().FindGPG()
	c.Assert(err, IsNil)
	c.Check(gpg, Equals, "gpg")
	c.Check(version, Equals, GPG21xPlus)

	gpgv, _, err := GPG2Finder().FindGPGV()
	c.Assert(err, IsNil)
	c.Check(gpgv, Equals, "gpgv")
}

func (s *FinderSuite) TestGPG1Finder(c *C) {
	_ = os.Setenv("PATH", filepath.Join(s.bins, "gnupg1"))

	gpg, version, err := GPG1Finder().FindGPG()
	c.Assert(err, IsNil)
	c.Check(gpg, Equals, "gpg")
	c.Check(version, Equals, GPG1x)
}

func (s *FinderSuite) TestGPG1FinderMismatch(c *C) {
	_ = os.Setenv("PATH", filepath.Join(s.bins, "gnupg2"))

	_, _, err := GPG1Finder().FindGPG()
	c.Assert(err, ErrorMatches, "couldn't find gnupg1.*")
}

// GnuPG2 wins when both generations are available
func (s *FinderSuite) TestDefaultFinderPrefers2(c *C) {
	_ = os.Setenv("PATH", filepath.Join(s.bins, "gnupg2")+string(os.PathListSeparator)+filepath.Join(s.bins, "gnupg1"))

	_, version, err := GPGDefaultFinder().FindGPG()
	c.Assert(err, IsNil)
	c.Check(version, Equals, GPG21xPlus)
}

func (s *FinderSuite) TestDefaultFinderFallsBackTo1(c *C) {
	_ = os.Setenv("PATH", filepath.Join(s.bins, "gnupg1"))

	_, version, err := GPGDefaultFinder().FindGPG()
	c.Assert(err, IsNil)
	c.Check(version, Equals, GPG1x)
}

func (s *FinderSuite) TestNothingFound(c *C) {
	_ = os.Setenv("PATH", c.MkDir())

	_, _, err := GPGDefaultFinder().FindGPG()
	c.Assert(err, ErrorMatches, "couldn't find a suitable gpg executable.*")
}
