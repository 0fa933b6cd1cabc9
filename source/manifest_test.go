package source

import (
	"strings"

	check "gopkg.in/check.v1"
)

type ManifestSuite struct{}

var _ = check.Suite(&ManifestSuite{})

func (s *ManifestSuite) TestParseManifest(c *check.C) {
	list, err := ParseManifest(strings.NewReader(`
# declared sources
pkg-1.0.tar.xz
pkg-1.0.tar.xz.sig

17: upstream.gpg
extra.patch
`))
	c.Assert(err, check.IsNil)
	c.Assert(list.Len(), check.Equals, 4)

	c.Check(list.Files()[0], check.DeepEquals, File{Path: "pkg-1.0.tar.xz", Number: 0})
	c.Check(list.Files()[1], check.DeepEquals, File{Path: "pkg-1.0.tar.xz.sig", Number: 1})
	c.Check(list.Files()[2], check.DeepEquals, File{Path: "upstream.gpg", Number: 17})

	// bare paths continue above the highest declared number
	c.Check(list.Files()[3], check.DeepEquals, File{Path: "extra.patch", Number: 18})
}

func (s *ManifestSuite) TestParseManifestDuplicateNumber(c *check.C) {
	_, err := ParseManifest(strings.NewReader("3: a.tar\n3: b.tar\n"))
	c.Assert(err, check.ErrorMatches, "source number 3 declared twice.*")
}

func (s *ManifestSuite) TestParseManifestEmpty(c *check.C) {
	list, err := ParseManifest(strings.NewReader("\n# nothing declared\n"))
	c.Assert(err, check.IsNil)
	c.Check(list.Len(), check.Equals, 0)
}

func (s *ManifestSuite) TestLoadManifestMissing(c *check.C) {
	_, err := LoadManifest("/nonexistent/SOURCES")
	c.Assert(err, check.NotNil)
}
