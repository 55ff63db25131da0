package viewer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(PageTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type PageTestSuite struct{}

func (s *PageTestSuite) TestWriteListsImagesInIndexOrder(c *check.C) {
	dir := c.MkDir()
	err := Page{BasePath: dir}.Write(Info{
		Title:     "Some <Title>",
		SourceURL: "https://e-hentai.org/g/1/abc/",
		Images: []Image{
			{Index: 2, FileName: "2.jpg"},
			{Index: 0, FileName: "0.jpg"},
			{Index: 10, FileName: "10.jpg"},
		},
	})
	c.Assert(err, check.IsNil)

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	c.Assert(err, check.IsNil)
	page := string(data)

	c.Assert(strings.Contains(page, "Some &lt;Title&gt;"), check.Equals, true)
	first := strings.Index(page, `src="0.jpg"`)
	second := strings.Index(page, `src="2.jpg"`)
	third := strings.Index(page, `src="10.jpg"`)
	c.Assert(first >= 0 && first < second && second < third, check.Equals, true, check.Commentf("%s", page))
}

func (s *PageTestSuite) TestCustomFileName(c *check.C) {
	dir := c.MkDir()
	c.Assert(Page{BasePath: dir, FileName: "view.html"}.Write(Info{Title: "t"}), check.IsNil)
	_, err := os.Stat(filepath.Join(dir, "view.html"))
	c.Assert(err, check.IsNil)
}
