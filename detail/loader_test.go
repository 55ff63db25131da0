package detail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/wkbae/go-gallery-downloader/fetcher"
)

var _ = check.Suite(new(ResolveTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

const imagePage = `<html><body><div id="i1">
<div id="i3"><a onclick="return load_image(2, 'bbb')" href="/s/bbb/1-2"><img id="img" src="https://h1.example.org/h/abc/keystamp/0.jpg" style="height:1000px"></a></div>
<div id="i6"><a href="#" id="loadfail" onclick="return nl('43512-466190')">Reload broken image</a></div>
</div></body></html>`

type ResolveTestSuite struct {
	srv    *httptest.Server
	pages  map[string]string
	loader Loader
}

func (s *ResolveTestSuite) SetUpTest(c *check.C) {
	s.pages = make(map[string]string)
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.Check(r.Header.Get("Cookie"), check.Equals, "")
		body, ok := s.pages[r.URL.RequestURI()]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	s.loader = Loader{Fetcher: fetcher.New(fetcher.Config{})}
}

func (s *ResolveTestSuite) TearDownTest(c *check.C) {
	s.srv.Close()
}

func (s *ResolveTestSuite) TestResolve(c *check.C) {
	s.pages["/s/aaa/1-1"] = imagePage

	info, err := s.loader.Resolve(context.TODO(), s.srv.URL+"/s/aaa/1-1")
	c.Assert(err, check.IsNil)
	c.Assert(info, check.DeepEquals, PageInfo{
		ImageURL:  "https://h1.example.org/h/abc/keystamp/0.jpg",
		NextURL:   s.srv.URL + "/s/bbb/1-2",
		ReloadURL: s.srv.URL + "/s/aaa/1-1?nl=43512-466190",
	})
}

func (s *ResolveTestSuite) TestResolveReloadPage(c *check.C) {
	s.pages["/s/aaa/1-1?nl=43512-466190"] = imagePage

	info, err := s.loader.Resolve(context.TODO(), s.srv.URL+"/s/aaa/1-1?nl=43512-466190")
	c.Assert(err, check.IsNil)
	c.Assert(info.ReloadURL, check.Equals, s.srv.URL+"/s/aaa/1-1?nl=43512-466190&nl=43512-466190")
}

func (s *ResolveTestSuite) TestMissingReloadToken(c *check.C) {
	s.pages["/s/ccc/1-3"] = `<html><body><a href="/s/ddd/1-4"><img id="img" src="/x.jpg"></a></body></html>`

	_, err := s.loader.Resolve(context.TODO(), s.srv.URL+"/s/ccc/1-3")
	c.Assert(err, check.FitsTypeOf, &fetcher.ParseError{})
	c.Assert(err, check.ErrorMatches, ".*reload token not found.*")
}

func (s *ResolveTestSuite) TestMissingImage(c *check.C) {
	s.pages["/s/eee/1-5"] = `<html><body><p>Key missing, or incorrect key provided.</p></body></html>`

	_, err := s.loader.Resolve(context.TODO(), s.srv.URL+"/s/eee/1-5")
	c.Assert(err, check.FitsTypeOf, &fetcher.ParseError{})
}

func (s *ResolveTestSuite) TestFetchErrorPropagates(c *check.C) {
	_, err := s.loader.Resolve(context.TODO(), s.srv.URL+"/s/missing/1-9")
	c.Assert(err, check.FitsTypeOf, &fetcher.HTTPStatusError{})
}

func (s *ResolveTestSuite) TestReloadURL(c *check.C) {
	c.Assert(ReloadURL("https://e-hentai.org/s/a/1-1", "tok"), check.Equals, "https://e-hentai.org/s/a/1-1?nl=tok")
	c.Assert(ReloadURL("https://e-hentai.org/s/a/1-1?x=1", "tok"), check.Equals, "https://e-hentai.org/s/a/1-1?x=1&nl=tok")
}
