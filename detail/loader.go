package detail

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/wkbae/go-gallery-downloader/fetcher"
)

// PageInfo is what a single image page points at. It is never cached: the
// image server behind ImageURL may change between visits.
type PageInfo struct {
	ImageURL string
	// NextURL is the adjacent image page the image links to.
	NextURL   string
	ReloadURL string
}

var reloadTokenPattern = regexp.MustCompile(`return nl\('([^']*)'\)`)

type TextFetcher interface {
	FetchText(ctx context.Context, url string, opts ...fetcher.Option) (string, error)
}

type Loader struct {
	Fetcher TextFetcher
}

func (l Loader) Resolve(ctx context.Context, pageURL string) (PageInfo, error) {
	body, err := l.Fetcher.FetchText(ctx, pageURL)
	if err != nil {
		return PageInfo{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return PageInfo{}, errors.Wrapf(err, "failed to parse body from \"%s\"", pageURL)
	}
	baseURL, err := url.Parse(pageURL)
	if err != nil {
		return PageInfo{}, errors.WithStack(err)
	}

	img := doc.Find("#img").First()
	src, ok := img.Attr("src")
	if !ok {
		return PageInfo{}, &fetcher.ParseError{URL: pageURL, What: "image element #img not found"}
	}
	imageURL, err := resolve(baseURL, src)
	if err != nil {
		return PageInfo{}, &fetcher.ParseError{URL: pageURL, What: "invalid image source " + src}
	}

	var nextURL string
	if href, ok := img.Parent().Filter("a").Attr("href"); ok {
		nextURL, _ = resolve(baseURL, href)
	}

	onclick := doc.Find("#loadfail").AttrOr("onclick", "")
	mat := reloadTokenPattern.FindStringSubmatch(onclick)
	if len(mat) < 2 {
		return PageInfo{}, &fetcher.ParseError{URL: pageURL, What: "reload token not found"}
	}

	return PageInfo{
		ImageURL:  imageURL,
		NextURL:   nextURL,
		ReloadURL: ReloadURL(pageURL, mat[1]),
	}, nil
}

// ReloadURL appends the nl reload token to an image page URL.
func ReloadURL(pageURL, token string) string {
	sep := "?"
	if strings.Contains(pageURL, "?") {
		sep = "&"
	}
	return pageURL + sep + "nl=" + token
}

func resolve(baseURL *url.URL, ref string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(u).String(), nil
}
