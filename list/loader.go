package list

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wkbae/go-gallery-downloader/fetcher"
)

// Entry is one per-image page of a gallery. Index is the page's position in
// the gallery and names the downloaded file.
type Entry struct {
	Index   int
	PageURL string
}

const (
	navBarSelector    = ".gtb"
	navLinkSelector   = "a[href]"
	imageLinkSelector = "#gdt > .gdtm a[href], #gdt > .gdtl a[href]"
)

// TextFetcher is satisfied by *fetcher.Client.
type TextFetcher interface {
	FetchText(ctx context.Context, url string, opts ...fetcher.Option) (string, error)
}

type Loader struct {
	Fetcher TextFetcher
	Logger  *logrus.Entry
}

// Entries returns every per-image page of the gallery tagged with its index.
func (l Loader) Entries(ctx context.Context, galleryURL string) ([]Entry, error) {
	urls, err := l.ImagePageURLs(ctx, galleryURL)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(urls))
	for i, u := range urls {
		entries[i] = Entry{Index: i, PageURL: u}
	}
	return entries, nil
}

// ImagePageURLs collects the per-image page links of every navigation page
// of the gallery, in navigation order.
func (l Loader) ImagePageURLs(ctx context.Context, galleryURL string) ([]string, error) {
	firstURL, err := NormalizeGalleryURL(galleryURL)
	if err != nil {
		return nil, err
	}

	doc, base, err := l.loadPage(ctx, firstURL)
	if err != nil {
		return nil, err
	}
	navLinks := parseNavLinks(doc, base)
	if len(navLinks) == 0 {
		return nil, &fetcher.ParseError{URL: firstURL, What: "no page navigation links"}
	}
	if len(navLinks) > 1 {
		// last one is the "next page" arrow
		navLinks = navLinks[:len(navLinks)-1]
	}
	l.logger().WithFields(logrus.Fields{
		"gallery":   firstURL,
		"nav_pages": len(navLinks),
	}).Debug("found gallery navigation pages")

	results := make([][]string, len(navLinks))
	g, gctx := errgroup.WithContext(ctx)
	for i, navLink := range navLinks {
		i, navLink := i, navLink
		g.Go(func() error {
			doc, base, err := l.loadPage(gctx, navLink)
			if err != nil {
				return err
			}
			results[i] = parseImageLinks(doc, base)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var urls []string
	for _, links := range results {
		urls = append(urls, links...)
	}
	return urls, nil
}

// NormalizeGalleryURL drops the page number query parameter and fragment so
// the URL points at the first page of the gallery.
func NormalizeGalleryURL(galleryURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(galleryURL))
	if err != nil {
		return "", errors.Wrapf(err, "invalid gallery url \"%s\"", galleryURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("invalid gallery url \"%s\"", galleryURL)
	}
	q := u.Query()
	q.Del("p")
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}

func (l Loader) loadPage(ctx context.Context, pageURL string) (*goquery.Document, *url.URL, error) {
	body, err := l.Fetcher.FetchText(ctx, pageURL, fetcher.WithHeader("Cookie", "nw=1"))
	if err != nil {
		return nil, nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to parse body from \"%s\"", pageURL)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	return doc, base, nil
}

func (l Loader) logger() *logrus.Entry {
	if l.Logger == nil {
		return logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return l.Logger
}

func parseNavLinks(doc *goquery.Document, baseURL *url.URL) []string {
	return resolveHrefs(doc.Find(navBarSelector).First().Find(navLinkSelector), baseURL)
}

func parseImageLinks(doc *goquery.Document, baseURL *url.URL) []string {
	return resolveHrefs(doc.Find(imageLinkSelector), baseURL)
}

func resolveHrefs(sel *goquery.Selection, baseURL *url.URL) []string {
	var links []string
	sel.Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		links = append(links, baseURL.ResolveReference(ref).String())
	})
	return links
}
