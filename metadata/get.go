package metadata

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/wkbae/go-gallery-downloader/fetcher"
	"github.com/wkbae/go-gallery-downloader/list"
)

// Metadata holds the two titles a gallery page carries: the romanized
// (#gn) and the original-script (#gj) one.
type Metadata struct {
	URL    string
	NTitle string
	JTitle string
}

var ErrEmptyTitle = errors.New("gallery title is empty")

type TextFetcher interface {
	FetchText(ctx context.Context, url string, opts ...fetcher.Option) (string, error)
}

func Get(ctx context.Context, f TextFetcher, galleryURL string) (Metadata, error) {
	detailsURL, err := list.NormalizeGalleryURL(galleryURL)
	if err != nil {
		return Metadata{}, err
	}
	body, err := f.FetchText(ctx, detailsURL, fetcher.WithHeader("Cookie", "nw=1"))
	if err != nil {
		return Metadata{}, errors.Wrapf(err, "failed to get metadata from \"%s\"", detailsURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Metadata{}, errors.Wrapf(err, "failed to parse body from \"%s\"", detailsURL)
	}

	gn := doc.Find("#gn")
	gj := doc.Find("#gj")
	if gn.Length() == 0 && gj.Length() == 0 {
		return Metadata{}, &fetcher.ParseError{URL: detailsURL, What: "gallery title elements not found"}
	}

	return Metadata{
		URL:    detailsURL,
		NTitle: textContent(gn),
		JTitle: textContent(gj),
	}, nil
}

// ChooseTitle picks the directory name for a gallery. A blank title always
// loses to a non-blank one regardless of preferJapanese.
func ChooseTitle(m Metadata, preferJapanese bool) (string, error) {
	title := m.NTitle
	if preferJapanese {
		title = m.JTitle
	}
	if strings.TrimSpace(m.JTitle) == "" {
		title = m.NTitle
	}
	if strings.TrimSpace(m.NTitle) == "" {
		title = m.JTitle
	}

	title = SanitizeFileName(title)
	if strings.TrimSpace(title) == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}

func textContent(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
	return b.String()
}
