package content

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/wkbae/go-gallery-downloader/detail"
	"github.com/wkbae/go-gallery-downloader/list"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/wkbae/go-gallery-downloader/content PageResolver,FileDownloader

const DefaultRetryDelay = time.Second

// PageResolver is satisfied by detail.Loader.
type PageResolver interface {
	Resolve(ctx context.Context, pageURL string) (detail.PageInfo, error)
}

// FileDownloader is satisfied by *fetcher.Client.
type FileDownloader interface {
	DownloadToFile(ctx context.Context, url, path string) error
}

// Loader downloads the image behind a single gallery entry.
type Loader struct {
	Resolver   PageResolver
	Downloader FileDownloader

	DownloadPath string

	// Retries is the number of extra attempts made against the resolved
	// image URL after the first one fails.
	Retries int

	// ReloadRetry enables one final attempt through the page's reload link
	// once Retries are used up.
	ReloadRetry bool

	// RetryDelay defaults to DefaultRetryDelay.
	RetryDelay time.Duration

	Clock  clock.Clock
	Logger *logrus.Entry
}

// FileName is the name an entry's image is saved under.
func FileName(entry list.Entry) string {
	return fmt.Sprintf("%d.jpg", entry.Index)
}

// Download fetches the entry's image into DownloadPath and returns the
// written path. The page is resolved once; the resolved image URL is retried
// as is. A failure to resolve the page is not retried. RetryDelay is waited
// after every failed attempt that is followed by another one, including the
// reload attempt.
func (l Loader) Download(ctx context.Context, entry list.Entry) (string, error) {
	logger := l.logger().WithFields(logrus.Fields{
		"index": entry.Index,
		"url":   entry.PageURL,
	})
	path := filepath.Join(l.DownloadPath, FileName(entry))

	info, err := l.Resolver.Resolve(ctx, entry.PageURL)
	if err != nil {
		return path, err
	}

	attempts := l.Retries + 1
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		err = l.Downloader.DownloadToFile(ctx, info.ImageURL, path)
		if err == nil {
			return path, nil
		}
		logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"err":     err,
		}).Debug("image download attempt failed")

		if attempt == attempts && !l.ReloadRetry {
			break
		}
		if werr := l.wait(ctx); werr != nil {
			return path, l.cleanup(path, err)
		}
	}

	if !l.ReloadRetry {
		return path, l.cleanup(path, err)
	}

	logger.Debug("retrying through reload link")
	reloaded, rerr := l.Resolver.Resolve(ctx, info.ReloadURL)
	if rerr != nil {
		return path, l.cleanup(path, rerr)
	}
	if err = l.Downloader.DownloadToFile(ctx, reloaded.ImageURL, path); err != nil {
		return path, l.cleanup(path, err)
	}
	return path, nil
}

func (l Loader) wait(ctx context.Context) error {
	delay := l.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	clk := l.Clock
	if clk == nil {
		clk = clock.WallClock
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-clk.After(delay):
		return nil
	}
}

// cleanup removes a partially written image and passes err through.
func (l Loader) cleanup(path string, err error) error {
	if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
		l.logger().WithField("path", path).WithError(rmErr).Warn("failed to remove partial download")
	}
	return err
}

func (l Loader) logger() *logrus.Entry {
	if l.Logger == nil {
		return logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return l.Logger
}
