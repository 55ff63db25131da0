package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wkbae/go-gallery-downloader/config"
	"github.com/wkbae/go-gallery-downloader/content"
	"github.com/wkbae/go-gallery-downloader/detail"
	"github.com/wkbae/go-gallery-downloader/fetcher"
	"github.com/wkbae/go-gallery-downloader/list"
	"github.com/wkbae/go-gallery-downloader/metadata"
	"github.com/wkbae/go-gallery-downloader/pool"
	"github.com/wkbae/go-gallery-downloader/viewer"
)

// ConfigurationError reports a save location that cannot be used.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

type Downloader struct {
	cfg    config.DownloadConfig
	client *fetcher.Client
	clock  clock.Clock
	logger *logrus.Entry
}

// Options are optional collaborators; zero values select the defaults.
type Options struct {
	Transport http.RoundTripper
	Clock     clock.Clock
	Logger    *logrus.Entry
}

func New(cfg config.DownloadConfig, opts Options) *Downloader {
	if opts.Clock == nil {
		opts.Clock = clock.WallClock
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return &Downloader{
		cfg: cfg,
		client: fetcher.New(fetcher.Config{
			UserAgent: cfg.UserAgent,
			Retries:   cfg.Retries,
			Transport: opts.Transport,
			Clock:     opts.Clock,
			Logger:    opts.Logger,
		}),
		clock:  opts.Clock,
		logger: opts.Logger,
	}
}

// Run is a started gallery download.
type Run struct {
	ID     string
	Title  string
	Dir    string
	Total  int
	Events <-chan pool.Event
}

// Start resolves the gallery's title and image pages, creates the gallery
// directory under saveDir and starts downloading. Errors returned here abort
// the gallery before any image is downloaded; per-image failures are
// reported as pool.Failed events instead.
func (d *Downloader) Start(ctx context.Context, galleryURL, saveDir string) (*Run, error) {
	runID := uuid.New().String()
	logger := d.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"gallery": galleryURL,
	})

	if err := ensureDir(saveDir); err != nil {
		return nil, err
	}

	meta, err := metadata.Get(ctx, d.client, galleryURL)
	if err != nil {
		return nil, err
	}
	title, err := metadata.ChooseTitle(meta, d.cfg.JTitle)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(saveDir, title)
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	entries, err := list.Loader{Fetcher: d.client, Logger: logger}.Entries(ctx, galleryURL)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"title":  title,
		"images": len(entries),
	}).Info("starting gallery download")

	loader := content.Loader{
		Resolver:     detail.Loader{Fetcher: d.client},
		Downloader:   d.client,
		DownloadPath: dir,
		Retries:      d.cfg.Retries,
		ReloadRetry:  d.cfg.NLRetry,
		Clock:        d.clock,
		Logger:       logger,
	}
	events := pool.Pool{
		Downloader: loader,
		Threads:    d.cfg.Threads,
		Logger:     logger,
	}.Run(ctx, entries)

	if d.cfg.Viewer {
		out := make(chan pool.Event)
		go relayWithViewer(events, out, viewer.Page{BasePath: dir}, viewer.Info{
			Title:     title,
			SourceURL: meta.URL,
		}, logger)
		events = out
	}

	return &Run{
		ID:     runID,
		Title:  title,
		Dir:    dir,
		Total:  len(entries),
		Events: events,
	}, nil
}

// relayWithViewer forwards events and writes the viewer page before Done is
// passed on.
func relayWithViewer(in <-chan pool.Event, out chan<- pool.Event, page viewer.Page, info viewer.Info, logger *logrus.Entry) {
	defer close(out)
	for ev := range in {
		switch ev := ev.(type) {
		case pool.Downloaded:
			info.Images = append(info.Images, viewer.Image{Index: ev.Entry.Index, FileName: ev.FileName})
		case pool.Done:
			if err := page.Write(info); err != nil {
				logger.WithError(err).Warn("failed to write viewer page")
			}
		}
		out <- ev
	}
}

func ensureDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return errors.Wrapf(err, "failed to make directory %s", path)
		}
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", path)
	}
	if !info.IsDir() {
		return &ConfigurationError{Path: path, Reason: "is not a directory"}
	}
	return nil
}
