package pool

import (
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wkbae/go-gallery-downloader/list"
)

// EntryDownloader downloads one entry and returns the path it writes to.
// content.Loader satisfies it.
type EntryDownloader interface {
	Download(ctx context.Context, entry list.Entry) (string, error)
}

// Pool runs Threads workers over a shared queue of entries.
type Pool struct {
	Downloader EntryDownloader
	Threads    int
	Logger     *logrus.Entry
}

type run struct {
	downloader EntryDownloader
	logger     *logrus.Entry
	events     chan Event

	queueMu sync.Mutex
	queue   []list.Entry

	reportMu  sync.Mutex
	processed int
	total     int
}

// Run starts the workers and returns the event channel. Every entry yields
// exactly one Downloaded or Failed event followed by a Progress event; a
// single Done event follows the last one and the channel is then closed.
// The caller must drain the channel.
func (p Pool) Run(ctx context.Context, entries []list.Entry) <-chan Event {
	threads := p.Threads
	if threads < 1 {
		threads = 1
	}
	logger := p.Logger
	if logger == nil {
		logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	r := &run{
		downloader: p.Downloader,
		logger:     logger,
		events:     make(chan Event, threads),
		queue:      append([]list.Entry(nil), entries...),
		total:      len(entries),
	}

	if r.total == 0 {
		r.events <- Done{}
		close(r.events)
		return r.events
	}

	for i := 0; i < threads; i++ {
		go r.worker(ctx)
	}
	return r.events
}

func (r *run) worker(ctx context.Context) {
	for {
		entry, ok := r.claim()
		if !ok {
			return
		}
		path, err := r.downloader.Download(ctx, entry)
		r.report(entry, path, err)
	}
}

func (r *run) claim() (list.Entry, bool) {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()

	if len(r.queue) == 0 {
		return list.Entry{}, false
	}
	entry := r.queue[0]
	r.queue = r.queue[1:]
	return entry, true
}

func (r *run) report(entry list.Entry, path string, err error) {
	r.reportMu.Lock()
	defer r.reportMu.Unlock()

	var fileName string
	if path != "" {
		fileName = filepath.Base(path)
	}
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"index": entry.Index,
			"url":   entry.PageURL,
		}).WithError(err).Debug("entry failed")
		r.events <- Failed{Entry: entry, FileName: fileName, Err: err}
	} else {
		r.events <- Downloaded{Entry: entry, FileName: fileName}
	}

	r.processed++
	r.events <- Progress{Processed: r.processed, Total: r.total}

	if r.processed == r.total {
		r.events <- Done{}
		close(r.events)
	}
}
