package fetcher

import (
	"io"
	"net/http"
	"time"

	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	acceptHTML     = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.9"

	DefaultPageTimeout     = 12 * time.Second
	DefaultResponseTimeout = 60 * time.Second
	DefaultBodyTimeout     = 100 * time.Second
)

// Config describes a Client. Zero values fall back to the package defaults.
type Config struct {
	UserAgent string

	// Retries is the default number of extra attempts FetchText makes on
	// transient network errors.
	Retries int

	// PageTimeout bounds a single FetchText attempt.
	PageTimeout time.Duration

	// ResponseTimeout bounds the wait for response headers in DownloadToFile.
	ResponseTimeout time.Duration

	// BodyTimeout bounds the body transfer in DownloadToFile, measured from
	// the moment a 200 response arrives.
	BodyTimeout time.Duration

	// Transport is the base round tripper; http.DefaultTransport if nil.
	Transport http.RoundTripper

	Clock  clock.Clock
	Logger *logrus.Entry
}

type Client struct {
	userAgent   string
	retries     int
	pageTimeout time.Duration
	bodyTimeout time.Duration
	clock       clock.Clock
	logger      *logrus.Entry

	pageClient *http.Client
	fileClient *http.Client
}

func New(cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = DefaultPageTimeout
	}
	if cfg.ResponseTimeout <= 0 {
		cfg.ResponseTimeout = DefaultResponseTimeout
	}
	if cfg.BodyTimeout <= 0 {
		cfg.BodyTimeout = DefaultBodyTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	fileBase := base
	if t, ok := base.(*http.Transport); ok {
		t = t.Clone()
		t.ResponseHeaderTimeout = cfg.ResponseTimeout
		fileBase = t
	}

	return &Client{
		userAgent:   cfg.UserAgent,
		retries:     cfg.Retries,
		pageTimeout: cfg.PageTimeout,
		bodyTimeout: cfg.BodyTimeout,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
		pageClient: &http.Client{
			Transport: uaWrapper{UserAgent: cfg.UserAgent, Transport: base},
		},
		fileClient: &http.Client{
			Transport: uaWrapper{UserAgent: cfg.UserAgent, Transport: fileBase},
		},
	}
}

type uaWrapper struct {
	UserAgent string
	Transport http.RoundTripper
}

func (u uaWrapper) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", u.UserAgent)
	return u.Transport.RoundTrip(req)
}
