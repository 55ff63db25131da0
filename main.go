package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wkbae/go-gallery-downloader/config"
	"github.com/wkbae/go-gallery-downloader/downloader"
	"github.com/wkbae/go-gallery-downloader/pool"
)

var flagKeys = map[string]string{
	"output":    "output.dir",
	"threads":   "download.threads",
	"retries":   "download.retries",
	"nlretry":   "download.nlretry",
	"jtitle":    "download.jtitle",
	"viewer":    "download.viewer",
	"log-level": "logging.level",
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "gallery-downloader [flags] <gallery-url>...",
		Short:         "Download every image of one or more galleries",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.NewViper(configPath)
			for name, key := range flagKeys {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
					return err
				}
			}
			return run(cmd.Context(), v, args)
		},
	}

	d := config.Default()
	cmd.Flags().StringVar(&configPath, "config", "", "path to config.yml")
	cmd.Flags().StringP("output", "o", d.Output.Dir, "directory galleries are saved under")
	cmd.Flags().IntP("threads", "t", d.Download.Threads, "number of concurrent image downloads")
	cmd.Flags().IntP("retries", "r", d.Download.Retries, "retry attempts per request")
	cmd.Flags().Bool("nlretry", d.Download.NLRetry, "retry failed images once through the reload link")
	cmd.Flags().Bool("jtitle", d.Download.JTitle, "prefer the japanese title for the directory name")
	cmd.Flags().Bool("viewer", d.Download.Viewer, "write an index.html viewer next to the images")
	cmd.Flags().String("log-level", d.Logging.Level, "log level")
	return cmd
}

func run(ctx context.Context, v *viper.Viper, urls []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel())
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logrus.NewEntry(logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := downloader.New(cfg.Download, downloader.Options{Logger: entry})

	var failed int
	for _, u := range urls {
		if err := downloadGallery(ctx, d, u, cfg.Output.Dir, entry); err != nil {
			entry.WithField("gallery", u).Errorf("%T %v", errors.Cause(err), err)
			failed++
		}
		if ctx.Err() != nil {
			break
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d galleries failed", failed, len(urls))
	}
	return nil
}

func downloadGallery(ctx context.Context, d *downloader.Downloader, galleryURL, saveDir string, logger *logrus.Entry) error {
	r, err := d.Start(ctx, galleryURL, saveDir)
	if err != nil {
		return err
	}
	logger = logger.WithField("run_id", r.ID)

	bar := progressbar.NewOptions(r.Total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(r.Title),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
	)

	var downloaded, failed int
	for ev := range r.Events {
		switch ev := ev.(type) {
		case pool.Downloaded:
			downloaded++
			logger.WithField("file", ev.FileName).Debug("download")
		case pool.Failed:
			failed++
			logger.WithError(ev.Err).WithField("file", ev.FileName).Warn("fail")
		case pool.Progress:
			_ = bar.Set(ev.Processed)
		case pool.Done:
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
		}
	}

	logger.WithFields(logrus.Fields{
		"dir":        r.Dir,
		"downloaded": downloaded,
		"failed":     failed,
	}).Info("finished gallery")
	return nil
}
