package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/wkbae/go-gallery-downloader/fetcher"
)

// Config is read once before any download starts and is not modified
// afterwards.
type Config struct {
	Download DownloadConfig `mapstructure:"download"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type DownloadConfig struct {
	UserAgent string `mapstructure:"userAgent"`
	Retries   int    `mapstructure:"retries"`
	NLRetry   bool   `mapstructure:"nlretry"`
	Threads   int    `mapstructure:"threads"`
	JTitle    bool   `mapstructure:"jtitle"`
	// Viewer writes an index.html next to the images after a run.
	Viewer bool `mapstructure:"viewer"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

const envPrefix = "GALLERYDL"

func Default() *Config {
	return &Config{
		Download: DownloadConfig{
			UserAgent: fetcher.DefaultUserAgent,
			Retries:   0,
			NLRetry:   false,
			Threads:   3,
			JTitle:    false,
			Viewer:    false,
		},
		Output: OutputConfig{
			Dir: "downloads",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// NewViper returns a viper instance with the defaults registered, reading
// config.yml from path if given, otherwise from the working directory and
// the user config directory. Environment variables prefixed with GALLERYDL_
// override file values.
func NewViper(path string) *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("download.userAgent", d.Download.UserAgent)
	v.SetDefault("download.retries", d.Download.Retries)
	v.SetDefault("download.nlretry", d.Download.NLRetry)
	v.SetDefault("download.threads", d.Download.Threads)
	v.SetDefault("download.jtitle", d.Download.JTitle)
	v.SetDefault("download.viewer", d.Download.Viewer)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("logging.level", d.Logging.Level)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "gallery-downloader"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration held by v. A missing config file is not an
// error when no explicit path was given.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "error parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var err error

	if strings.TrimSpace(c.Download.UserAgent) == "" {
		err = multierror.Append(err, fmt.Errorf("user agent must not be empty"))
	}
	if c.Download.Retries < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for retries, must be >= 0"))
	}
	if c.Download.Threads < 1 {
		err = multierror.Append(err, fmt.Errorf("invalid value for threads, must be > 0"))
	}
	if _, perr := logrus.ParseLevel(c.Logging.Level); perr != nil {
		err = multierror.Append(err, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	return err
}

func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
