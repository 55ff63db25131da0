package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(ConfigTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type ConfigTestSuite struct {
	dir string
}

func (s *ConfigTestSuite) SetUpTest(c *check.C) {
	s.dir = c.MkDir()
}

func (s *ConfigTestSuite) writeConfig(c *check.C, body string) string {
	path := filepath.Join(s.dir, "config.yml")
	c.Assert(os.WriteFile(path, []byte(body), 0644), check.IsNil)
	return path
}

func (s *ConfigTestSuite) TestLoadFile(c *check.C) {
	path := s.writeConfig(c, `
download:
  userAgent: "test-agent/1.0"
  retries: 3
  nlretry: true
  threads: 5
  jtitle: true
output:
  dir: /tmp/galleries
logging:
  level: debug
`)
	cfg, err := Load(NewViper(path))
	c.Assert(err, check.IsNil)
	c.Assert(cfg.Download, check.DeepEquals, DownloadConfig{
		UserAgent: "test-agent/1.0",
		Retries:   3,
		NLRetry:   true,
		Threads:   5,
		JTitle:    true,
	})
	c.Assert(cfg.Output.Dir, check.Equals, "/tmp/galleries")
	c.Assert(cfg.LogLevel(), check.Equals, logrus.DebugLevel)
}

func (s *ConfigTestSuite) TestMissingFieldsUseDefaults(c *check.C) {
	path := s.writeConfig(c, "download:\n  threads: 2\n")
	cfg, err := Load(NewViper(path))
	c.Assert(err, check.IsNil)
	c.Assert(cfg.Download.Retries, check.Equals, 0)
	c.Assert(cfg.Download.NLRetry, check.Equals, false)
	c.Assert(cfg.Download.Threads, check.Equals, 2)
	c.Assert(cfg.Download.UserAgent, check.Equals, Default().Download.UserAgent)
}

func (s *ConfigTestSuite) TestEnvironmentOverridesFile(c *check.C) {
	path := s.writeConfig(c, "download:\n  retries: 1\n")
	c.Assert(os.Setenv("GALLERYDL_DOWNLOAD_RETRIES", "4"), check.IsNil)
	defer os.Unsetenv("GALLERYDL_DOWNLOAD_RETRIES")

	cfg, err := Load(NewViper(path))
	c.Assert(err, check.IsNil)
	c.Assert(cfg.Download.Retries, check.Equals, 4)
}

func (s *ConfigTestSuite) TestExplicitMissingFileFails(c *check.C) {
	_, err := Load(NewViper(filepath.Join(s.dir, "nope.yml")))
	c.Assert(err, check.NotNil)
}

func (s *ConfigTestSuite) TestValidation(c *check.C) {
	cfg := Default()
	c.Assert(cfg.Validate(), check.IsNil)

	cfg = Default()
	cfg.Download.Threads = 0
	c.Assert(cfg.Validate(), check.ErrorMatches, "(?ms).*invalid value for threads.*")

	cfg = Default()
	cfg.Download.Retries = -1
	c.Assert(cfg.Validate(), check.ErrorMatches, "(?ms).*invalid value for retries.*")

	cfg = Default()
	cfg.Download.UserAgent = " "
	cfg.Logging.Level = "loud"
	err := cfg.Validate()
	c.Assert(err, check.ErrorMatches, "(?ms).*user agent must not be empty.*")
	c.Assert(err, check.ErrorMatches, "(?ms).*invalid log level.*")

	path := s.writeConfig(c, "download:\n  threads: 0\n")
	_, err = Load(NewViper(path))
	c.Assert(err, check.ErrorMatches, "(?ms).*invalid value for threads.*")
}
