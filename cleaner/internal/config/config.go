package config

import (
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/prometheus"
)

type Config struct {
	MaxDepth  int    `json:",default=512"`
	Workers   int    `json:",default=4"`
	Surface   bool   `json:",optional"`
	NoConfirm bool   `json:",optional"`
	Progress  bool   `json:",default=true"`
	LogLevel  string `json:",default=info,options=debug|info|warn|error"`
	// Prometheus serves the cleaner counters while a run is in progress.
	// Disabled unless Host is set.
	Prometheus prometheus.Config `json:",optional"`
}

// Load reads the config file, or only fills defaults when path is empty.
func Load(path string) (*Config, error) {
	c := &Config{}
	var err error
	if path == "" {
		err = conf.FillDefault(c)
	} else {
		err = conf.Load(path, c)
	}
	if err != nil {
		return nil, errors.Annotate(err, "failed to load config")
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.MaxDepth < 1 {
		return errors.NotValidf("max depth %d", c.MaxDepth)
	}
	if c.Workers < 1 {
		return errors.NotValidf("workers %d", c.Workers)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.NotValidf("log level %q", c.LogLevel)
	}
	return nil
}

func (c *Config) SetUp() error {
	if err := c.Validate(); err != nil {
		return err
	}
	level, _ := logrus.ParseLevel(c.LogLevel)
	logrus.SetLevel(level)
	prometheus.StartAgent(c.Prometheus)
	return nil
}
