package main

import (
	"flag"
	"os"
	"time"

	"github.com/readygate/readygate/config"
)

type cliConfig struct {
	configPath string

	target       string
	pollInterval time.Duration
	probeTimeout time.Duration
	maxAttempts  int
	maxWait      time.Duration

	apiListenAddr         string
	apiShutdownGraceDelay time.Duration
	termGraceDelay        time.Duration
}

func newCLIConfig() cliConfig {
	return cliConfig{
		target: os.Getenv("READYGATE_TARGET"),
	}
}

func (c *cliConfig) setupFlags() {
	flag.StringVar(&c.configPath, "config", "", "Path of the readygate configuration file")
	flag.StringVar(&c.target, "target", c.target, "URL of the dependency to wait for, tcp://, postgres://, redis:// or http://, none skips the wait")
	flag.DurationVar(&c.pollInterval, "poll-interval", 0, "Delay between two readiness probes")
	flag.DurationVar(&c.probeTimeout, "probe-timeout", 0, "Timeout of a single readiness probe")
	flag.IntVar(&c.maxAttempts, "max-attempts", 0, "Maximum number of readiness probes, 0 waits forever")
	flag.DurationVar(&c.maxWait, "max-wait", 0, "Maximum total time waiting for readiness, 0 waits forever")
	flag.StringVar(&c.apiListenAddr, "api-listen-address", "", "Listen address of the gate API")
	flag.DurationVar(&c.apiShutdownGraceDelay, "api-shutdown-grace-delay", 0, "Grace delay for the gate API to shut down")
	flag.DurationVar(&c.termGraceDelay, "term-grace-delay", 0, "Delay between SIGTERM and SIGKILL for child processes")
}

// apply overlays explicitly set flags on top of the gate file. The
// target also applies when seeded from READYGATE_TARGET.
func (c *cliConfig) apply(cfg *config.Config, isSet func(name string) bool) {
	if c.target != "" {
		cfg.Target = c.target
	}

	if isSet("poll-interval") {
		cfg.Poll.Interval = config.Duration(c.pollInterval)
	}

	if isSet("probe-timeout") {
		cfg.Poll.ProbeTimeout = config.Duration(c.probeTimeout)
	}

	if isSet("max-attempts") {
		cfg.Poll.MaxAttempts = c.maxAttempts
	}

	if isSet("max-wait") {
		cfg.Poll.MaxWait = config.Duration(c.maxWait)
	}

	if isSet("api-listen-address") {
		cfg.API.ListenAddress = c.apiListenAddr
	}

	if isSet("api-shutdown-grace-delay") {
		cfg.API.ShutdownGraceDelay = config.Duration(c.apiShutdownGraceDelay)
	}

	if isSet("term-grace-delay") {
		cfg.TermGraceDelay = config.Duration(c.termGraceDelay)
	}
}

func setFlags() func(name string) bool {
	set := map[string]bool{}

	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	return func(name string) bool { return set[name] }
}
