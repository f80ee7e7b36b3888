package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/readygate/readygate/sequence"
)

// TargetNone disables the readiness wait, the gate opens immediately.
const TargetNone = "none"

// Config is the gate configuration file. It carries the dependency to
// wait on, the poll policy, and the one-shot step sequence to run once
// the dependency is ready.
type Config struct {
	Target string     `yaml:"target"`
	Poll   PollConfig `yaml:"poll"`
	API    APIConfig  `yaml:"api"`

	Steps  []StepConfig `yaml:"steps"`
	Server StepConfig   `yaml:"server"`

	// TermGraceDelay is how long a child process gets between SIGTERM
	// and SIGKILL during shutdown.
	TermGraceDelay Duration `yaml:"term_grace_delay"`
}

type PollConfig struct {
	Interval     Duration `yaml:"interval"`
	ProbeTimeout Duration `yaml:"probe_timeout"`
	MaxAttempts  int      `yaml:"max_attempts"`
	MaxWait      Duration `yaml:"max_wait"`
}

type APIConfig struct {
	ListenAddress      string   `yaml:"listen_address"`
	ShutdownGraceDelay Duration `yaml:"shutdown_grace_delay"`
}

type StepConfig struct {
	Name     string   `yaml:"name"`
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
	Required bool     `yaml:"required"`
}

// Default is the configuration of the original entrypoint: poll the
// database port every 2s forever, migrate to head, then run the server
// on 0.0.0.0:8000.
func Default() Config {
	return Config{
		Target: "tcp://db:5432",
		Poll: PollConfig{
			Interval:     Duration(2 * time.Second),
			ProbeTimeout: Duration(5 * time.Second),
		},
		API: APIConfig{
			ListenAddress:      ":9095",
			ShutdownGraceDelay: Duration(15 * time.Second),
		},
		Steps: []StepConfig{
			{
				Name:     "migrate",
				Command:  "alembic",
				Args:     []string{"upgrade", "head"},
				Required: true,
			},
		},
		Server: StepConfig{
			Name:    "server",
			Command: "uvicorn",
			Args:    []string{"main:app", "--host", "0.0.0.0", "--port", "8000", "--reload"},
		},
		TermGraceDelay: Duration(10 * time.Second),
	}
}

// Load reads a gate file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	if err := yaml.UnmarshalStrict(fileBytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("malformed gate file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Target == "" {
		return errors.New("missing target")
	}

	if c.Poll.Interval <= 0 {
		return errors.New("invalid poll.interval, should be > 0")
	}

	if c.Poll.MaxAttempts < 0 {
		return errors.New("invalid poll.max_attempts, should be >= 0")
	}

	if c.Poll.MaxWait < 0 {
		return errors.New("invalid poll.max_wait, should be >= 0")
	}

	if c.API.ListenAddress == "" {
		return errors.New("missing api.listen_address")
	}

	for _, step := range c.Steps {
		if step.Name == "" {
			return errors.New("missing step name")
		}

		if step.Command == "" {
			return fmt.Errorf("missing command for step %q", step.Name)
		}
	}

	if c.Server.Command == "" {
		return errors.New("missing server command")
	}

	return nil
}

// SetupSteps are the steps to run once the gate opens, final server
// step excluded.
func (c *Config) SetupSteps() []sequence.Step {
	steps := make([]sequence.Step, 0, len(c.Steps))

	for _, step := range c.Steps {
		steps = append(steps, sequence.Step{
			Name:     step.Name,
			Command:  step.Command,
			Args:     step.Args,
			Required: step.Required,
		})
	}

	return steps
}

// ServerStep is the final long-running step. It is always required.
func (c *Config) ServerStep() sequence.Step {
	name := c.Server.Name
	if name == "" {
		name = "server"
	}

	return sequence.Step{
		Name:     name,
		Command:  c.Server.Command,
		Args:     c.Server.Args,
		Required: true,
	}
}
