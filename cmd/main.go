package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/readygate/readygate/api"
	"github.com/readygate/readygate/config"
	"github.com/readygate/readygate/phase"
	"github.com/readygate/readygate/readiness"
	"github.com/readygate/readygate/sequence"
)

func main() {
	var (
		cfg         = newCLIConfig()
		ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	)

	defer cancel()
	cfg.setupFlags()

	flag.Parse()

	gateCfg := config.Default()

	if cfg.configPath != "" {
		var err error

		gateCfg, err = config.Load(cfg.configPath)
		if err != nil {
			klog.Fatal("Can't load the gate file: ", err)
		}
	}

	cfg.apply(&gateCfg, setFlags())

	if err := gateCfg.Validate(); err != nil {
		klog.Fatal("Invalid configuration: ", err)
	}

	metricsRegistry := prometheus.NewRegistry()
	tracker := phase.NewTracker(metricsRegistry)

	waiter, err := buildWaiter(gateCfg, metricsRegistry)
	if err != nil {
		klog.Fatal("Can't build the readiness waiter: ", err)
	}

	runner := sequence.NewRunner(
		sequence.WithMetrics(
			metricsRegistry,
			sequence.NewExecutor(gateCfg.TermGraceDelay.Std()),
		),
	)

	apiServer := api.NewServer(
		api.Config{
			ListenAddress:      gateCfg.API.ListenAddress,
			ShutdownGraceDelay: gateCfg.API.ShutdownGraceDelay.Std(),
		},
		tracker,
		metricsRegistry,
	)

	grp, grpCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		return apiServer.Serve(grpCtx)
	})

	grp.Go(func() error {
		// Stop the API server once the gate run is over.
		defer cancel()

		return runGate(grpCtx, gateCfg, tracker, waiter, runner)
	})

	if err := grp.Wait(); err != nil {
		var stepErr *sequence.StepError

		if errors.As(err, &stepErr) {
			klog.ErrorS(err, "Setup step failed", "step", stepErr.Step, "exit_code", stepErr.ExitCode())
			os.Exit(stepErr.ExitCode())
		}

		klog.ErrorS(err, "Gate failed")
		os.Exit(1)
	}
}

// buildWaiter picks the waiter from the target, a "none" target opens
// the gate without waiting.
func buildWaiter(cfg config.Config, reg prometheus.Registerer) (readiness.Waiter, error) {
	if cfg.Target == config.TargetNone {
		return readiness.NoopWaiter{}, nil
	}

	prober, err := readiness.ProberFor(cfg.Target)
	if err != nil {
		return nil, err
	}

	return readiness.NewPoll(
		readiness.PollConfig{
			PollPeriod:   cfg.Poll.Interval.Std(),
			ProbeTimeout: cfg.Poll.ProbeTimeout.Std(),
			MaxAttempts:  cfg.Poll.MaxAttempts,
			MaxWait:      cfg.Poll.MaxWait.Std(),
		},
		readiness.WithMetrics(reg, prober),
	), nil
}

// runGate drives the lifecycle: wait for the dependency, run the setup
// steps, then hand off to the server process and supervise it.
func runGate(
	ctx context.Context,
	cfg config.Config,
	tracker *phase.Tracker,
	waiter readiness.Waiter,
	runner *sequence.Runner,
) error {
	if err := waiter.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}

		_ = tracker.To(phase.Failed)

		return err
	}

	if err := tracker.To(phase.Migrating); err != nil {
		return err
	}

	if err := runner.Run(ctx, cfg.SetupSteps()); err != nil {
		_ = tracker.To(phase.Failed)

		return err
	}

	if ctx.Err() != nil {
		return nil
	}

	if err := tracker.To(phase.Serving); err != nil {
		return err
	}

	if err := runner.Run(ctx, []sequence.Step{cfg.ServerStep()}); err != nil {
		_ = tracker.To(phase.Failed)

		return err
	}

	return nil
}
