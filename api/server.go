package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/readygate/readygate/phase"
)

type Server struct {
	httpSrv http.Server

	shutdownGraceDelay time.Duration
}

type Config struct {
	ListenAddress      string
	ShutdownGraceDelay time.Duration
}

// PhaseStatus is the answer of the phase endpoint.
type PhaseStatus struct {
	Phase string    `json:"phase"`
	Since time.Time `json:"since"`
}

// NewServer exposes the gate over HTTP: current phase as JSON, liveness
// and readiness endpoints for orchestrator probes, and metrics.
func NewServer(cfg Config, tracker *phase.Tracker, metricsRegistry prometheus.Gatherer) *Server {
	var mux http.ServeMux

	mux.HandleFunc("/readygate/phase", func(rw http.ResponseWriter, r *http.Request) {
		current, since := tracker.Current()

		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusOK)

		_ = json.NewEncoder(rw).Encode(PhaseStatus{
			Phase: string(current),
			Since: since,
		})
	})
	mux.HandleFunc("/readygate/healthz", func(rw http.ResponseWriter, r *http.Request) { rw.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/readygate/readyz", func(rw http.ResponseWriter, r *http.Request) {
		current, _ := tracker.Current()

		if current != phase.Serving {
			http.Error(rw, string(current), http.StatusServiceUnavailable)
			return
		}

		rw.WriteHeader(http.StatusOK)
	})
	mux.Handle("/readygate/metrics", promhttp.HandlerFor(
		metricsRegistry,
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	))

	return &Server{
		shutdownGraceDelay: cfg.ShutdownGraceDelay,
		httpSrv: http.Server{
			Addr:    cfg.ListenAddress,
			Handler: &mux,
		},
	}
}

func (s *Server) Serve(ctx context.Context) error {
	// Buffered so the goroutine does not leak when ListenAndServe
	// fails at bind time and nobody reads the shutdown result.
	shutdownDone := make(chan error, 1)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownGraceDelay)
		defer cancel()

		err := s.httpSrv.Shutdown(shutdownCtx)
		if err != nil {
			klog.Info("Server shutdown reported an error, forcing close")
			err = s.httpSrv.Close()
		}

		shutdownDone <- err
	}()

	if err := s.httpSrv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	return <-shutdownDone
}
