package readiness

import (
	"context"
	"fmt"
	"net/url"
)

// Prober performs a single readiness check against a dependency. A nil
// return means the dependency accepted the check; any error means it is
// not ready yet.
type Prober interface {
	Name() string
	Probe(ctx context.Context) error
}

// ProberFor builds a prober from a target URL. The scheme selects the
// probe: tcp, postgres, redis or http(s).
func ProberFor(target string) (Prober, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target %q: %w", target, err)
	}

	switch u.Scheme {
	case "tcp":
		return NewTCPProber(u.Host), nil
	case "postgres", "postgresql":
		return NewPostgresProber(target), nil
	case "redis", "rediss":
		return NewRedisProber(target)
	case "http", "https":
		return NewHTTPProber(target), nil
	default:
		return nil, fmt.Errorf("unsupported target scheme %q", u.Scheme)
	}
}
