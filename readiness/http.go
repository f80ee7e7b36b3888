package readiness

import (
	"context"
	"fmt"
	"net/http"
)

type httpProber struct {
	url string

	httpClient *http.Client
}

// NewHTTPProber checks readiness with a GET request, any 2xx answer
// counts as ready.
func NewHTTPProber(url string) Prober {
	return &httpProber{
		url:        url,
		httpClient: http.DefaultClient,
	}
}

func (p *httpProber) Name() string { return "http" }

func (p *httpProber) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return err
	}

	rsp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer func() { _ = rsp.Body.Close() }()

	if rsp.StatusCode < http.StatusOK || rsp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code: %d", rsp.StatusCode)
	}

	return nil
}
