// Package probe checks whether the remote offers API is reachable.
package probe

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	healthPath   = "/offers/"
	probeTimeout = 5 * time.Second
)

// Probe issues a single GET against <BaseURL>/offers/.
type Probe struct {
	BaseURL string
	// Timeout bounds one probe; zero means 5s.
	Timeout time.Duration
	client  *http.Client
	log     *zap.Logger
}

// New constructs a Probe for the API at baseURL.
func New(baseURL string, log *zap.Logger) *Probe {
	if log == nil {
		log = zap.NewNop()
	}
	return &Probe{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: probeTimeout,
		client:  &http.Client{},
		log:     log.Named("probe"),
	}
}

// IsReachable returns true only when the API answers with a 2xx status
// within the timeout. Network errors, timeouts and other statuses all
// yield false. It never retries.
func (p *Probe) IsReachable(ctx context.Context) bool {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = probeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+healthPath, nil)
	if err != nil {
		p.log.Debug("build probe request", zap.Error(err))
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Debug("offers API unreachable", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.log.Debug("offers API unhealthy", zap.Int("status", resp.StatusCode))
		return false
	}
	return true
}
