package health

import (
	"context"
	"time"

	"github.com/sandeepkv93/identity-core/internal/observability"

	"golang.org/x/sync/errgroup"
)

type CheckResult struct {
	Name      string `json:"name"`
	Healthy   bool   `json:"healthy"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ProbeRunner runs every checker concurrently, each under its own timeout.
type ProbeRunner struct {
	checkers []Checker
	timeout  time.Duration
}

// NewProbeRunner drops nil checkers so optional dependencies can be passed
// unconditionally.
func NewProbeRunner(timeout time.Duration, checkers ...Checker) *ProbeRunner {
	if timeout <= 0 {
		timeout = time.Second
	}
	active := make([]Checker, 0, len(checkers))
	for _, c := range checkers {
		if c != nil {
			active = append(active, c)
		}
	}
	return &ProbeRunner{checkers: active, timeout: timeout}
}

// Ready reports whether all checks passed. Results keep checker order.
func (r *ProbeRunner) Ready(ctx context.Context) (bool, []CheckResult) {
	if r == nil {
		return true, nil
	}
	results := make([]CheckResult, len(r.checkers))
	var g errgroup.Group
	for i, c := range r.checkers {
		g.Go(func() error {
			results[i] = r.run(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	ready := true
	for _, res := range results {
		ready = ready && res.Healthy
	}
	return ready, results
}

func (r *ProbeRunner) run(ctx context.Context, c Checker) CheckResult {
	checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	err := c.Check(checkCtx)
	elapsed := time.Since(start)

	res := CheckResult{Name: c.Name(), Healthy: err == nil, LatencyMS: elapsed.Milliseconds()}
	outcome := "healthy"
	if err != nil {
		res.Error = err.Error()
		outcome = "unhealthy"
	}
	observability.RecordHealthCheckResult(ctx, res.Name, outcome)
	observability.RecordHealthCheckDuration(ctx, res.Name, elapsed)
	return res
}
