package mapping

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

// BatchResult is the outcome of analyzing a set of devices.
type BatchResult struct {
	Results  []Result            `json:"results"`
	Summary  common.BatchSummary `json:"summary"`
	Duration time.Duration       `json:"duration_ns"`
}

// AnalyzeBatch maps a whole device set.  Devices sharing a signature are
// grouped and analyzed once; the group result is then instantiated per
// device.  Groups run in parallel under the configured bound (default
// GOMAXPROCS).  Per-device failures never abort the batch; they are
// counted in the summary.
func (e *Engine) AnalyzeBatch(ctx context.Context, snaps []device.Snapshot, parallelism int) BatchResult {
	start := time.Now()
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	// Group by signature preserving first-seen order.
	type group struct {
		signature string
		members   []int
	}
	order := make([]*group, 0, len(snaps))
	bySignature := make(map[string]*group, len(snaps))
	for i, snap := range snaps {
		sig := snap.Signature()
		g, ok := bySignature[sig]
		if !ok {
			g = &group{signature: sig}
			bySignature[sig] = g
			order = append(order, g)
		}
		g.members = append(g.members, i)
	}

	results := make([]Result, len(snaps))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)
	for _, g := range order {
		g := g
		eg.Go(func() error {
			groupStart := time.Now()
			template := e.Analyze(egCtx, snaps[g.members[0]])
			results[g.members[0]] = template
			for _, i := range g.members[1:] {
				out := template
				out.ElementID = snaps[i].ElementID
				out.Enhanced = enhance(snaps[i], template.Specification)
				out.CacheHit = true
				out.Duration = time.Since(groupStart)
				results[i] = out
			}
			return nil
		})
	}
	// Workers only report per-device outcomes, never errors.
	_ = eg.Wait()

	summary := common.BatchSummary{TotalProcessed: len(snaps)}
	for i, r := range results {
		if r.Success {
			summary.Succeeded++
			continue
		}
		summary.Failed++
		summary.Errors = append(summary.Errors, common.BatchError{
			Index: i,
			Error: common.ErrorDetail{
				Code:    string(apperrors.GetCode(r.Err)),
				Message: r.ErrorDetail,
			},
		})
	}

	elapsed := time.Since(start)
	e.log.Info("batch analysis complete",
		logging.Int("devices", summary.TotalProcessed),
		logging.Int("groups", len(order)),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", elapsed))
	if e.metrics != nil {
		outcome := "ok"
		if summary.Failed > 0 {
			outcome = "partial"
		}
		e.metrics.BatchSize.WithLabelValues(outcome).Observe(float64(summary.TotalProcessed))
		e.metrics.BatchDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	}
	return BatchResult{Results: results, Summary: summary, Duration: elapsed}
}
