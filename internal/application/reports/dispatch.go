package reports

import (
	"context"
	"errors"
	"time"

	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
	"github.com/alexisbeaulieu97/extreports/internal/report"
	reporterrors "github.com/alexisbeaulieu97/extreports/pkg/errors"
)

// FailurePolicy decides what a generator failure does to the entries after it.
type FailurePolicy string

const (
	// FailFast stops at the first failing generator.
	FailFast FailurePolicy = "fail-fast"
	// CollectAll runs every generator and returns the joined failures.
	CollectAll FailurePolicy = "collect-all"
)

// Dispatcher fans a requested report list out to generators.
type Dispatcher struct {
	registry ports.ReportRegistry
	policy   FailurePolicy
	logger   *logger.Logger
	events   ports.EventPublisher
}

// NewDispatcher constructs a Dispatcher. An empty policy means FailFast.
func NewDispatcher(registry ports.ReportRegistry, policy FailurePolicy, log *logger.Logger, publisher ports.EventPublisher) *Dispatcher {
	if policy == "" {
		policy = FailFast
	}
	return &Dispatcher{registry: registry, policy: policy, logger: log, events: publisher}
}

// Dispatch generates every report named in rawReports, in order, from
// sourceDirectory. The whole list is validated before any generator runs, so
// an unknown name means nothing is generated.
func (d *Dispatcher) Dispatch(ctx context.Context, rawReports, sourceDirectory string) error {
	names := report.ParseKinds(rawReports)
	if len(names) == 0 {
		d.logger.Debug("no additional reports requested")
		return nil
	}

	d.logger.Info("additional reports", "reports", names, "source", sourceDirectory)

	if err := d.registry.Validate(names); err != nil {
		return err
	}

	var failures []error
	for i, name := range names {
		if err := d.generate(ctx, i, name, sourceDirectory); err != nil {
			if d.policy == FailFast {
				return err
			}
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

func (d *Dispatcher) generate(ctx context.Context, position int, name, sourceDirectory string) error {
	publishEvent(ctx, d.events, d.logger, ports.EventReportStarted, map[string]interface{}{"report": name, "position": position})
	started := time.Now()

	gen, err := d.registry.Generator(name)
	if err == nil {
		err = gen.GenerateReportFrom(ctx, sourceDirectory)
	}
	elapsed := time.Since(started)

	if err != nil {
		err = reporterrors.NewGenerationError(name, err)
		d.logger.Error(err, "report generation failed", "report", name)
		publishEvent(ctx, d.events, d.logger, ports.EventReportFailed, map[string]interface{}{
			"report":      name,
			"position":    position,
			"duration_ms": elapsed.Milliseconds(),
			"error":       err.Error(),
		})
		return err
	}

	d.logger.Info("report generated", "report", name, "duration_ms", elapsed.Milliseconds())
	publishEvent(ctx, d.events, d.logger, ports.EventReportCompleted, map[string]interface{}{
		"report":      name,
		"position":    position,
		"duration_ms": elapsed.Milliseconds(),
	})
	return nil
}

