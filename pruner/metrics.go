package pruner

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("pruner")

type metrics struct {
	prunedCounter metric.Int64Counter

	lastPruned metric.Int64ObservableGauge

	clientReg metric.Registration
}

// WithMetrics enables OTel metrics collection for the pruning Service.
func (s *Service) WithMetrics() error {
	prunedCounter, err := meter.Int64Counter("prnr_pruned_counter",
		metric.WithDescription("pruner sweep counter"))
	if err != nil {
		return err
	}

	lastPruned, err := meter.Int64ObservableGauge("prnr_last_pruned",
		metric.WithDescription("pruner highest pruned height"))
	if err != nil {
		return err
	}

	callback := func(_ context.Context, observer metric.Observer) error {
		observer.ObserveInt64(lastPruned, int64(s.checkpoint.LastPrunedHeight))
		return nil
	}

	clientReg, err := meter.RegisterCallback(callback, lastPruned)
	if err != nil {
		return err
	}

	s.metrics = &metrics{
		prunedCounter: prunedCounter,
		lastPruned:    lastPruned,
		clientReg:     clientReg,
	}
	return nil
}

func (m *metrics) close() error {
	if m == nil {
		return nil
	}
	return m.clientReg.Unregister()
}

func (m *metrics) observePrune(ctx context.Context, failed bool) {
	if m == nil {
		return
	}
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	m.prunedCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("failed", failed)))
}
