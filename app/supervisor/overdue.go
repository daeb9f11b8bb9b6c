package supervisor

import (
	"context"
	"log/slog"
	"time"

	"webbooks/util/metrics"
)

type OverdueCounter interface {
	OverdueCount(ctx context.Context) (int64, error)
}

// OverdueMonitor counts overdue copies every interval, publishes the
// count as a gauge and warns when it is non-zero.
type OverdueMonitor struct {
	c        OverdueCounter
	interval time.Duration
	log      *slog.Logger
}

func NewOverdueMonitor(c OverdueCounter, interval time.Duration, log *slog.Logger) *OverdueMonitor {
	if interval <= 0 {
		interval = time.Hour
	}
	if log == nil {
		log = slog.Default()
	}
	return &OverdueMonitor{c: c, interval: interval, log: log}
}

func (m *OverdueMonitor) Serve(ctx context.Context) error {
	m.check(ctx)

	tick := time.NewTicker(m.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			m.check(ctx)
		}
	}
}

// check never fails the service; a database hiccup is retried next tick.
func (m *OverdueMonitor) check(ctx context.Context) {
	n, err := m.c.OverdueCount(ctx)
	if err != nil {
		if ctx.Err() == nil {
			m.log.Error("overdue check failed", "err", err)
		}
		return
	}
	metrics.SetOverdueCopies(n)
	if n > 0 {
		m.log.Warn("overdue copies", "count", n)
	}
}

func (m *OverdueMonitor) String() string { return "overdue-monitor" }
