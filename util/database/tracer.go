package database

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"webbooks/util/metrics"

	"github.com/jackc/pgx/v5"
)

type traceKey struct{}

type traceStart struct {
	at  time.Time
	sql string
}

// Tracer times every query for the db metrics and logs SQL at debug level.
type Tracer struct {
	Log *slog.Logger
}

func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{at: time.Now(), sql: data.SQL})
}

func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	d := time.Since(st.at)
	op := Operation(st.sql)
	metrics.ObserveQuery(op, d, data.Err)
	if t.Log != nil {
		t.Log.Debug("sql", "op", op, "duration_ms", d.Milliseconds(), "rows", data.CommandTag.RowsAffected(), "query", st.sql, "err", data.Err)
	}
}

// Operation is the lower-cased leading keyword of a statement.
func Operation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
