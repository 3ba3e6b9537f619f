package aggregates

import (
	"context"
	"strings"
	"time"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const tracerName = "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/aggregates"

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
	Guard  Guard
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.Guard.db == nil {
		d.Guard = NewGuard(d.DB)
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}

// executeWrite runs fn in one transaction and maps, logs, traces and reports the outcome.
func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	deps = deps.withDefaults()
	return observe(ctx, deps, op, "write", func(ctx context.Context) error {
		return deps.Runner.InTx(ctx, fn)
	})
}

// executeRead runs fn outside a transaction on the pooled handle.
func executeRead(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	deps = deps.withDefaults()
	return observe(ctx, deps, op, "read", func(ctx context.Context) error {
		return fn(dbctx.New(ctx))
	})
}

func observe(ctx context.Context, deps BaseDeps, op, kind string, run func(ctx context.Context) error) error {
	start := time.Now()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate." + kind
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("aggregate.kind", kind)),
	)
	defer span.End()

	mapped := MapError(op, run(ctx))

	status := "success"
	if mapped != nil {
		status = aggregateErrorStatus(mapped)
		span.RecordError(mapped)
		span.SetStatus(codes.Error, status)
		switch domainagg.CodeOf(mapped) {
		case domainagg.CodeConflict:
			deps.Hooks.IncConflict(op)
		case domainagg.CodeRetryable:
			deps.Hooks.IncRetry(op)
		}
		logFailure(deps.Log, op, mapped)
	}
	span.SetAttributes(attribute.String("aggregate.status", status))
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}

// Business failures are expected outcomes; store failures carry the full cause.
func logFailure(log *logger.Logger, op string, err error) {
	switch domainagg.CodeOf(err) {
	case domainagg.CodeStore, domainagg.CodeRetryable:
		log.Error("Aggregate store failure", "op", op, "code", domainagg.CodeOf(err), "error", err)
	default:
		log.Debug("Aggregate operation rejected", "op", op, "code", domainagg.CodeOf(err), "reason", domainagg.PublicMessage(err))
	}
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		code = strings.TrimSpace(string(domainagg.CodeOf(MapError("aggregate.status", err))))
	}
	if code == "" {
		return "failure"
	}
	return code
}

// rejectInput reports a failure found before any store access.
func rejectInput(deps BaseDeps, op string, err error) error {
	deps = deps.withDefaults()
	mapped := MapError(op, err)
	deps.Hooks.ObserveOperation(op, aggregateErrorStatus(mapped), 0)
	logFailure(deps.Log, op, mapped)
	return mapped
}
