package aggregates

import (
	"context"
	"errors"
	"testing"
	"time"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
)

func TestExecuteWriteObservesSuccessStatus(t *testing.T) {
	hooks := &spyHooks{}
	runner := &spyTxRunner{}

	err := executeWrite(context.Background(), BaseDeps{
		Runner: runner,
		Hooks:  hooks,
	}, "aggregate.test.success", func(_ dbctx.Context) error { return nil })
	if err != nil {
		t.Fatalf("executeWrite success: %v", err)
	}
	if runner.calls != 1 {
		t.Fatalf("runner calls: want=1 got=%d", runner.calls)
	}
	if len(hooks.Operations) != 1 {
		t.Fatalf("operations count: want=1 got=%d", len(hooks.Operations))
	}
	if hooks.Operations[0].Status != "success" {
		t.Fatalf("operation status: want=success got=%s", hooks.Operations[0].Status)
	}
}

func TestExecuteWriteKeepsBusinessMessage(t *testing.T) {
	hooks := &spyHooks{}

	err := executeWrite(context.Background(), BaseDeps{
		Runner: &spyTxRunner{},
		Hooks:  hooks,
	}, "aggregate.test.notfound", func(_ dbctx.Context) error {
		return NotFoundError("customer does not exist")
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got=%v", err)
	}
	if got := domainagg.PublicMessage(err); got != "customer does not exist" {
		t.Fatalf("public message: got=%q", got)
	}
	if hooks.Operations[0].Status != string(domainagg.CodeNotFound) {
		t.Fatalf("operation status: got=%s", hooks.Operations[0].Status)
	}
}

func TestExecuteWriteHidesStoreDiagnostics(t *testing.T) {
	err := executeWrite(context.Background(), BaseDeps{
		Runner: &spyTxRunner{},
		Hooks:  &spyHooks{},
	}, "aggregate.test.store", func(_ dbctx.Context) error {
		return errors.New("dial tcp 10.0.0.7:5432: connection refused")
	})
	if !domainagg.IsCode(err, domainagg.CodeStore) {
		t.Fatalf("expected store code, got=%v", err)
	}
	if got := domainagg.PublicMessage(err); got != domainagg.GenericStoreMessage {
		t.Fatalf("public message leaked diagnostics: %q", got)
	}
	if domainagg.Kind(err) != "StoreError" {
		t.Fatalf("kind: got=%s", domainagg.Kind(err))
	}
}

func TestExecuteWriteTracksConflictAndRetryCounters(t *testing.T) {
	t.Run("conflict", func(t *testing.T) {
		hooks := &spyHooks{}
		err := executeWrite(context.Background(), BaseDeps{
			Runner: &spyTxRunner{},
			Hooks:  hooks,
		}, "aggregate.test.conflict", func(_ dbctx.Context) error {
			return ConflictError("track number already exists")
		})
		if !domainagg.IsCode(err, domainagg.CodeConflict) {
			t.Fatalf("expected conflict code, got=%v", err)
		}
		if len(hooks.Conflicts) != 1 || hooks.Conflicts[0] != "aggregate.test.conflict" {
			t.Fatalf("conflict hooks: %+v", hooks.Conflicts)
		}
		if len(hooks.Retries) != 0 {
			t.Fatalf("retry hooks should be empty, got=%+v", hooks.Retries)
		}
		if len(hooks.Operations) != 1 || hooks.Operations[0].Status != string(domainagg.CodeConflict) {
			t.Fatalf("unexpected op status: %+v", hooks.Operations)
		}
	})

	t.Run("retryable", func(t *testing.T) {
		hooks := &spyHooks{}
		err := executeWrite(context.Background(), BaseDeps{
			Runner: &spyTxRunner{},
			Hooks:  hooks,
		}, "aggregate.test.retry", func(_ dbctx.Context) error {
			return RetryableError("temporary lock timeout")
		})
		if !domainagg.IsCode(err, domainagg.CodeRetryable) {
			t.Fatalf("expected retryable code, got=%v", err)
		}
		if len(hooks.Retries) != 1 || hooks.Retries[0] != "aggregate.test.retry" {
			t.Fatalf("retry hooks: %+v", hooks.Retries)
		}
		if len(hooks.Conflicts) != 0 {
			t.Fatalf("conflict hooks should be empty, got=%+v", hooks.Conflicts)
		}
	})
}

func TestExecuteReadSkipsRunner(t *testing.T) {
	runner := &spyTxRunner{}
	hooks := &spyHooks{}
	var sawTx bool
	err := executeRead(context.Background(), BaseDeps{
		Runner: runner,
		Hooks:  hooks,
	}, "aggregate.test.read", func(dbc dbctx.Context) error {
		sawTx = dbc.InTx()
		return nil
	})
	if err != nil {
		t.Fatalf("executeRead: %v", err)
	}
	if runner.calls != 0 {
		t.Fatalf("reads must not open a transaction, runner calls=%d", runner.calls)
	}
	if sawTx {
		t.Fatalf("read context unexpectedly carried a transaction")
	}
	if len(hooks.Operations) != 1 || hooks.Operations[0].Name != "aggregate.test.read" {
		t.Fatalf("unexpected ops: %+v", hooks.Operations)
	}
}

func TestRejectInputObservesValidation(t *testing.T) {
	hooks := &spyHooks{}
	err := rejectInput(BaseDeps{Hooks: hooks}, "aggregate.test.reject", ValidationError("quantity must be greater than 0"))
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation code, got=%v", err)
	}
	if len(hooks.Operations) != 1 || hooks.Operations[0].Status != string(domainagg.CodeValidation) {
		t.Fatalf("unexpected ops: %+v", hooks.Operations)
	}
}

func TestAggregateErrorStatus(t *testing.T) {
	if got := aggregateErrorStatus(nil); got != "success" {
		t.Fatalf("nil status: want=success got=%s", got)
	}
	if got := aggregateErrorStatus(ValidationError("x")); got != string(domainagg.CodeValidation) {
		t.Fatalf("validation status: got=%s", got)
	}
	if got := aggregateErrorStatus(ConflictError("x")); got != string(domainagg.CodeConflict) {
		t.Fatalf("conflict status: got=%s", got)
	}
	if got := aggregateErrorStatus(RetryableError("x")); got != string(domainagg.CodeRetryable) {
		t.Fatalf("retry status: got=%s", got)
	}
	if got := aggregateErrorStatus(context.DeadlineExceeded); got != string(domainagg.CodeRetryable) {
		t.Fatalf("deadline status: got=%s", got)
	}
	if got := aggregateErrorStatus(errors.New("disk full")); got != string(domainagg.CodeStore) {
		t.Fatalf("store status: got=%s", got)
	}
}

type spyTxRunner struct {
	calls int
}

func (r *spyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.calls++
	if fn == nil {
		return nil
	}
	return fn(dbctx.Context{Ctx: ctx})
}

type spyHooks struct {
	Operations []spyOperation
	Conflicts  []string
	Retries    []string
}

type spyOperation struct {
	Name   string
	Status string
}

func (h *spyHooks) ObserveOperation(name, status string, _ time.Duration) {
	h.Operations = append(h.Operations, spyOperation{Name: name, Status: status})
}

func (h *spyHooks) IncConflict(name string) {
	h.Conflicts = append(h.Conflicts, name)
}

func (h *spyHooks) IncRetry(name string) {
	h.Retries = append(h.Retries, name)
}
