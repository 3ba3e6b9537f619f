package observability

import (
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Metrics aggregates per-operation outcomes for the current process.
// Everything is in memory; the shell prints it on demand.
type Metrics struct {
	operations *CounterVec
	conflicts  *CounterVec
	retries    *CounterVec
	failures   *Counter
	latency    *LatencyVec

	mu    sync.Mutex
	names map[string]struct{}
}

func NewMetrics() *Metrics {
	return &Metrics{
		operations: NewCounterVec("gestion_aggregate_operations_total", "Aggregate operations by outcome.", []string{"op", "status"}),
		conflicts:  NewCounterVec("gestion_aggregate_conflicts_total", "Aggregate operations rejected by a conflict.", []string{"op"}),
		retries:    NewCounterVec("gestion_aggregate_retryable_total", "Aggregate operations that failed transiently.", []string{"op"}),
		failures:   NewCounter("gestion_aggregate_failures_total", "Aggregate operations that did not succeed."),
		latency:    NewLatencyVec("gestion_aggregate_latency_seconds", "Aggregate operation latency.", []string{"op"}),
		names:      map[string]struct{}{},
	}
}

func (m *Metrics) ObserveAggregateOperation(name, status string, dur time.Duration) {
	if m == nil {
		return
	}
	name = normalizeName(name)
	status = strings.TrimSpace(status)
	if status == "" {
		status = "unknown"
	}
	m.track(name)
	m.operations.Inc(name, status)
	if status != "success" {
		m.failures.Inc()
	}
	m.latency.Observe(dur, name)
}

func (m *Metrics) IncAggregateConflict(name string) {
	if m == nil {
		return
	}
	name = normalizeName(name)
	m.track(name)
	m.conflicts.Inc(name)
}

func (m *Metrics) IncAggregateRetry(name string) {
	if m == nil {
		return
	}
	name = normalizeName(name)
	m.track(name)
	m.retries.Inc(name)
}

// OperationSummary is one row of the stats screen.
type OperationSummary struct {
	Name      string
	Success   int64
	Failed    int64
	Conflicts int64
	Retries   int64
	Latency   LatencySnapshot
}

// Summary returns one row per operation seen so far, sorted by name.
func (m *Metrics) Summary() []OperationSummary {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	names := make([]string, 0, len(m.names))
	for n := range m.names {
		names = append(names, n)
	}
	m.mu.Unlock()
	sort.Strings(names)

	out := make([]OperationSummary, 0, len(names))
	for _, n := range names {
		lat := m.latency.Snapshot(n)
		success := int64(m.operations.Value(n, "success"))
		out = append(out, OperationSummary{
			Name:      n,
			Success:   success,
			Failed:    lat.Count - success,
			Conflicts: int64(m.conflicts.Value(n)),
			Retries:   int64(m.retries.Value(n)),
			Latency:   lat,
		})
	}
	return out
}

// Failures is the number of operations that did not succeed.
func (m *Metrics) Failures() int64 {
	if m == nil {
		return 0
	}
	return int64(m.failures.Value())
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, fn := range []func(io.Writer) error{
		m.operations.WritePrometheus,
		m.conflicts.WritePrometheus,
		m.retries.WritePrometheus,
		m.failures.WritePrometheus,
		m.latency.WritePrometheus,
	} {
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) track(name string) {
	m.mu.Lock()
	m.names[name] = struct{}{}
	m.mu.Unlock()
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	return name
}
