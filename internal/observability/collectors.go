package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

type CounterVec struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]float64
}

func NewCounterVec(name, help string, labels []string) *CounterVec {
	return &CounterVec{name: name, help: help, labelNames: labels, values: map[string]float64{}}
}

func (c *CounterVec) Inc(values ...string) {
	if c == nil {
		return
	}
	lbl := labelString(c.labelNames, values)
	c.mu.Lock()
	c.values[lbl]++
	c.mu.Unlock()
}

func (c *CounterVec) Value(values ...string) float64 {
	if c == nil {
		return 0
	}
	lbl := labelString(c.labelNames, values)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[lbl]
}

func (c *CounterVec) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s counter\n", c.name); err != nil {
		return err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, k := range sortedKeys(c.values) {
		if _, err := fmt.Fprintf(w, "%s%s %f\n", c.name, k, c.values[k]); err != nil {
			return err
		}
	}
	return nil
}

type Counter struct {
	name string
	help string
	mu   sync.RWMutex
	val  float64
}

func NewCounter(name, help string) *Counter {
	return &Counter{name: name, help: help}
}

func (c *Counter) Inc() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.val++
	c.mu.Unlock()
}

func (c *Counter) Value() float64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.val
}

func (c *Counter) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s counter\n", c.name); err != nil {
		return err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, err := fmt.Fprintf(w, "%s %f\n", c.name, c.val)
	return err
}

// Latency bounds, in microseconds: 1µs up to one minute at 3 significant figures.
const (
	latencyMinMicros = 1
	latencyMaxMicros = int64(time.Minute / time.Microsecond)
	latencySigFigs   = 3
)

// LatencyVec keeps one HDR histogram per label set.
type LatencyVec struct {
	name       string
	help       string
	labelNames []string
	mu         sync.Mutex
	values     map[string]*hdrhistogram.Histogram
}

func NewLatencyVec(name, help string, labels []string) *LatencyVec {
	return &LatencyVec{name: name, help: help, labelNames: labels, values: map[string]*hdrhistogram.Histogram{}}
}

func (l *LatencyVec) Observe(d time.Duration, values ...string) {
	if l == nil {
		return
	}
	v := int64(d / time.Microsecond)
	if v < latencyMinMicros {
		v = latencyMinMicros
	}
	if v > latencyMaxMicros {
		v = latencyMaxMicros
	}
	lbl := labelString(l.labelNames, values)
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.values[lbl]
	if !ok {
		h = hdrhistogram.New(latencyMinMicros, latencyMaxMicros, latencySigFigs)
		l.values[lbl] = h
	}
	_ = h.RecordValue(v)
}

// LatencySnapshot is a point-in-time view of one histogram.
type LatencySnapshot struct {
	Count int64
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	Max   time.Duration
	Mean  time.Duration
}

func (l *LatencyVec) Snapshot(values ...string) LatencySnapshot {
	if l == nil {
		return LatencySnapshot{}
	}
	lbl := labelString(l.labelNames, values)
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.values[lbl]
	if !ok {
		return LatencySnapshot{}
	}
	return snapshotOf(h)
}

func snapshotOf(h *hdrhistogram.Histogram) LatencySnapshot {
	micros := func(v int64) time.Duration { return time.Duration(v) * time.Microsecond }
	return LatencySnapshot{
		Count: h.TotalCount(),
		P50:   micros(h.ValueAtQuantile(50)),
		P95:   micros(h.ValueAtQuantile(95)),
		P99:   micros(h.ValueAtQuantile(99)),
		Max:   micros(h.Max()),
		Mean:  time.Duration(h.Mean() * float64(time.Microsecond)),
	}
}

// WritePrometheus renders the histograms as summaries in seconds.
func (l *LatencyVec) WritePrometheus(w io.Writer) error {
	if l == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", l.name, l.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s summary\n", l.name); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]string, 0, len(l.values))
	for k := range l.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h := l.values[k]
		for _, q := range []float64{0.5, 0.95, 0.99} {
			v := float64(h.ValueAtQuantile(q*100)) / 1e6
			if _, err := fmt.Fprintf(w, "%s%s %f\n", l.name, withLabel(k, "quantile", fmt.Sprintf("%g", q)), v); err != nil {
				return err
			}
		}
		sum := h.Mean() * float64(h.TotalCount()) / 1e6
		if _, err := fmt.Fprintf(w, "%s_sum%s %f\n", l.name, k, sum); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s_count%s %d\n", l.name, k, h.TotalCount()); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func labelString(names []string, values []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("{")
	for i, name := range names {
		if i > 0 {
			b.WriteString(",")
		}
		val := "unknown"
		if i < len(values) {
			val = values[i]
		}
		b.WriteString(name)
		b.WriteString("=\"")
		b.WriteString(escapeLabel(val))
		b.WriteString("\"")
	}
	b.WriteString("}")
	return b.String()
}

func escapeLabel(v string) string {
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "\"", "\\\"")
	v = strings.ReplaceAll(v, "\n", "\\n")
	return v
}

func withLabel(labels, key, val string) string {
	val = escapeLabel(val)
	if labels == "" || labels == "{}" {
		return "{" + key + "=\"" + val + "\"}"
	}
	if strings.HasSuffix(labels, "}") {
		return strings.TrimSuffix(labels, "}") + "," + key + "=\"" + val + "\"}"
	}
	return "{" + key + "=\"" + val + "\"}"
}
