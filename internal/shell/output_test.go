package shell

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
)

func TestFailFormatsKindAndMessage(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Fail(domainagg.NewError(domainagg.CodeConflict, "Sales.OrderAggregate.Delete", "order already paid, cannot delete", nil))
	assert.Contains(t, out.String(), "[ConflictError] order already paid, cannot delete")
	assert.NotContains(t, out.String(), "Sales.OrderAggregate")

	out.Reset()
	p.Fail(domainagg.NewError(domainagg.CodeStore, "op", "pq: relation does not exist", errors.New("driver detail")))
	assert.Contains(t, out.String(), "[StoreError] "+domainagg.GenericStoreMessage)
	assert.NotContains(t, out.String(), "relation")

	out.Reset()
	p.Fail(nil)
	assert.Empty(t, out.String())
}

func TestTableRendersCells(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out).Table([]string{"ID", "Name"}, [][]string{{"1", "Ada Lovelace"}, {"2", "Grace Hopper"}})

	s := out.String()
	assert.Contains(t, s, "ID")
	assert.Contains(t, s, "Ada Lovelace")
	assert.Contains(t, s, "Grace Hopper")
}

func TestFormatLatency(t *testing.T) {
	assert.Equal(t, "-", formatLatency(0))
	assert.Equal(t, "250µs", formatLatency(250_000))
	assert.Equal(t, "1.5ms", formatLatency(1_500_000))
}
