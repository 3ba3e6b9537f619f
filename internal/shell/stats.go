package shell

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/observability"
)

var statsHeaders = []string{"Operation", "OK", "Failed", "Conflicts", "Retries", "p50", "p95", "p99", "Max"}

func (s *Session) showStats(context.Context) error {
	printStats(s.out, s.metrics)
	return nil
}

func printStats(out *Printer, m *observability.Metrics) {
	rows := m.Summary()
	if len(rows) == 0 {
		out.Info("No operations recorded in this session.")
		return
	}
	out.Section("Session statistics")
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Name,
			strconv.FormatInt(r.Success, 10),
			strconv.FormatInt(r.Failed, 10),
			strconv.FormatInt(r.Conflicts, 10),
			strconv.FormatInt(r.Retries, 10),
			formatLatency(r.Latency.P50),
			formatLatency(r.Latency.P95),
			formatLatency(r.Latency.P99),
			formatLatency(r.Latency.Max),
		})
	}
	out.Table(statsHeaders, table)
}

func formatLatency(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d < time.Millisecond:
		return strconv.FormatInt(d.Microseconds(), 10) + "µs"
	default:
		return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 1, 64) + "ms"
	}
}

var totalsHeaders = []string{"Customers", "Products", "Orders", "Payments", "Amount paid"}

func (c *cli) statsCmd() *cobra.Command {
	var prometheus bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show store totals and the latency of the reads that produced them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := c.printer(cmd)
			customers, err := c.app.Customers.GetAll(ctx)
			if err != nil {
				return c.report(cmd, err)
			}
			products, err := c.app.Products.GetAll(ctx)
			if err != nil {
				return c.report(cmd, err)
			}
			orders, err := c.app.Orders.ListAll(ctx)
			if err != nil {
				return c.report(cmd, err)
			}
			payments, err := c.app.Payments.GetAll(ctx)
			if err != nil {
				return c.report(cmd, err)
			}
			paid := decimal.Zero
			for _, p := range payments {
				paid = paid.Add(p.Amount)
			}

			if prometheus {
				return c.app.Metrics.WritePrometheus(cmd.OutOrStdout())
			}
			out.Section("Store totals")
			out.Table(totalsHeaders, [][]string{{
				strconv.Itoa(len(customers)),
				strconv.Itoa(len(products)),
				strconv.Itoa(len(orders)),
				strconv.Itoa(len(payments)),
				paid.StringFixed(2),
			}})
			printStats(out, c.app.Metrics)
			return nil
		},
	}
	cmd.Flags().BoolVar(&prometheus, "prometheus", false, "Write the operation metrics in Prometheus text format")
	return cmd
}
