package shell

import (
	"context"
	"strconv"
	"time"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/validate"
)

const opPaymentForm = "Shell.Payments.Form"

var paymentHeaders = []string{"ID", "Date", "Amount", "Method", "Order ID"}

func paymentRow(p *sales.Payment) []string {
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		time.Time(p.Date).Format(validate.DateLayout),
		p.Amount.StringFixed(2),
		p.PaymentMethod,
		strconv.FormatUint(uint64(p.OrderID), 10),
	}
}

func (s *Session) paymentsMenu(ctx context.Context) error {
	return s.loop(ctx, "Payment Menu", []action{
		{"Add a payment", s.addPayment},
		{"View all payments", s.listPayments},
		{"View a payment by ID", s.viewPayment},
		{"Edit a payment", s.editPayment},
		{"Delete a payment", s.deletePayment},
	}, "Return to main menu")
}

func paymentInput(v []string) (domainagg.PaymentInput, error) {
	amount, err := validate.Decimal(opPaymentForm, "amount", v[1])
	if err != nil {
		return domainagg.PaymentInput{}, err
	}
	return domainagg.PaymentInput{Date: v[0], Amount: amount, PaymentMethod: v[2], OrderID: v[3]}, nil
}

func (s *Session) addPayment(ctx context.Context) error {
	v, err := s.askAll("Date of payment (YYYY-MM-DD)", "Amount", "Payment method", "Order ID")
	if err != nil {
		return err
	}
	in, err := paymentInput(v)
	if err != nil {
		return err
	}
	p, err := s.aggs.Payments.Create(ctx, in)
	if err != nil {
		return err
	}
	s.out.Success("Payment successfully added. ID: %d", p.ID)
	return nil
}

func (s *Session) listPayments(ctx context.Context) error {
	rows, err := s.aggs.Payments.GetAll(ctx)
	if err != nil {
		return err
	}
	printPayments(s.out, rows)
	return nil
}

func printPayments(out *Printer, rows []*sales.Payment) {
	if len(rows) == 0 {
		out.Info("No payments found.")
		return
	}
	table := make([][]string, 0, len(rows))
	for _, p := range rows {
		table = append(table, paymentRow(p))
	}
	out.Table(paymentHeaders, table)
}

func (s *Session) viewPayment(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the payment to view")
	if err != nil {
		return err
	}
	p, err := s.aggs.Payments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.out.Table(paymentHeaders, [][]string{paymentRow(p)})
	return nil
}

func (s *Session) editPayment(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the payment to edit")
	if err != nil {
		return err
	}
	current, err := s.aggs.Payments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.out.Muted("Press enter to keep the current value.")
	row := paymentRow(current)[1:]
	labels := []string{"Date of payment (YYYY-MM-DD)", "Amount", "Payment method", "Order ID"}
	v := make([]string, len(labels))
	for i, label := range labels {
		if v[i], err = s.askDefault(label, row[i]); err != nil {
			return err
		}
	}
	in, err := paymentInput(v)
	if err != nil {
		return err
	}
	if _, err := s.aggs.Payments.Update(ctx, id, in); err != nil {
		return err
	}
	s.out.Success("Payment successfully updated.")
	return nil
}

func (s *Session) deletePayment(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the payment to delete")
	if err != nil {
		return err
	}
	if _, err := s.aggs.Payments.Delete(ctx, id); err != nil {
		return err
	}
	s.out.Success("Payment successfully deleted.")
	return nil
}
