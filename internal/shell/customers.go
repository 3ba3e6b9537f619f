package shell

import (
	"context"
	"strconv"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
)

var customerHeaders = []string{"ID", "Name", "Address", "Email", "Phone"}

func customerRow(c *sales.Customer) []string {
	return []string{strconv.FormatUint(uint64(c.ID), 10), c.Name, c.Address, c.Email, c.Phone}
}

func (s *Session) customersMenu(ctx context.Context) error {
	return s.loop(ctx, "Customer Menu", []action{
		{"Add a customer", s.addCustomer},
		{"View all customers", s.listCustomers},
		{"View a customer by ID", s.viewCustomer},
		{"Edit a customer", s.editCustomer},
		{"Delete a customer", s.deleteCustomer},
	}, "Return to main menu")
}

func (s *Session) addCustomer(ctx context.Context) error {
	v, err := s.askAll("Customer name", "Address", "Email", "Phone")
	if err != nil {
		return err
	}
	c, err := s.aggs.Customers.Create(ctx, domainagg.CustomerInput{Name: v[0], Address: v[1], Email: v[2], Phone: v[3]})
	if err != nil {
		return err
	}
	s.out.Success("Customer successfully added. ID: %d", c.ID)
	return nil
}

func (s *Session) listCustomers(ctx context.Context) error {
	rows, err := s.aggs.Customers.GetAll(ctx)
	if err != nil {
		return err
	}
	printCustomers(s.out, rows)
	return nil
}

func printCustomers(out *Printer, rows []*sales.Customer) {
	if len(rows) == 0 {
		out.Info("No customers found.")
		return
	}
	table := make([][]string, 0, len(rows))
	for _, c := range rows {
		table = append(table, customerRow(c))
	}
	out.Table(customerHeaders, table)
}

func (s *Session) viewCustomer(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the customer to view")
	if err != nil {
		return err
	}
	c, err := s.aggs.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.out.Table(customerHeaders, [][]string{customerRow(c)})
	return nil
}

func (s *Session) editCustomer(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the customer to edit")
	if err != nil {
		return err
	}
	current, err := s.aggs.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.out.Muted("Press enter to keep the current value.")
	in := domainagg.CustomerInput{}
	for _, f := range []struct {
		label   string
		current string
		dst     *string
	}{
		{"Customer name", current.Name, &in.Name},
		{"Address", current.Address, &in.Address},
		{"Email", current.Email, &in.Email},
		{"Phone", current.Phone, &in.Phone},
	} {
		if *f.dst, err = s.askDefault(f.label, f.current); err != nil {
			return err
		}
	}
	if _, err := s.aggs.Customers.Update(ctx, id, in); err != nil {
		return err
	}
	s.out.Success("Customer successfully updated.")
	return nil
}

func (s *Session) deleteCustomer(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the customer to delete")
	if err != nil {
		return err
	}
	if _, err := s.aggs.Customers.Delete(ctx, id); err != nil {
		return err
	}
	s.out.Success("Customer successfully deleted.")
	return nil
}
