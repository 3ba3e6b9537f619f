package shell

import (
	"github.com/spf13/cobra"
)

func (c *cli) customersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "customers", Short: "Inspect or delete customers"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all customers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rows, err := c.app.Customers.GetAll(cmd.Context())
				if err != nil {
					return c.report(cmd, err)
				}
				printCustomers(c.printer(cmd), rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one customer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				row, err := c.app.Customers.GetByID(cmd.Context(), args[0])
				if err != nil {
					return c.report(cmd, err)
				}
				c.printer(cmd).Table(customerHeaders, [][]string{customerRow(row)})
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a customer without orders",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := c.app.Customers.Delete(cmd.Context(), args[0]); err != nil {
					return c.report(cmd, err)
				}
				c.printer(cmd).Success("Customer %s deleted.", args[0])
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) productsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Inspect or delete products"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all products",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rows, err := c.app.Products.GetAll(cmd.Context())
				if err != nil {
					return c.report(cmd, err)
				}
				printProducts(c.printer(cmd), rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				row, err := c.app.Products.GetByID(cmd.Context(), args[0])
				if err != nil {
					return c.report(cmd, err)
				}
				c.printer(cmd).Table(productHeaders, [][]string{productRow(row)})
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a product no order uses",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := c.app.Products.Delete(cmd.Context(), args[0]); err != nil {
					return c.report(cmd, err)
				}
				c.printer(cmd).Success("Product %s deleted.", args[0])
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Inspect or delete purchase orders"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all orders",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rows, err := c.app.Orders.ListAll(cmd.Context())
				if err != nil {
					return c.report(cmd, err)
				}
				printOrders(c.printer(cmd), rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show an order with its details and total",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				row, err := c.app.Orders.GetByID(cmd.Context(), args[0])
				if err != nil {
					return c.report(cmd, err)
				}
				printOrder(c.printer(cmd), row)
				return nil
			},
		},
		&cobra.Command{
			Use:   "details <id>",
			Short: "List the details of an order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rows, err := c.app.Orders.GetOrderDetails(cmd.Context(), args[0])
				if err != nil {
					return c.report(cmd, err)
				}
				printDetails(c.printer(cmd), rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete an unpaid order and its details",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := c.app.Orders.Delete(cmd.Context(), args[0])
				if err != nil {
					return c.report(cmd, err)
				}
				c.printer(cmd).Success("Order %s deleted (%d detail(s) removed).", args[0], res.DetailsDeleted)
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "payments", Short: "Inspect or delete payments"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all payments",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rows, err := c.app.Payments.GetAll(cmd.Context())
				if err != nil {
					return c.report(cmd, err)
				}
				printPayments(c.printer(cmd), rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one payment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				row, err := c.app.Payments.GetByID(cmd.Context(), args[0])
				if err != nil {
					return c.report(cmd, err)
				}
				c.printer(cmd).Table(paymentHeaders, [][]string{paymentRow(row)})
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a payment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := c.app.Payments.Delete(cmd.Context(), args[0]); err != nil {
					return c.report(cmd, err)
				}
				c.printer(cmd).Success("Payment %s deleted.", args[0])
				return nil
			},
		},
	)
	return cmd
}
