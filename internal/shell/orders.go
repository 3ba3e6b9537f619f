package shell

import (
	"context"
	"strconv"
	"time"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/validate"
)

const opOrderForm = "Shell.Orders.Form"

var (
	orderHeaders  = []string{"ID", "Date", "Customer ID", "Delivery address", "Track number", "Status"}
	detailHeaders = []string{"Detail ID", "Product ID", "Quantity", "Unit price", "Line total"}
	lineHeaders   = []string{"#", "Detail ID", "Product ID", "Quantity"}
)

var orderFieldLabels = []string{"Date (YYYY-MM-DD)", "Customer ID", "Delivery address", "Tracking number", "Status"}

func orderRow(o *sales.PurchaseOrder) []string {
	return []string{
		strconv.FormatUint(uint64(o.ID), 10),
		time.Time(o.Date).Format(validate.DateLayout),
		strconv.FormatUint(uint64(o.CustomerID), 10),
		o.DeliveryAddress,
		o.TrackNumber,
		o.Status,
	}
}

func detailRow(d *sales.OrderDetail) []string {
	return []string{
		strconv.FormatUint(uint64(d.ID), 10),
		strconv.FormatUint(uint64(d.ProductID), 10),
		strconv.Itoa(d.Quantity),
		d.Price.StringFixed(2),
		d.LineTotal().StringFixed(2),
	}
}

func orderFieldsFrom(v []string) domainagg.OrderFields {
	return domainagg.OrderFields{
		Date:            v[0],
		CustomerID:      v[1],
		DeliveryAddress: v[2],
		TrackNumber:     v[3],
		Status:          v[4],
	}
}

func (s *Session) ordersMenu(ctx context.Context) error {
	return s.loop(ctx, "Order Menu", []action{
		{"Create an order", s.createOrder},
		{"View all orders", s.listOrders},
		{"View an order by ID", s.viewOrder},
		{"Edit an order", s.editOrder},
		{"Delete an order", s.deleteOrder},
	}, "Return to main menu")
}

// createOrder buffers the details locally and saves everything in one call,
// so an abandoned or failed order leaves nothing behind.
func (s *Session) createOrder(ctx context.Context) error {
	v, err := s.askAll(orderFieldLabels...)
	if err != nil {
		return err
	}
	in := domainagg.CreateOrderInput{OrderFields: orderFieldsFrom(v)}
	if _, err := s.aggs.Customers.GetByID(ctx, in.CustomerID); err != nil {
		return err
	}
	s.out.Info("Order data saved. You can now add details.")

	for {
		choice, err := s.prompt.Choose("Order Details Menu", []string{
			"Add an order detail",
			"Save and exit",
			"Exit without saving",
		})
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			line, err := s.askLine(ctx, false)
			if err := s.settle(err); err != nil {
				return err
			}
			if line != nil {
				in.Details = append(in.Details, *line)
				s.out.Success("Order detail added.")
			}
		case 1:
			res, err := s.aggs.Orders.CreateOrder(ctx, in)
			if err != nil {
				return err
			}
			s.out.Success("Order successfully saved. ID: %d (%d detail(s))", res.OrderID, len(res.DetailIDs))
			return nil
		default:
			s.out.Info("Order creation cancelled.")
			return nil
		}
	}
}

// askLine prompts a product and quantity and shows the unit price that will be
// snapshotted. With withDetailID the line targets an existing detail.
func (s *Session) askLine(ctx context.Context, withDetailID bool) (*domainagg.OrderDetailInput, error) {
	line := &domainagg.OrderDetailInput{}
	if withDetailID {
		id, err := s.prompt.Ask("ID of the detail to modify")
		if err != nil {
			return nil, err
		}
		line.DetailID = id
	}
	productID, err := s.prompt.Ask("Product ID")
	if err != nil {
		return nil, err
	}
	product, err := s.aggs.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	s.out.Muted("Unit price: %s", product.Price.StringFixed(2))
	raw, err := s.prompt.Ask("Quantity")
	if err != nil {
		return nil, err
	}
	qty, err := validate.Int(opOrderForm, "quantity", raw)
	if err != nil {
		return nil, err
	}
	line.ProductID = productID
	line.Quantity = qty
	return line, nil
}

func (s *Session) listOrders(ctx context.Context) error {
	rows, err := s.aggs.Orders.ListAll(ctx)
	if err != nil {
		return err
	}
	printOrders(s.out, rows)
	return nil
}

func printOrders(out *Printer, rows []*sales.PurchaseOrder) {
	if len(rows) == 0 {
		out.Info("No orders found.")
		return
	}
	table := make([][]string, 0, len(rows))
	for _, o := range rows {
		table = append(table, orderRow(o))
	}
	out.Table(orderHeaders, table)
}

func printOrder(out *Printer, o *sales.PurchaseOrder) {
	out.Table(orderHeaders, [][]string{orderRow(o)})
	printDetails(out, o.Details)
	out.Info("Total: %s", o.Total().StringFixed(2))
}

func printDetails(out *Printer, details []*sales.OrderDetail) {
	if len(details) == 0 {
		out.Info("No order details.")
		return
	}
	table := make([][]string, 0, len(details))
	for _, d := range details {
		table = append(table, detailRow(d))
	}
	out.Table(detailHeaders, table)
}

func (s *Session) viewOrder(ctx context.Context) error {
	id, err := s.prompt.Ask("Order ID to view")
	if err != nil {
		return err
	}
	o, err := s.aggs.Orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	printOrder(s.out, o)
	return nil
}

// editOrder collects scalar changes, new lines and rewritten lines, then
// applies them with a single Update.
func (s *Session) editOrder(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the order to edit")
	if err != nil {
		return err
	}
	current, err := s.aggs.Orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.out.Muted("Press enter to keep the current value.")
	row := orderRow(current)[1:]
	v := make([]string, len(orderFieldLabels))
	for i, label := range orderFieldLabels {
		if v[i], err = s.askDefault(label, row[i]); err != nil {
			return err
		}
	}
	in := domainagg.UpdateOrderInput{OrderID: id, OrderFields: orderFieldsFrom(v)}

	for {
		choice, err := s.prompt.Choose("Edit Order Details", []string{
			"View current details",
			"Add a new order detail",
			"Edit an existing detail",
			"Save changes and exit",
			"Cancel changes and exit",
		})
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			details, err := s.aggs.Orders.GetOrderDetails(ctx, id)
			if err := s.settle(err); err != nil {
				return err
			}
			printDetails(s.out, details)
			printPending(s.out, in.Details)
		case 1, 2:
			line, err := s.askLine(ctx, choice == 2)
			if err := s.settle(err); err != nil {
				return err
			}
			if line != nil {
				in.Details = append(in.Details, *line)
				s.out.Success("Change queued.")
			}
		case 3:
			if _, err := s.aggs.Orders.Update(ctx, in); err != nil {
				return err
			}
			s.out.Success("Order updated successfully.")
			return nil
		default:
			s.out.Info("Changes cancelled.")
			return nil
		}
	}
}

func printPending(out *Printer, lines []domainagg.OrderDetailInput) {
	if len(lines) == 0 {
		return
	}
	out.Muted("Pending changes:")
	table := make([][]string, 0, len(lines))
	for i, l := range lines {
		detail := l.DetailID
		if detail == "" {
			detail = "new"
		}
		table = append(table, []string{strconv.Itoa(i + 1), detail, l.ProductID, strconv.Itoa(l.Quantity)})
	}
	out.Table(lineHeaders, table)
}

func (s *Session) deleteOrder(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the order to delete")
	if err != nil {
		return err
	}
	res, err := s.aggs.Orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.out.Success("Order successfully deleted (%d detail(s) removed).", res.DetailsDeleted)
	return nil
}
