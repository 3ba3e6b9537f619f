package shell

import (
	"context"
	"strconv"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/validate"
)

const opProductForm = "Shell.Products.Form"

var productHeaders = []string{"ID", "Name", "Description", "Stock", "Price", "Category", "Barcode", "Status"}

func productRow(p *sales.Product) []string {
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		p.Name,
		p.Description,
		strconv.Itoa(p.Stock),
		p.Price.StringFixed(2),
		p.Category,
		p.Barcode,
		p.Status,
	}
}

func (s *Session) productsMenu(ctx context.Context) error {
	return s.loop(ctx, "Product Menu", []action{
		{"Add a product", s.addProduct},
		{"View all products", s.listProducts},
		{"View a product by ID", s.viewProduct},
		{"Edit a product", s.editProduct},
		{"Delete a product", s.deleteProduct},
	}, "Return to main menu")
}

// productInput turns the seven typed answers into a ProductInput.
func productInput(v []string) (domainagg.ProductInput, error) {
	stock, err := validate.Int(opProductForm, "stock", v[2])
	if err != nil {
		return domainagg.ProductInput{}, err
	}
	price, err := validate.Decimal(opProductForm, "price", v[3])
	if err != nil {
		return domainagg.ProductInput{}, err
	}
	return domainagg.ProductInput{
		Name:        v[0],
		Description: v[1],
		Stock:       stock,
		Price:       price,
		Category:    v[4],
		Barcode:     v[5],
		Status:      v[6],
	}, nil
}

func (s *Session) addProduct(ctx context.Context) error {
	v, err := s.askAll("Product name", "Description", "Stock", "Price", "Category", "Barcode", "Status")
	if err != nil {
		return err
	}
	in, err := productInput(v)
	if err != nil {
		return err
	}
	p, err := s.aggs.Products.Create(ctx, in)
	if err != nil {
		return err
	}
	s.out.Success("Product successfully added. ID: %d", p.ID)
	return nil
}

func (s *Session) listProducts(ctx context.Context) error {
	rows, err := s.aggs.Products.GetAll(ctx)
	if err != nil {
		return err
	}
	printProducts(s.out, rows)
	return nil
}

func printProducts(out *Printer, rows []*sales.Product) {
	if len(rows) == 0 {
		out.Info("No products found.")
		return
	}
	table := make([][]string, 0, len(rows))
	for _, p := range rows {
		table = append(table, productRow(p))
	}
	out.Table(productHeaders, table)
}

func (s *Session) viewProduct(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the product to view")
	if err != nil {
		return err
	}
	p, err := s.aggs.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.out.Table(productHeaders, [][]string{productRow(p)})
	return nil
}

func (s *Session) editProduct(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the product to edit")
	if err != nil {
		return err
	}
	current, err := s.aggs.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.out.Muted("Press enter to keep the current value.")
	row := productRow(current)[1:]
	labels := []string{"Product name", "Description", "Stock", "Price", "Category", "Barcode", "Status"}
	v := make([]string, len(labels))
	for i, label := range labels {
		if v[i], err = s.askDefault(label, row[i]); err != nil {
			return err
		}
	}
	in, err := productInput(v)
	if err != nil {
		return err
	}
	if _, err := s.aggs.Products.Update(ctx, id, in); err != nil {
		return err
	}
	s.out.Success("Product successfully updated.")
	return nil
}

func (s *Session) deleteProduct(ctx context.Context) error {
	id, err := s.prompt.Ask("ID of the product to delete")
	if err != nil {
		return err
	}
	if _, err := s.aggs.Products.Delete(ctx, id); err != nil {
		return err
	}
	s.out.Success("Product successfully deleted.")
	return nil
}
