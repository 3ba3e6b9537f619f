package aggregates

import (
	"context"
	"testing"

	repotest "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos/testutil"
	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
)

func TestGuardRequireUnique(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	a := repotest.SeedCustomer(t, ctx, db, "ada@example.com", "5551234")
	repotest.SeedCustomer(t, ctx, db, "grace@example.com", "5559999")

	g := NewGuard(db)
	dbc := dbctx.New(ctx)

	if err := g.RequireUnique(dbc, "customers", "email", "new@example.com", 0, "email already exists"); err != nil {
		t.Fatalf("fresh email: %v", err)
	}
	if err := g.RequireUnique(dbc, "customers", "email", "ada@example.com", a.ID, "email already exists"); err != nil {
		t.Fatalf("own email must be allowed: %v", err)
	}
	err := g.RequireUnique(dbc, "customers", "email", "grace@example.com", a.ID, "email already exists")
	if !domainagg.IsCode(MapError("op", err), domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "email already exists" {
		t.Fatalf("message: %q", err.Error())
	}
}

func TestGuardRequireUnreferenced(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	c := repotest.SeedCustomer(t, ctx, db, "ada@example.com", "5551234")
	idle := repotest.SeedCustomer(t, ctx, db, "grace@example.com", "5559999")
	repotest.SeedOrder(t, ctx, db, c.ID, "T-1")

	g := NewGuard(db)
	dbc := dbctx.New(ctx)

	if err := g.RequireUnreferenced(dbc, "purchase_orders", "customer_id", idle.ID, "in use"); err != nil {
		t.Fatalf("unreferenced customer: %v", err)
	}
	err := g.RequireUnreferenced(dbc, "purchase_orders", "customer_id", c.ID, "in use")
	if !domainagg.IsCode(MapError("op", err), domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGuardRejectsMissingArguments(t *testing.T) {
	g := NewGuard(nil)
	if err := g.RequireUnique(dbctx.New(context.Background()), "customers", "email", "x", 0, "m"); err == nil {
		t.Fatalf("expected error without db")
	}
	db := repotest.DB(t)
	g = NewGuard(db)
	if err := g.RequireUnique(dbctx.New(context.Background()), "", "email", "x", 0, "m"); err == nil {
		t.Fatalf("expected error without table")
	}
	if err := g.RequireUnreferenced(dbctx.New(context.Background()), "order_details", "product_id", 0, "m"); err == nil {
		t.Fatalf("expected error without id")
	}
}

func TestRequireFound(t *testing.T) {
	if err := RequireFound(true, "order not found"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	err := RequireFound(false, "order not found")
	if !domainagg.IsCode(MapError("op", err), domainagg.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestRequireRowsAffected(t *testing.T) {
	if err := RequireRowsAffected(1, "order not found"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	err := RequireRowsAffected(0, "order detail not found")
	if err == nil || err.Error() != "order detail not found" {
		t.Fatalf("expected not found error, got %v", err)
	}
}
