// backend/internal/application/usecase/cart_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	cartdom "github.com/TheRipper284/backend/internal/domain/cart"
	productdom "github.com/TheRipper284/backend/internal/domain/product"
)

func cartFixture() *fixture {
	f := newFixture()
	f.addUser("buyer-1", "Ana", "ana@example.com", "buyer")
	f.addUser("seller-1", "Luis", "luis@example.com", "seller")
	f.addProduct("prod-1", "seller-1", "Clay Mug", "10.00", 5)
	return f
}

func (f *fixture) cartUC() *CartUsecase {
	return NewCartUsecase(f.carts, f.products, nil)
}

func TestCartAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates cart lazily and adds the line", func(t *testing.T) {
		f := cartFixture()
		uc := f.cartUC()

		if err := uc.AddItem(ctx, "buyer-1", "prod-1", 2); err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		c := f.store.carts["buyer-1"]
		if c == nil {
			t.Fatal("cart not created")
		}
		if len(c.Lines) != 1 || c.Lines[0].Qty != 2 {
			t.Fatalf("lines = %+v, want one line qty 2", c.Lines)
		}
	})

	t.Run("same product merges instead of duplicating", func(t *testing.T) {
		f := cartFixture()
		uc := f.cartUC()

		if err := uc.AddItem(ctx, "buyer-1", "prod-1", 2); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if err := uc.AddItem(ctx, "buyer-1", "prod-1", 1); err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		c := f.store.carts["buyer-1"]
		if len(c.Lines) != 1 || c.Lines[0].Qty != 3 {
			t.Fatalf("lines = %+v, want one merged line qty 3", c.Lines)
		}
	})

	t.Run("rejects more than available stock", func(t *testing.T) {
		f := cartFixture()
		uc := f.cartUC()

		err := uc.AddItem(ctx, "buyer-1", "prod-1", 6)
		var stockErr *InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("err = %v, want InsufficientStockError", err)
		}
		if stockErr.Available != 5 {
			t.Errorf("available = %d, want 5", stockErr.Available)
		}
	})

	t.Run("inactive product behaves as absent", func(t *testing.T) {
		f := cartFixture()
		p := f.store.products["prod-1"]
		p.Status = productdom.StatusInactive
		f.store.products["prod-1"] = p
		uc := f.cartUC()

		err := uc.AddItem(ctx, "buyer-1", "prod-1", 1)
		if !errors.Is(err, productdom.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		f := cartFixture()
		err := f.cartUC().AddItem(ctx, "buyer-1", "nope", 1)
		if !errors.Is(err, productdom.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestCartSetQty(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces quantity", func(t *testing.T) {
		f := cartFixture()
		f.addCart("buyer-1", cartdom.Line{ProductID: "prod-1", Qty: 1})
		uc := f.cartUC()

		if err := uc.SetQty(ctx, "buyer-1", "prod-1", 4); err != nil {
			t.Fatalf("SetQty: %v", err)
		}
		if got := f.store.carts["buyer-1"].Lines[0].Qty; got != 4 {
			t.Errorf("qty = %d, want 4", got)
		}
	})

	t.Run("zero is not a removal", func(t *testing.T) {
		f := cartFixture()
		f.addCart("buyer-1", cartdom.Line{ProductID: "prod-1", Qty: 1})
		uc := f.cartUC()

		if err := uc.SetQty(ctx, "buyer-1", "prod-1", 0); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("line absent", func(t *testing.T) {
		f := cartFixture()
		f.addCart("buyer-1")
		uc := f.cartUC()

		if err := uc.SetQty(ctx, "buyer-1", "prod-1", 1); !errors.Is(err, cartdom.ErrLineNotFound) {
			t.Fatalf("err = %v, want ErrLineNotFound", err)
		}
	})

	t.Run("no cart yet", func(t *testing.T) {
		f := cartFixture()
		uc := f.cartUC()

		if err := uc.SetQty(ctx, "buyer-1", "prod-1", 1); !errors.Is(err, cartdom.ErrLineNotFound) {
			t.Fatalf("err = %v, want ErrLineNotFound", err)
		}
	})
}

func TestCartRemove(t *testing.T) {
	ctx := context.Background()

	f := cartFixture()
	f.addCart("buyer-1", cartdom.Line{ProductID: "prod-1", Qty: 2})
	uc := f.cartUC()

	if err := uc.Remove(ctx, "buyer-1", "prod-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := len(f.store.carts["buyer-1"].Lines); got != 0 {
		t.Errorf("lines = %d, want 0", got)
	}

	if err := uc.Remove(ctx, "buyer-1", "prod-1"); !errors.Is(err, cartdom.ErrLineNotFound) {
		t.Fatalf("second remove err = %v, want ErrLineNotFound", err)
	}
}

func TestCartItems(t *testing.T) {
	ctx := context.Background()

	f := cartFixture()
	f.addProduct("prod-2", "seller-1", "Wool Scarf", "5.50", 3)
	f.addCart("buyer-1",
		cartdom.Line{ProductID: "prod-1", Qty: 2},
		cartdom.Line{ProductID: "prod-2", Qty: 1},
	)
	uc := f.cartUC()

	views, err := uc.Items(ctx, "buyer-1")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("views = %d, want 2", len(views))
	}
	byID := map[string]LineView{}
	for _, v := range views {
		byID[v.ProductID] = v
	}
	if v := byID["prod-1"]; v.Title != "Clay Mug" || v.UnitPrice.StringFixed(2) != "10.00" || v.Qty != 2 {
		t.Errorf("prod-1 view = %+v", v)
	}
	if v := byID["prod-2"]; v.UnitPrice.StringFixed(2) != "5.50" {
		t.Errorf("prod-2 view = %+v", v)
	}
}
