// backend/internal/domain/order/entity_test.go
package order

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{raw: "pending", want: StatusPending},
		{raw: "paid", want: StatusPaid},
		{raw: "shipped", want: StatusShipped},
		{raw: "delivered", want: StatusDelivered},
		{raw: "cancelled", want: StatusCancelled},
		{raw: " Shipped ", want: StatusShipped},
		{raw: "PAID", want: StatusPaid},
		{raw: "refunded", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseStatus(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidStatus) {
					t.Fatalf("err = %v, want ErrInvalidStatus", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	total := decimal.RequireFromString("25.00")

	t.Run("defaults", func(t *testing.T) {
		o, err := New("o-1", "u-1", total, "Calle 5 #12", "", nil, now)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if o.Status != StatusPending {
			t.Errorf("status = %s, want pending", o.Status)
		}
		if o.PaymentMethod != "cash" {
			t.Errorf("payment method = %s, want cash default", o.PaymentMethod)
		}
		if o.PaymentRef != nil {
			t.Errorf("payment ref = %v, want nil", o.PaymentRef)
		}
		if !o.CreatedAt.Equal(now) || !o.UpdatedAt.Equal(now) {
			t.Error("timestamps not taken from now")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := New("", "u-1", total, "addr", "", nil, now); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("empty id: err = %v", err)
		}
		if _, err := New("o-1", "", total, "addr", "", nil, now); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("empty buyer: err = %v", err)
		}
		if _, err := New("o-1", "u-1", total, "  ", "", nil, now); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("blank address: err = %v", err)
		}
		neg := decimal.RequireFromString("-1")
		if _, err := New("o-1", "u-1", neg, "addr", "", nil, now); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("negative total: err = %v", err)
		}
	})
}

func TestItemSubtotal(t *testing.T) {
	it := Item{Quantity: 3, UnitPrice: decimal.RequireFromString("10.50")}
	if got := it.Subtotal().StringFixed(2); got != "31.50" {
		t.Errorf("subtotal = %s, want 31.50", got)
	}
}
