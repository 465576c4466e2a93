package domain

import (
	"errors"
	"testing"
	"time"
)

func TestTotal(t *testing.T) {
	items := []LineItem{
		{Name: "Design work", Quantity: 2, Price: 10},
		{Name: "Hosting", Quantity: 1, Price: 5},
	}

	if got := Subtotal(items); got != 25 {
		t.Fatalf("expected subtotal 25, got %v", got)
	}
	if got := Total(items, 3, 2); got != 26 {
		t.Fatalf("expected total 26, got %v", got)
	}

	// Order of items must not change the result
	reversed := []LineItem{items[1], items[0]}
	if Total(items, 3, 2) != Total(reversed, 3, 2) {
		t.Fatalf("total depends on item order")
	}
}

func TestTotal_NegativeNotClamped(t *testing.T) {
	items := []LineItem{{Name: "Consulting", Quantity: 1, Price: 10}}

	if got := Total(items, 0, 50); got != -40 {
		t.Fatalf("expected -40, got %v", got)
	}
}

func TestTotal_Empty(t *testing.T) {
	if got := Total(nil, 0, 0); got != 0 {
		t.Fatalf("expected 0 for no items, got %v", got)
	}
}

func TestLineItemIsBlank(t *testing.T) {
	cases := []struct {
		item  LineItem
		blank bool
	}{
		{LineItem{}, true},
		{LineItem{Name: "   "}, true},
		{LineItem{Name: "Design"}, false},
		{LineItem{Quantity: 2}, false},
		{LineItem{Price: 9.5}, false},
	}
	for _, c := range cases {
		if got := c.item.IsBlank(); got != c.blank {
			t.Errorf("IsBlank(%+v) = %v, want %v", c.item, got, c.blank)
		}
	}
}

func TestPrepareItems_DropsBlankRows(t *testing.T) {
	items := []LineItem{
		{Name: "Design", Quantity: 1, Price: 100},
		{}, // untouched form row
		{Name: "Hosting", Quantity: 2, Price: 5},
	}

	kept, err := PrepareItems(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 2 {
		t.Fatalf("expected 2 items, got %d", len(kept))
	}
	if kept[0].Name != "Design" || kept[1].Name != "Hosting" {
		t.Fatalf("unexpected items kept: %+v", kept)
	}
}

func TestPrepareItems_AllBlank(t *testing.T) {
	_, err := PrepareItems([]LineItem{{}, {Name: "  "}})
	if !errors.Is(err, ErrEmptyInvoice) {
		t.Fatalf("expected ErrEmptyInvoice, got %v", err)
	}
}

func TestPrepareItems_InvalidItem(t *testing.T) {
	// Non-blank but missing a name: price alone makes the row count
	_, err := PrepareItems([]LineItem{{Price: 10}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// Zero quantity on a named row is rejected, not dropped
	_, err = PrepareItems([]LineItem{{Name: "Design", Price: 10}})
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for zero quantity, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Paid", "Overdue"} {
		status, err := ParseStatus(s)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", s, err)
		}
		if string(status) != s {
			t.Fatalf("expected %q, got %q", s, status)
		}
	}

	if _, err := ParseStatus("Draft"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if _, err := ParseStatus("paid"); err == nil {
		t.Fatalf("expected error for wrong casing")
	}
}

func TestDraftValidate(t *testing.T) {
	due := time.Now().AddDate(0, 0, 30)

	draft := &InvoiceDraft{ClientID: "abc123", DueDate: due}
	if err := draft.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name  string
		draft InvoiceDraft
		field string
	}{
		{"missing client", InvoiceDraft{DueDate: due}, "clientId"},
		{"missing due date", InvoiceDraft{ClientID: "abc123"}, "dueDate"},
		{"negative tax", InvoiceDraft{ClientID: "abc123", DueDate: due, Tax: -1}, "tax"},
		{"negative discount", InvoiceDraft{ClientID: "abc123", DueDate: due, Discount: -1}, "discount"},
	}
	for _, c := range cases {
		err := c.draft.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", c.name, err)
			continue
		}
		if verr.Field != c.field {
			t.Errorf("%s: expected field %q, got %q", c.name, c.field, verr.Field)
		}
	}
}

func TestDraftPrepareItems_RejectsNegativeTotal(t *testing.T) {
	draft := &InvoiceDraft{
		ClientID: "abc123",
		Items:    []LineItem{{Name: "Design", Quantity: 2, Price: 10}},
		Tax:      3,
		Discount: 100,
		DueDate:  time.Now().AddDate(0, 0, 30),
	}

	_, err := draft.PrepareItems()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "discount" {
		t.Errorf("expected field discount, got %q", verr.Field)
	}

	// A discount that lands exactly on zero is still submittable
	draft.Discount = 23
	items, err := draft.PrepareItems()
	if err != nil {
		t.Fatalf("unexpected error for zero total: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestValidateUpdateSkipsClient(t *testing.T) {
	draft := &InvoiceDraft{DueDate: time.Now().AddDate(0, 0, 30)}
	if err := draft.ValidateUpdate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft.Tax = -1
	var verr *ValidationError
	if !errors.As(draft.ValidateUpdate(), &verr) || verr.Field != "tax" {
		t.Fatalf("expected tax ValidationError, got %v", verr)
	}
}

func TestClientName(t *testing.T) {
	inv := &Invoice{ClientID: "abc123"}
	if got := inv.ClientName(); got != "N/A" {
		t.Fatalf("expected N/A for dangling reference, got %q", got)
	}

	inv.Client = &Client{ID: "abc123", Name: "ACME"}
	if got := inv.ClientName(); got != "ACME" {
		t.Fatalf("expected ACME, got %q", got)
	}
}
