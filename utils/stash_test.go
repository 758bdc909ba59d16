package utils

import (
	"testing"
	"time"

	"loja-backend/models"
)

func testEntry() *CheckoutEntry {
	return &CheckoutEntry{
		Cart: []models.CartItem{
			{ID: "p1", Name: "Caneca", Price: 25.0, Quantity: 2},
		},
		Customer: Customer{Email: "cliente@example.com", Name: "Maria"},
		Subtotal: 50.0,
		Shipping: 40.0,
		Total:    90.0,
	}
}

func TestStashPutAndGet(t *testing.T) {
	stash := NewCheckoutStash()
	stash.Put("PED-1", testEntry())

	entry, found := stash.Get("PED-1")
	if !found {
		t.Fatal("Expected entry to be found")
	}
	if entry.Customer.Email != "cliente@example.com" {
		t.Errorf("Unexpected entry: %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt filled on Put")
	}
}

func TestStashGetUnknownReference(t *testing.T) {
	stash := NewCheckoutStash()

	if _, found := stash.Get("PED-fantasma"); found {
		t.Error("Expected miss for unknown reference")
	}
}

func TestStashDelete(t *testing.T) {
	stash := NewCheckoutStash()
	stash.Put("PED-1", testEntry())
	stash.Delete("PED-1")

	if _, found := stash.Get("PED-1"); found {
		t.Error("Expected entry gone after delete")
	}
}

func TestStashDeleteUnknownIsNoOp(t *testing.T) {
	stash := NewCheckoutStash()
	stash.Delete("PED-fantasma")

	if stash.Len() != 0 {
		t.Errorf("Expected empty stash, got %d", stash.Len())
	}
}

func TestStashSweepsExpiredOnPut(t *testing.T) {
	stash := NewCheckoutStash()

	old := testEntry()
	old.CreatedAt = time.Now().Add(-2 * time.Hour)
	stash.Put("PED-velho", old)

	recent := testEntry()
	recent.CreatedAt = time.Now().Add(-30 * time.Minute)
	stash.Put("PED-recente", recent)

	// This write sweeps anything older than one hour.
	stash.Put("PED-novo", testEntry())

	if _, found := stash.Get("PED-velho"); found {
		t.Error("Expected expired entry swept")
	}
	if _, found := stash.Get("PED-recente"); !found {
		t.Error("Expected recent entry kept")
	}
	if stash.Len() != 2 {
		t.Errorf("Expected 2 live entries, got %d", stash.Len())
	}
}

func TestStashOverwriteSameReference(t *testing.T) {
	stash := NewCheckoutStash()
	stash.Put("PED-1", testEntry())

	updated := testEntry()
	updated.Total = 123.45
	stash.Put("PED-1", updated)

	entry, _ := stash.Get("PED-1")
	if entry.Total != 123.45 {
		t.Errorf("Expected overwrite, got total %v", entry.Total)
	}
	if stash.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", stash.Len())
	}
}
