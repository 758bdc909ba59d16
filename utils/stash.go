package utils

import (
	"sync"
	"time"

	"loja-backend/models"
)

// Phone and Address mirror the checkout request payload so the webhook can
// email the customer later without re-asking for anything.
type Phone struct {
	AreaCode string `json:"area_code"`
	Number   string `json:"number"`
}

type Address struct {
	ZipCode      string `json:"zip_code"`
	StreetName   string `json:"street_name"`
	StreetNumber string `json:"street_number"`
	City         string `json:"city"`
	State        string `json:"state"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Complement   string `json:"complement,omitempty"`
}

type Customer struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Phone   Phone   `json:"phone"`
	Address Address `json:"address"`
}

// CheckoutEntry holds everything captured at preference-creation time, keyed
// by the external reference sent to the payment gateway.
type CheckoutEntry struct {
	Cart      []models.CartItem
	Customer  Customer
	Subtotal  float64
	Shipping  float64
	Discount  float64
	Total     float64
	CreatedAt time.Time
}

// CheckoutStash keeps pending checkouts in process memory between preference
// creation and the gateway's webhook. Entries older than one hour are swept
// on each write; anything the webhook cannot find is treated as expired.
type CheckoutStash struct {
	mu      sync.RWMutex
	entries map[string]*CheckoutEntry
}

// Checkouts is the process-wide stash instance.
var Checkouts = NewCheckoutStash()

func NewCheckoutStash() *CheckoutStash {
	return &CheckoutStash{entries: make(map[string]*CheckoutEntry)}
}

// Put stores an entry under the given reference, sweeping expired entries
// first. A zero CreatedAt is filled in with the current time.
func (s *CheckoutStash) Put(reference string, entry *CheckoutEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-1 * time.Hour)
	for ref, e := range s.entries {
		if e.CreatedAt.Before(cutoff) {
			delete(s.entries, ref)
		}
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries[reference] = entry
}

func (s *CheckoutStash) Get(reference string) (*CheckoutEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[reference]
	return entry, exists
}

func (s *CheckoutStash) Delete(reference string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, reference)
}

// Len reports the number of live entries.
func (s *CheckoutStash) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
