// Package cartclient is an embeddable cart store for Go storefront clients
// (kiosks, CLI tooling, integration tests). It mirrors the server's cookie
// cart: mutations apply locally first and are pushed to the server in the
// background, so the UI never waits on the network.
package cartclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
	"sync"
	"time"

	"loja-backend/models"
)

// Store holds the local cart state. All methods are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	items  []models.CartItem
	isOpen bool

	endpoint   string // full URL of the server cart endpoint
	httpClient *http.Client
	path       string // optional JSON snapshot file, "" disables persistence

	wg sync.WaitGroup
}

// New creates a store that syncs against the given cart endpoint and
// snapshots state to path after every mutation. Pass an empty path to keep
// the cart in memory only.
func New(endpoint, path string) *Store {
	jar, _ := cookiejar.New(nil)
	s := &Store{
		items:    []models.CartItem{},
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		path: path,
	}
	s.load()
	return s
}

// load restores the snapshot file if one exists. A missing or corrupt file
// starts an empty cart.
func (s *Store) load() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return
	}
	s.items = items
}

// persist writes the snapshot file. Must be called with the lock held.
func (s *Store) persist() {
	if s.path == "" {
		return
	}
	data, err := json.Marshal(s.items)
	if err != nil {
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("cartclient: failed to write snapshot: %v", err)
	}
}

// AddItem adds one unit of the product, capped at its stock. Adding past the
// cap is a silent no-op so the caller can bind it to a button without
// guarding.
func (s *Store) AddItem(product models.CartItem) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == product.ID {
			if s.items[i].Quantity >= s.items[i].Stock {
				s.mu.Unlock()
				return
			}
			s.items[i].Quantity++
			s.persist()
			s.mu.Unlock()
			s.sync()
			return
		}
	}
	product.Quantity = 1
	s.items = append(s.items, product)
	s.persist()
	s.mu.Unlock()
	s.sync()
}

// RemoveItem drops the line for the given product id.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	kept := make([]models.CartItem, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist()
	s.mu.Unlock()
	s.sync()
}

// UpdateQuantity sets the line quantity verbatim; zero or negative removes
// the line. Unlike AddItem this does not cap at stock, matching the server's
// update action.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persist()
	s.mu.Unlock()
	s.sync()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = []models.CartItem{}
	s.persist()
	s.mu.Unlock()
	s.sync()
}

// SetItems replaces the whole cart, dropping entries without an id or with a
// non-positive quantity. It does not trigger a server sync: it is the landing
// point FOR server state.
func (s *Store) SetItems(items []models.CartItem) {
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Valid() {
			kept = append(kept, item)
		}
	}
	s.mu.Lock()
	s.items = kept
	s.persist()
	s.mu.Unlock()
}

// Items returns a copy of the current cart lines.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems returns the summed quantity over all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// TotalPrice returns the cart subtotal.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CartSubtotal(s.items)
}

// Open / Close / IsOpen track the cart drawer visibility for UI callers.
func (s *Store) Open() {
	s.mu.Lock()
	s.isOpen = true
	s.mu.Unlock()
}

func (s *Store) Close() {
	s.mu.Lock()
	s.isOpen = false
	s.mu.Unlock()
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// sync pushes the full cart to the server in the background. Failures are
// logged and otherwise ignored: the local state already reflects the change
// and the next mutation retries with the complete list anyway.
func (s *Store) sync() {
	if s.endpoint == "" {
		return
	}
	items := s.Items()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.push(items); err != nil {
			log.Printf("cartclient: sync failed: %v", err)
		}
	}()
}

func (s *Store) push(items []models.CartItem) error {
	body, err := json.Marshal(items)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return nil
}

// Wait blocks until all in-flight background syncs have finished. Intended
// for shutdown paths and tests.
func (s *Store) Wait() {
	s.wg.Wait()
}

// SyncFromServer fetches the server cart and overwrites local state with it.
// On any error the local cart is kept untouched.
func (s *Store) SyncFromServer() error {
	if s.endpoint == "" {
		return errors.New("no endpoint configured")
	}

	resp, err := s.httpClient.Get(s.endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var payload struct {
		Success bool              `json:"success"`
		Cart    []models.CartItem `json:"cart"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return err
	}
	if payload.Cart == nil {
		return errors.New("response missing cart")
	}

	s.SetItems(payload.Cart)
	return nil
}
