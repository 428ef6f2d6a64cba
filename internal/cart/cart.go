package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"reservation_service/internal/models"
	"reservation_service/internal/storage/kv"
)

// StorageKey is the single key the whole cart is serialized under.
const StorageKey = "restaurantCart"

var ErrUnknownItem = errors.New("item is not in the cart")

// Store holds the customer's in-progress order as an ordered list of lines
// keyed by item name. Every mutation rewrites the full cart to the backing
// kv.Store before returning.
type Store struct {
	kv    kv.Store
	lines []models.CartLine
}

// New loads the cart from the backing store. An absent key or stored data
// that fails to parse starts an empty cart; load problems never surface.
func New(ctx context.Context, store kv.Store) *Store {
	s := &Store{kv: store}

	raw, err := store.Get(ctx, StorageKey)
	if err != nil {
		return s
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return s
	}

	s.lines = lines
	return s
}

// Add puts one unit of the named item in the cart: an existing line's
// quantity grows by 1, otherwise a fresh line with quantity 1 is inserted.
func (s *Store) Add(ctx context.Context, name string, price float64) error {
	if line := s.find(name); line != nil {
		line.Quantity++
	} else {
		s.lines = append(s.lines, models.CartLine{
			Name:     name,
			Price:    price,
			Quantity: 1,
		})
	}

	return s.persist(ctx)
}

func (s *Store) Increase(ctx context.Context, name string) error {
	line := s.find(name)
	if line == nil {
		return ErrUnknownItem
	}

	line.Quantity++

	return s.persist(ctx)
}

// Decrease lowers the quantity by 1, floored at 1. Dropping a line entirely
// must go through Remove.
func (s *Store) Decrease(ctx context.Context, name string) error {
	line := s.find(name)
	if line == nil {
		return nil
	}

	if line.Quantity > 1 {
		line.Quantity--
	}

	return s.persist(ctx)
}

func (s *Store) Remove(ctx context.Context, name string) error {
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.Name != name {
			kept = append(kept, line)
		}
	}
	s.lines = kept

	return s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.lines = nil

	return s.persist(ctx)
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []models.CartLine {
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalCount is the sum of all quantities, for the badge display.
func (s *Store) TotalCount() int {
	var total int
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums price*quantity over all lines, rounded to 2 decimal places.
func (s *Store) TotalPrice() float64 {
	var total float64
	for _, line := range s.lines {
		total += line.Price * float64(line.Quantity)
	}
	return math.Round(total*100) / 100
}

func (s *Store) find(name string) *models.CartLine {
	for i := range s.lines {
		if s.lines[i].Name == name {
			return &s.lines[i]
		}
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	const op = "cart.persist"

	data, err := json.Marshal(s.lines)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
