// Package cart wraps the persisted cart with id normalization and
// count broadcasts.
package cart

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/coachmeplay/cmp/internal/bus"
	"github.com/coachmeplay/cmp/internal/store"
)

// Cart mutates the profile's cart store and publishes the updated item
// count on the bus after every change.
type Cart struct {
	db     *store.DB
	bus    *bus.Bus
	logger *zap.Logger
}

func New(db *store.DB, b *bus.Bus, logger *zap.Logger) *Cart {
	return &Cart{
		db:     db,
		bus:    b,
		logger: logger.Named("cart"),
	}
}

// NormalizeID converts any id value to its canonical string form, so
// that a numeric 7 and the string "7" address the same cart line.
func NormalizeID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Add puts an item in the cart, merging quantity with any existing line
// for the same normalized id.
func (c *Cart) Add(id any, name string, price float64) error {
	if err := c.db.AddCartItem(NormalizeID(id), name, price); err != nil {
		return err
	}
	c.broadcast()
	return nil
}

// Remove deletes the line with the given id, if present.
func (c *Cart) Remove(id any) error {
	if err := c.db.RemoveCartItem(NormalizeID(id)); err != nil {
		return err
	}
	c.broadcast()
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	if err := c.db.ClearCart(); err != nil {
		return err
	}
	c.broadcast()
	return nil
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() ([]store.CartItem, error) {
	return c.db.CartItems()
}

// Count returns the total quantity across all lines.
func (c *Cart) Count() (int, error) {
	return c.db.CartCount()
}

func (c *Cart) broadcast() {
	n, err := c.db.CartCount()
	if err != nil {
		c.logger.Warn("failed to count cart items", zap.Error(err))
		return
	}
	c.bus.Publish(bus.Event{Kind: bus.KindCartCount, Timestamp: time.Now(), Payload: n})
}
