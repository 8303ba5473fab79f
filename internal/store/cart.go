package store

import (
	"fmt"
	"time"
)

// AddCartItem inserts a new cart line or, when the id already exists,
// bumps its quantity by one.
func (db *DB) AddCartItem(id, name string, price float64) error {
	now := time.Now().Unix()
	_, err := db.Exec(`
		INSERT INTO cart_items (id, name, price, quantity, added_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			quantity = quantity + 1,
			updated_at = excluded.updated_at
	`, id, name, price, now, now)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// RemoveCartItem deletes the cart line with the given id. Removing an
// id that is not in the cart is not an error.
func (db *DB) RemoveCartItem(id string) error {
	_, err := db.Exec(`DELETE FROM cart_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// CartItems returns all cart lines in insertion order.
func (db *DB) CartItems() ([]CartItem, error) {
	rows, err := db.Query(`
		SELECT id, name, price, quantity, added_at
		FROM cart_items
		ORDER BY added_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	var items []CartItem
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Quantity, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return items, nil
}

// CartCount returns the total quantity across all cart lines.
func (db *DB) CartCount() (int, error) {
	var n int
	err := db.QueryRow(`SELECT COALESCE(SUM(quantity), 0) FROM cart_items`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count cart items: %w", err)
	}
	return n, nil
}

// ClearCart deletes all cart lines.
func (db *DB) ClearCart() error {
	_, err := db.Exec(`DELETE FROM cart_items`)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
