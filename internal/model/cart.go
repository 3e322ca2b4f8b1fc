package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a line in a cart. Name, image and price are snapshotted when the line is created.
type CartItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Quantity  int             `json:"quantity"`
}

// LineKey identifies a cart line. Two lines with the same key are the same line.
type LineKey struct {
	ProductID uuid.UUID
	Size      string
	Color     string
}

// Key returns the identity of the line.
func (i CartItem) Key() LineKey {
	return LineKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

// Subtotal is price × quantity for the line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is owned by exactly one of a user or a guest token.
type Cart struct {
	ID         uuid.UUID       `json:"id"`
	UserID     *uuid.UUID      `json:"user,omitempty"`
	GuestID    string          `json:"guestId,omitempty"`
	Products   []CartItem      `json:"products"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// CartOwner selects a cart by user id or guest id. The user id wins when both are set.
type CartOwner struct {
	UserID  uuid.UUID
	GuestID string
}

// IsZero reports whether neither identifier is set.
func (o CartOwner) IsZero() bool {
	return o.UserID == uuid.Nil && o.GuestID == ""
}

// HasUser reports whether the owner names a user.
func (o CartOwner) HasUser() bool {
	return o.UserID != uuid.Nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Products) == 0
}

func (c *Cart) indexOf(key LineKey) int {
	for i := range c.Products {
		if c.Products[i].Key() == key {
			return i
		}
	}
	return -1
}

// Item returns the line with the given key.
func (c *Cart) Item(key LineKey) (CartItem, bool) {
	if i := c.indexOf(key); i >= 0 {
		return c.Products[i], true
	}
	return CartItem{}, false
}

// Upsert adds item's quantity to the line with the same key, or appends item as a new line.
// The existing line keeps its original price snapshot.
func (c *Cart) Upsert(item CartItem) {
	if i := c.indexOf(item.Key()); i >= 0 {
		c.Products[i].Quantity += item.Quantity
	} else {
		c.Products = append(c.Products, item)
	}
	c.Recalculate()
}

// SetQuantity overwrites the quantity of a line, removing it when quantity <= 0.
// It reports false when no line has the key.
func (c *Cart) SetQuantity(key LineKey, quantity int) bool {
	i := c.indexOf(key)
	if i < 0 {
		return false
	}
	if quantity > 0 {
		c.Products[i].Quantity = quantity
	} else {
		c.Products = append(c.Products[:i], c.Products[i+1:]...)
	}
	c.Recalculate()
	return true
}

// Remove deletes a line. It reports false when no line has the key.
func (c *Cart) Remove(key LineKey) bool {
	return c.SetQuantity(key, 0)
}

// Absorb upserts every line of other into c.
func (c *Cart) Absorb(other *Cart) {
	for _, item := range other.Products {
		c.Upsert(item)
	}
}

// Recalculate recomputes TotalPrice from the lines.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, item := range c.Products {
		total = total.Add(item.Subtotal())
	}
	c.TotalPrice = total
}
