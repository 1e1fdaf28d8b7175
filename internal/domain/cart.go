package domain

import "time"

const DefaultPaymentOption = "PAYMENT_OPTION_DEFAULT"

// Cart is the per-user pending purchase; keyed by email, created
// lazily on first add and emptied (not deleted) on checkout
type Cart struct {
	ID            int64      `json:"id,string" form:"id"`
	Email         string     `gorm:"uniqueIndex;size:256" json:"email" form:"email"`
	CartItems     []CartItem `gorm:"foreignKey:CartID" json:"cartItems"`
	PaymentOption string     `gorm:"size:64;default:PAYMENT_OPTION_DEFAULT" json:"paymentOption"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one (product, quantity) line. Name and Cost are a
// snapshot of the product at add time. The autoincrement ID preserves
// insertion order; cart_id+product_id is unique so a cart never holds
// the same product twice.
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	CartID    int64     `gorm:"uniqueIndex:idx_cart_product" json:"cart_id,string"`
	ProductID int64     `gorm:"uniqueIndex:idx_cart_product" json:"product_id,string"`
	Name      string    `json:"name"`
	Cost      float64   `json:"cost"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CartItem) TableName() string {
	return "cart_items"
}

// FindItem returns the index of productID in the item list, -1 when absent
func (c *Cart) FindItem(productID int64) int {
	for i := range c.CartItems {
		if c.CartItems[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Total is the checkout amount over the current item list
func (c *Cart) Total() float64 {
	var sum float64
	for i := range c.CartItems {
		sum += c.CartItems[i].Cost * float64(c.CartItems[i].Quantity)
	}
	return sum
}
