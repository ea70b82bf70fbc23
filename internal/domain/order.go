package domain

import "time"

// Order status values. Orders start Pending; further transitions belong to
// an out-of-band back-office process, not this service.
const OrderStatusPending = "Pending"

// Order captures the contact details submitted on the checkout form, which
// may diverge from the member's stored profile.
type Order struct {
	ID            int64     `json:"id" db:"order_id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	FullName      string    `json:"fullname" db:"fullname"`
	Address       string    `json:"address" db:"address"`
	Phone         string    `json:"phone" db:"phone"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// OrderItem is one cart entry turned into a row. Quantity is always 1;
// adding the same product twice yields two rows, not a quantity of 2.
type OrderItem struct {
	ID        int64 `json:"id" db:"item_id"`
	OrderID   int64 `json:"order_id" db:"order_id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

// OrderDetail is one row of the order/items/products join rendered on the
// confirmation page.
type OrderDetail struct {
	OrderID      int64     `json:"order_id" db:"order_id"`
	FullName     string    `json:"fullname" db:"fullname"`
	Address      string    `json:"address" db:"address"`
	Phone        string    `json:"phone" db:"phone"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	Quantity     int       `json:"quantity" db:"quantity"`
	ProductName  string    `json:"product_name" db:"product_name"`
	ProductImage string    `json:"product_image" db:"products_image"`
	Price        float64   `json:"price" db:"price"`
}
