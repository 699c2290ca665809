package customer

import "time"

// Customer is a registered buyer. TotalOrders and TotalSpent are stored
// counters carried over from the seed data; the checkout flow does not
// update them when a transaction references the customer.
type Customer struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	TotalOrders int       `json:"totalOrders"`
	TotalSpent  int64     `json:"totalSpent"`
	CreatedAt   time.Time `json:"createdAt"`
}
