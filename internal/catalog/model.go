package catalog

import "time"

// Product is a sellable item. Price is a whole-rupiah amount; formatting to
// "Rp 25.000" happens only in the presentation layer.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	Rating    float64   `json:"rating"`
	Duration  string    `json:"duration"`
	Icon      string    `json:"icon"`
	UpdatedAt time.Time `json:"updatedAt"`
}
