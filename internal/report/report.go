// Package report derives sales figures from the transaction log.
package report

import (
	"sort"

	"github.com/alterach/pos-app/internal/cart"
	"github.com/alterach/pos-app/internal/transaction"
)

type DailyPoint struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Revenue int64  `json:"revenue"`
	Count   int    `json:"count"`
}

type ProductSales struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Revenue   int64  `json:"revenue"`
}

type Summary struct {
	Revenue         int64                        `json:"revenue"`
	TaxCollected    int64                        `json:"taxCollected"`
	Count           int                          `json:"count"`
	AverageOrder    int64                        `json:"averageOrder"`
	ByPaymentMethod map[cart.PaymentMethod]int64 `json:"byPaymentMethod"`
	Daily           []DailyPoint                 `json:"daily"`
	TopProducts     []ProductSales               `json:"topProducts"`
}

// Summarize folds the transaction log into the figures the reports page
// shows. The input order does not matter; daily points come out oldest
// first and top products by quantity sold.
func Summarize(txns []transaction.Transaction) Summary {
	s := Summary{ByPaymentMethod: map[cart.PaymentMethod]int64{}}

	daily := map[string]*DailyPoint{}
	products := map[string]*ProductSales{}

	for _, t := range txns {
		s.Revenue += t.Total
		s.TaxCollected += t.TaxAmount
		s.Count++
		s.ByPaymentMethod[t.PaymentMethod] += t.Total

		day := t.CreatedAt.Format("2006-01-02")
		dp, ok := daily[day]
		if !ok {
			dp = &DailyPoint{Date: day}
			daily[day] = dp
		}
		dp.Revenue += t.Total
		dp.Count++

		for _, it := range t.Items {
			ps, ok := products[it.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: it.ProductID, Name: it.Name}
				products[it.ProductID] = ps
			}
			ps.Quantity += it.Quantity
			ps.Revenue += it.UnitPrice * int64(it.Quantity)
		}
	}

	if s.Count > 0 {
		s.AverageOrder = s.Revenue / int64(s.Count)
	}

	for _, dp := range daily {
		s.Daily = append(s.Daily, *dp)
	}
	sort.Slice(s.Daily, func(i, j int) bool { return s.Daily[i].Date < s.Daily[j].Date })

	for _, ps := range products {
		s.TopProducts = append(s.TopProducts, *ps)
	}
	sort.Slice(s.TopProducts, func(i, j int) bool {
		if s.TopProducts[i].Quantity != s.TopProducts[j].Quantity {
			return s.TopProducts[i].Quantity > s.TopProducts[j].Quantity
		}
		return s.TopProducts[i].Name < s.TopProducts[j].Name
	})

	return s
}
