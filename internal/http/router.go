package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alterach/pos-app/internal/metrics"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(CorrelationID)
	r.Use(h.observeLatency)

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/{productId}", h.GetProduct)
			r.Put("/{productId}", h.UpdateProduct)
			r.Delete("/{productId}", h.DeleteProduct)
			r.Put("/{productId}/stock", h.SetStock)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{productId}", h.UpdateQuantity)
			r.Delete("/items/{productId}", h.RemoveItem)
			r.Post("/clear", h.ClearCart)
			r.Put("/customer", h.SetCustomer)
			r.Put("/payment-method", h.SetPaymentMethod)
		})

		r.Post("/checkout", h.Checkout)

		r.Route("/payments", func(r chi.Router) {
			r.Post("/invoice", h.CreateInvoice)
			r.Get("/invoice/{invoiceId}", h.GetInvoice)
			r.Post("/invoice/{invoiceId}/finalize", h.FinalizeExternalPayment)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.ListTransactions)
			r.Get("/{transactionId}", h.GetTransaction)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Post("/", h.CreateCustomer)
			r.Get("/{customerId}", h.GetCustomer)
			r.Put("/{customerId}", h.UpdateCustomer)
			r.Delete("/{customerId}", h.DeleteCustomer)
		})

		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)

		r.Get("/reports/summary", h.ReportSummary)
	})

	return r
}
