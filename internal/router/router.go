package router

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Products    *handler.ProductHandler
	Carts       *handler.CartHandler
	Checkouts   *handler.CheckoutHandler
	Orders      *handler.OrderHandler
	Users       *handler.UserHandler
	Admin       *handler.AdminHandler
	Uploads     *handler.UploadHandler
	Subscribers *handler.SubscriberHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// Bearer tokens are checked against users on every authenticated request.
func New(h Handlers, tokens auth.TokenService, users middleware.UserLookup, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	authenticated := middleware.Authenticate(tokens, users, logger)
	optional := middleware.OptionalAuthenticate(tokens, users, logger)
	admin := middleware.RequireAdmin(logger)

	user := func(fn http.HandlerFunc) http.Handler {
		return authenticated(fn)
	}
	adminOnly := func(fn http.HandlerFunc) http.Handler {
		return authenticated(admin(fn))
	}
	public := func(fn http.HandlerFunc) http.Handler {
		return optional(fn)
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})

	// Accounts
	mux.HandleFunc("POST /api/users/register", h.Users.Register)
	mux.HandleFunc("POST /api/users/login", h.Users.Login)
	mux.Handle("GET /api/users/profile", user(h.Users.Profile))

	// Catalogue
	mux.HandleFunc("GET /api/products", h.Products.List)
	mux.HandleFunc("GET /api/products/best-seller", h.Products.BestSeller)
	mux.HandleFunc("GET /api/products/new-arrivals", h.Products.NewArrivals)
	mux.HandleFunc("GET /api/products/similar/{id}", h.Products.Similar)
	mux.HandleFunc("GET /api/products/{id}", h.Products.GetByID)
	mux.Handle("POST /api/products", adminOnly(h.Products.Create))
	mux.Handle("PUT /api/products/{id}", adminOnly(h.Products.Update))
	mux.Handle("DELETE /api/products/{id}", adminOnly(h.Products.Delete))

	// Cart (guests allowed)
	mux.Handle("GET /api/cart", public(h.Carts.Get))
	mux.Handle("POST /api/cart", public(h.Carts.Add))
	mux.Handle("PUT /api/cart", public(h.Carts.Update))
	mux.Handle("DELETE /api/cart", public(h.Carts.Remove))
	mux.Handle("POST /api/cart/merge", user(h.Carts.Merge))

	// Checkout
	mux.Handle("POST /api/checkout", user(h.Checkouts.Create))
	mux.Handle("PUT /api/checkout/{id}/pay", user(h.Checkouts.Pay))
	mux.Handle("POST /api/checkout/{id}/finalize", user(h.Checkouts.Finalize))

	// Orders
	mux.Handle("GET /api/orders/my-orders", user(h.Orders.MyOrders))
	mux.Handle("GET /api/orders/{id}", user(h.Orders.GetByID))

	// Administration
	mux.Handle("GET /api/admin/orders", adminOnly(h.Admin.ListOrders))
	mux.Handle("PUT /api/admin/orders/{id}", adminOnly(h.Admin.UpdateOrder))
	mux.Handle("DELETE /api/admin/orders/{id}", adminOnly(h.Admin.DeleteOrder))
	mux.Handle("GET /api/admin/users", adminOnly(h.Admin.ListUsers))
	mux.Handle("POST /api/admin/users", adminOnly(h.Admin.CreateUser))
	mux.Handle("PUT /api/admin/users/{id}", adminOnly(h.Admin.UpdateUser))
	mux.Handle("DELETE /api/admin/users/{id}", adminOnly(h.Admin.DeleteUser))
	mux.Handle("GET /api/admin/products", adminOnly(h.Admin.ListProducts))

	mux.Handle("POST /api/upload", adminOnly(h.Uploads.Upload))
	mux.HandleFunc("POST /api/subscribe", h.Subscribers.Subscribe)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
