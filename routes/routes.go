package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kozhomberdieveldar/dodo-pizza/handlers"
	"github.com/kozhomberdieveldar/dodo-pizza/middleware"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Catalog
		public.GET("/pizzas", handlers.ListPizzas)
		public.GET("/pizzas/:id", handlers.GetPizza)
		public.GET("/categories", handlers.ListCategories)
		public.GET("/categories/:slug/pizzas", handlers.ListCategoryPizzas)

		// Reviews (anonymous allowed; token recorded when present)
		public.GET("/reviews", handlers.ListReviews)
		public.POST("/reviews", middleware.AuthOptional(), handlers.CreateReview)

		// Promo preview
		public.POST("/promo/validate", handlers.ValidatePromo)

		// Order lifecycle info (for docs and clients)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/profile", handlers.UpdateProfile)

		// Cart
		auth.GET("/cart", handlers.GetCart)
		auth.POST("/cart", handlers.AddToCart)
		auth.PUT("/cart/:id", handlers.UpdateCartItem)
		auth.POST("/cart/update", handlers.UpdateCart)
		auth.DELETE("/cart/:id", handlers.DeleteCartItem)

		// Orders
		auth.POST("/orders/create", handlers.CreateOrder)
		auth.GET("/orders", handlers.GetMyOrders)
		auth.GET("/orders/:id", handlers.GetOrderDetail)
		auth.PUT("/orders/:id/cancel", handlers.CancelOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/pizzas", handlers.CreatePizza)
		admin.PUT("/pizzas/:id", handlers.UpdatePizza)
		admin.DELETE("/pizzas/:id", handlers.DeletePizza)
		admin.POST("/categories", handlers.CreateCategory)

		admin.POST("/promo", handlers.CreatePromo)
		admin.GET("/promo", handlers.ListPromos)

		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus)
		admin.PUT("/orders/:id/paid", handlers.AdminMarkOrderPaid)
		admin.GET("/users", handlers.AdminGetAllUsers)
	}
}
