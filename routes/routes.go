package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NgocDuong9/be-betaw/controllers"
	"github.com/NgocDuong9/be-betaw/middleware"
	"github.com/NgocDuong9/be-betaw/services"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController
	Users    *controllers.UserController
	Admin    *controllers.AdminController
	Upload   *controllers.UploadController
	Database *controllers.DatabaseController
}

// Register mounts every route group under /api.
func Register(r *gin.Engine, tokens *services.TokenService, ctl Controllers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	auth := middleware.Authenticate(tokens)
	admin := middleware.RequireAdmin()

	authRoutes := api.Group("/auth", middleware.RateLimit())
	{
		authRoutes.POST("/register", ctl.Auth.Register)
		authRoutes.POST("/login", ctl.Auth.Login)
		authRoutes.GET("/profile", auth, ctl.Auth.Profile)
	}

	products := api.Group("/products")
	{
		products.GET("", ctl.Products.List)
		products.GET("/latest", ctl.Products.Latest)
		products.GET("/featured", ctl.Products.Featured)
		products.GET("/search", ctl.Products.Search)
		products.GET("/brands", ctl.Products.Brands)
		products.GET("/category/:category", ctl.Products.ByCategory)
		products.GET("/:id", ctl.Products.Get)

		products.POST("", auth, admin, ctl.Products.Create)
		products.PUT("/:id", auth, admin, ctl.Products.Update)
		products.DELETE("/:id", auth, admin, ctl.Products.Delete)
	}

	cart := api.Group("/cart", auth)
	{
		cart.GET("", ctl.Cart.Get)
		cart.DELETE("", ctl.Cart.Clear)
		cart.POST("/items", ctl.Cart.AddItem)
		cart.PUT("/items/:productId", ctl.Cart.UpdateItem)
		cart.DELETE("/items/:productId", ctl.Cart.RemoveItem)
		cart.POST("/sync", ctl.Cart.Sync)
	}

	orders := api.Group("/orders", auth)
	{
		orders.POST("", ctl.Orders.Create)
		orders.GET("", ctl.Orders.List)
		orders.GET("/stats", ctl.Orders.Stats)
		orders.GET("/:id", ctl.Orders.Get)
		orders.PUT("/:id/cancel", ctl.Orders.Cancel)
	}

	users := api.Group("/users", auth)
	{
		users.GET("/me", ctl.Users.Me)
		users.PUT("/me", ctl.Users.UpdateMe)
		users.DELETE("/me", ctl.Users.DeleteMe)
	}

	adminRoutes := api.Group("/admin", auth, admin)
	{
		adminRoutes.GET("/dashboard", ctl.Admin.Dashboard)

		adminRoutes.GET("/users", ctl.Admin.ListUsers)
		adminRoutes.GET("/users/:id", ctl.Admin.GetUser)
		adminRoutes.PUT("/users/:id/active", ctl.Admin.ToggleUserActive)
		adminRoutes.PUT("/users/:id/role", ctl.Admin.SetUserRole)
		adminRoutes.DELETE("/users/:id", ctl.Admin.DeleteUser)
		adminRoutes.GET("/users/:id/orders", ctl.Admin.UserOrders)

		adminRoutes.GET("/orders", ctl.Orders.ListAll)
		adminRoutes.GET("/orders/:id", ctl.Orders.GetAdmin)
		adminRoutes.PUT("/orders/:id", ctl.Orders.UpdateAdmin)

		adminRoutes.GET("/products", ctl.Products.ListAdmin)
		adminRoutes.GET("/products/:id", ctl.Products.GetAdmin)
	}

	upload := api.Group("/upload", auth, admin)
	{
		upload.POST("", ctl.Upload.Upload)
		upload.GET("/presign", ctl.Upload.Presign)
		upload.DELETE("", ctl.Upload.Delete)
	}

	api.POST("/database/reseed", auth, admin, ctl.Database.Reseed)
}
