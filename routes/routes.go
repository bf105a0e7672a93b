// Package routes mounts the API on a gin engine.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/controllers"
	"github.com/treenow/treenowbackend/middleware"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
)

type Deps struct {
	Store     *store.Store
	JWTSecret string
	// Images may be nil, in which case uploads answer 503.
	Images        utils.ImageStore
	FileValidator *utils.FileValidator
	AuthLimiter   *middleware.RateLimiter
}

func Register(r *gin.Engine, d Deps) {
	s := d.Store
	if d.FileValidator == nil {
		d.FileValidator = utils.NewImageValidator(0)
	}
	if d.AuthLimiter == nil {
		d.AuthLimiter = middleware.NewRateLimiter(0)
	}

	protect := middleware.Protect(s.Users, d.JWTSecret)
	admin := middleware.Admin()

	r.GET("/", controllers.Root())
	r.GET("/ping", controllers.Ping())

	api := r.Group("/api")

	users := api.Group("/users")
	{
		limited := d.AuthLimiter.Handler()
		users.POST("/register", limited, controllers.Register(s.Users))
		users.POST("/login", limited, controllers.Login(s.Users, d.JWTSecret))
		users.GET("/profile", protect, controllers.Profile())
		users.GET("", protect, admin, controllers.GetUsers(s.Users))
	}

	trees := api.Group("/trees")
	{
		trees.GET("", controllers.GetTrees(s))
		trees.GET("/:id", controllers.GetTree(s))
		trees.POST("", protect, admin, controllers.CreateTree(s))
		trees.PUT("/:id", protect, admin, controllers.UpdateTree(s))
		trees.DELETE("/:id", protect, admin, controllers.DeleteTree(s))
	}

	bonsai := api.Group("/bonsai")
	{
		bonsai.GET("", controllers.GetBonsais(s))
		bonsai.GET("/:id", controllers.GetBonsai(s))
		bonsai.POST("", protect, admin, controllers.CreateBonsai(s))
		bonsai.PUT("/:id", protect, admin, controllers.UpdateBonsai(s))
		bonsai.DELETE("/:id", protect, admin, controllers.DeleteBonsai(s))
	}

	blogs := api.Group("/blogs")
	{
		blogs.GET("", controllers.GetBlogs(s))
		blogs.GET("/:id", controllers.GetBlog(s))
		blogs.POST("", protect, admin, controllers.CreateBlog(s))
		blogs.PUT("/:id", protect, admin, controllers.UpdateBlog(s))
		blogs.DELETE("/:id", protect, admin, controllers.DeleteBlog(s))
	}

	products := api.Group("/products")
	{
		products.GET("", controllers.GetProducts(s))
		products.GET("/:id", controllers.GetProduct(s))
		products.POST("", protect, admin, controllers.AddProduct(s))
		products.PUT("/:id", protect, admin, controllers.UpdateProduct(s))
		products.DELETE("/:id", protect, admin, controllers.DeleteProduct(s))
	}

	diseases := api.Group("/diseases")
	{
		diseases.GET("", controllers.GetDiseases(s))
		diseases.GET("/:id", controllers.GetDisease(s))
		diseases.POST("", protect, admin, controllers.CreateDisease(s))
		diseases.PUT("/:id", protect, admin, controllers.UpdateDisease(s))
		diseases.DELETE("/:id", protect, admin, controllers.DeleteDisease(s))
	}

	locations := api.Group("/locations")
	{
		locations.GET("", controllers.GetLocations(s))
		locations.GET("/:id/trees", controllers.GetLocationTrees(s))
		locations.GET("/search/:query", controllers.SearchLocations(s))
		locations.POST("/nearby-trees", controllers.NearbyTrees(s))
		locations.POST("", protect, admin, controllers.CreateLocation(s))
		locations.PUT("/:id", protect, admin, controllers.UpdateLocation(s))
		locations.DELETE("/:id", protect, admin, controllers.DeleteLocation(s))
	}

	cart := api.Group("/cart")
	{
		cart.POST("/add", controllers.AddToCart(s.Carts))
		cart.GET("/:userId", controllers.GetCart(s.Carts))
		cart.PUT("/:userId/items/:productId", controllers.UpdateCartItem(s.Carts))
		cart.DELETE("/:userId/items/:productId", controllers.RemoveCartItem(s.Carts))
		cart.DELETE("/:userId", controllers.ClearCart(s.Carts))
	}

	api.POST("/coupons/apply", controllers.ApplyCoupon())

	orders := api.Group("/orders", protect)
	{
		orders.POST("", controllers.CreateOrder(s.Orders))
		orders.POST("/checkout", controllers.Checkout(s))
		orders.GET("/myorders", controllers.GetMyOrders(s.Orders))
		orders.GET("", admin, controllers.GetOrders(s))
		orders.PUT("/:id", admin, controllers.UpdateOrder(s.Orders))
		orders.DELETE("/:id", admin, controllers.DeleteOrder(s.Orders))
	}

	adminGroup := api.Group("/admin", protect, admin)
	{
		adminGroup.GET("/users", controllers.GetUsers(s.Users))
		adminGroup.GET("/orders", controllers.GetOrders(s))
		adminGroup.PUT("/orders/:id", controllers.UpdateOrder(s.Orders))
		adminGroup.DELETE("/orders/:id", controllers.DeleteOrder(s.Orders))
	}

	api.POST("/uploads/images", protect, admin, controllers.UploadImages(d.Images, d.FileValidator))
}
