package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/mealbox-app/controllers"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/kds"
	"github.com/yeremiapane/mealbox-app/middlewares"
	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/services"
)

// maxImportUpload caps a legacy CSV upload.
const maxImportUpload = 32 << 20

type Options struct {
	CORSOrigin   string
	RateLimitRPS int
}

func SetupRouter(repo database.Repository, hub *kds.Hub, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if opts.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(opts.RateLimitRPS).RateLimit())
	}

	// Services
	catalog := services.NewPriceCatalog(repo)
	ledger := services.NewMealPassLedger(repo)
	orders := services.NewOrderAssembler(repo, ledger, hub)
	customers := services.NewCustomerService(repo)
	reconciler := services.NewReconciler(repo)

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(repo)
	customerCtrl := controllers.NewCustomerController(customers)
	menuCtrl := controllers.NewMenuController(catalog)
	pricingCtrl := controllers.NewPricingController(catalog)
	orderCtrl := controllers.NewOrderController(orders)
	passCtrl := controllers.NewMealPassController(ledger)
	importCtrl := controllers.NewImportController(reconciler, hub)
	kdsCtrl := controllers.NewKDSController(hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/pricing", pricingCtrl.GetAllPricing)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	staff := auth.Group("")
	staff.Use(middlewares.RequireRole(models.RoleStaff, models.RoleChef))
	{
		staff.GET("/orders", orderCtrl.GetAllOrders)
		staff.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	}

	desk := auth.Group("")
	desk.Use(middlewares.RequireRole(models.RoleStaff))
	{
		// Orders are taken at the desk; a meal pass is only spent by staff.
		desk.POST("/orders", orderCtrl.CreateOrder)

		desk.GET("/customers", customerCtrl.GetAllCustomers)
		desk.POST("/customers", customerCtrl.CreateCustomer)
		desk.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
		desk.GET("/customers/:customer_id/meal-passes", passCtrl.GetCustomerMealPasses)

		desk.POST("/meal-passes", passCtrl.CreateMealPass)
		desk.GET("/meal-passes/:pass_id", passCtrl.GetMealPass)
		desk.POST("/meal-passes/:pass_id/redeem", passCtrl.RedeemMealPass)
	}

	admin := auth.Group("")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.POST("/users", userCtrl.Register)

		admin.DELETE("/customers/:customer_id", customerCtrl.DeactivateCustomer)
		admin.PATCH("/meal-passes/:pass_id", passCtrl.AdjustMealPass)

		admin.GET("/menus", menuCtrl.GetAllMenus)
		admin.POST("/menus", menuCtrl.CreateMenu)
		admin.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
		admin.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)

		admin.GET("/pricing", pricingCtrl.GetAllPricing)
		admin.GET("/pricing/:box_type", pricingCtrl.GetPricing)
		admin.PUT("/pricing", pricingCtrl.SavePricing)

		admin.GET("/imports", importCtrl.GetImportRuns)
		admin.POST("/imports",
			middlewares.LimitBodySize(maxImportUpload),
			middlewares.LogImportRequest(),
			importCtrl.ImportLegacyOrders)
	}

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/kds", kdsCtrl.KDSHandler)
	}

	return r
}
