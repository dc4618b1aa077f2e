package routes

import (
	"log/slog"
	"net/http"

	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// Controllers groups every HTTP handler the router mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Salons     *controllers.SalonController
	Categories *controllers.CategoryController
	Catalog    *controllers.CatalogController
	Staff      *controllers.StaffController
	Customers  *controllers.CustomerController
	Bookings   *controllers.BookingController
	Reminders  *controllers.ReminderController
	Tickets    *controllers.SupportTicketController
	Reports    *controllers.ReportController
}

type Options struct {
	Logger       *slog.Logger
	JWTSecret    string
	CORSOrigins  []string
	Limiter      *limiter.Limiter // nil disables rate limiting
	MediaRoot    string
	MediaBaseURL string
}

func SetupRouter(opts Options, h Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = 16 << 20

	origins := make(map[string]bool, len(opts.CORSOrigins))
	for _, o := range opts.CORSOrigins {
		origins[o] = true
	}
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return origins[origin]
		},
	}))

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.Use(config.RequestLogger(logger))
	if opts.Limiter != nil {
		r.Use(config.RateLimit(opts.Limiter))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.MediaRoot != "" && opts.MediaBaseURL != "" {
		r.Static(opts.MediaBaseURL, opts.MediaRoot)
	}

	authMiddleware := utils.AuthMiddleware(opts.JWTSecret)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", authMiddleware, h.Auth.Me)
	}

	api := r.Group("/api")
	api.Use(authMiddleware)
	{
		salons := api.Group("/salons")
		{
			salons.POST("", h.Salons.CreateSalon)
			salons.GET("", h.Salons.GetSalons)
			salons.GET("/:salonId", h.Salons.GetSalon)
			salons.PUT("/:salonId", h.Salons.UpdateSalon)
			salons.POST("/:salonId/bookings", h.Bookings.CreateBooking)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", h.Bookings.GetBookings)
			bookings.GET("/:id", h.Bookings.GetBooking)
			bookings.PATCH("/:id", h.Bookings.UpdateBooking)
			bookings.GET("/:id/receipt", h.Bookings.GetReceipt)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", h.Categories.CreateCategory)
			categories.GET("", h.Categories.GetCategories)
		}

		customers := api.Group("/customers")
		{
			customers.POST("", h.Customers.CreateCustomer)
			customers.GET("", h.Customers.GetCustomers)
			customers.GET("/:id", h.Customers.GetCustomer)
			customers.PUT("/:id", h.Customers.UpdateCustomer)
		}

		services := api.Group("/services")
		{
			services.POST("", h.Catalog.CreateService)
			services.GET("", h.Catalog.GetServices)
			services.GET("/:id", h.Catalog.GetService)
			services.PUT("/:id", h.Catalog.UpdateService)
			services.DELETE("/:id", h.Catalog.DeleteService)
		}

		products := api.Group("/products")
		{
			products.POST("", h.Catalog.CreateProduct)
			products.GET("", h.Catalog.GetProducts)
			products.GET("/:id", h.Catalog.GetProduct)
			products.PUT("/:id", h.Catalog.UpdateProduct)
			products.DELETE("/:id", h.Catalog.DeleteProduct)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", h.Staff.GetEmployees)
			employees.POST("", h.Staff.AddEmployee)
			employees.PUT("/:id", h.Staff.UpdateEmployee)
		}

		chairs := api.Group("/chairs")
		{
			chairs.GET("", h.Staff.GetChairs)
			chairs.POST("", h.Staff.AddChair)
			chairs.PUT("/:id", h.Staff.UpdateChair)
		}

		templates := api.Group("/reminder-templates")
		{
			templates.POST("", h.Reminders.CreateReminderTemplate)
			templates.GET("", h.Reminders.GetReminderTemplates)
			templates.GET("/:id", h.Reminders.GetReminderTemplate)
			templates.PUT("/:id", h.Reminders.UpdateReminderTemplate)
			templates.DELETE("/:id", h.Reminders.DeleteReminderTemplate)
		}

		tickets := api.Group("/support-tickets")
		{
			tickets.POST("", h.Tickets.CreateTicket)
			tickets.GET("", h.Tickets.GetTickets)
			tickets.GET("/:id", h.Tickets.GetTicket)
			tickets.PATCH("/:id", h.Tickets.UpdateTicket)
		}

		api.GET("/reports", h.Reports.GetReportAnalytics)
		api.GET("/dashboard", h.Reports.GetDashboardOverview)
	}

	return r
}
