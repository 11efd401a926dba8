package routes

import (
	"pjhweb-backend/config"
	"pjhweb-backend/controllers"
	"pjhweb-backend/services"
	"pjhweb-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the shared handles every router is built from.
type Deps struct {
	DB       *gorm.DB
	Auth     *utils.TokenAuth
	Notifier services.Notifier
	Config   config.Config
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(deps.Config.CORSAllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.Config.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	r.Use(config.PerformanceLogger(deps.Config.SlowRequest))

	quoteService := services.NewQuoteService(deps.DB)
	mailer := services.NewQuoteMailer(deps.DB, deps.Notifier, deps.Config.PublicURL)
	invoiceService := services.NewInvoiceService(deps.DB, deps.Notifier)

	customerController := controllers.NewCustomerController(deps.DB)
	quoteController := controllers.NewQuoteController(deps.DB, quoteService)
	adminController := controllers.NewAdminQuoteController(quoteService)
	responseController := controllers.NewResponseController(quoteService)
	emailController := controllers.NewEmailController(mailer)
	authController := controllers.NewAuthController(deps.Auth, deps.Config.AdminEmail, deps.Config.AdminPasswordHash)
	orderController := controllers.NewOrderController(deps.DB)
	invoiceController := controllers.NewInvoiceController(invoiceService)
	contactController := controllers.NewContactController(deps.Notifier, deps.Config.ContactInbox)
	migrateController := controllers.NewMigrateController(deps.DB)
	dashboardController := controllers.NewDashboardController(deps.DB)

	api := r.Group("/api")

	// Public routes
	api.GET("/health", controllers.Health)
	api.POST("/login", authController.Login)
	api.POST("/contact", contactController.SubmitContact)
	responses := api.Group("/responses")
	{
		responses.GET("/:token", responseController.GetQuoteByToken)
		responses.POST("/:token", responseController.RespondToQuote)
	}

	admin := api.Group("")
	admin.Use(deps.Auth.AuthMiddleware())
	{
		admin.GET("/me", authController.Me)
		admin.POST("/migrate", migrateController.RunMigrations)
		admin.GET("/dashboard", dashboardController.GetDashboardOverview)

		customers := admin.Group("/customers")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.DELETE("/:id", customerController.DeleteCustomer)

			customers.GET("/:id/quotes", quoteController.GetCustomerQuotes)
			customers.POST("/:id/quotes", quoteController.CreateQuote)
			customers.GET("/:id/quotes/:quoteId", quoteController.GetQuote)
			customers.PUT("/:id/quotes/:quoteId", quoteController.UpdateQuote)
			customers.DELETE("/:id/quotes/:quoteId", quoteController.DeleteQuote)
			customers.POST("/:id/quotes/:quoteId/send", emailController.SendQuote)
		}

		quotes := admin.Group("/quotes")
		{
			quotes.GET("", quoteController.GetQuotes)
			quotes.GET("/:id/history", quoteController.GetQuoteHistory)
			quotes.POST("/:id/convert", quoteController.ConvertQuote)
		}

		adminQuotes := admin.Group("/admin/quotes")
		{
			adminQuotes.POST("/:id/accept", adminController.AcceptQuote)
			adminQuotes.POST("/:id/reject", adminController.RejectQuote)
			adminQuotes.POST("/:id/amend", adminController.AmendQuote)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", orderController.GetOrders)
			orders.POST("", orderController.CreateOrder)
			orders.GET("/:id", orderController.GetOrder)
			orders.PUT("/:id", orderController.UpdateOrder)
			orders.DELETE("/:id", orderController.DeleteOrder)

			orders.GET("/:id/diary", orderController.GetDiary)
			orders.POST("/:id/diary", orderController.AddDiaryEntry)

			orders.GET("/:id/payments", orderController.GetPayments)
			orders.POST("/:id/payments", orderController.AddPayment)
			orders.DELETE("/:id/payments/:paymentId", orderController.DeletePayment)
		}

		invoices := admin.Group("/invoices")
		{
			invoices.GET("", invoiceController.GetInvoices)
			invoices.GET("/:orderId", invoiceController.GetOrderInvoices)
			invoices.POST("/:orderId/:stage", invoiceController.IssueInvoice)
		}
	}

	return r
}
