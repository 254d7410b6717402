package routes

import (
	"servsphere-backend/config"
	"servsphere-backend/controllers"
	"servsphere-backend/models"
	"servsphere-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://servsphere.vercel.app",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Uploaded photos
	r.Static("/images", "./public/images")
	r.Static("/service-images", "./public/service-images")

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/profile", controllers.Me)
		auth.PUT("/update-profile", controllers.UpdateProfile)
		auth.GET("/all-users", utils.RequireRoles(models.RoleAdmin), controllers.GetAllUsers)
	}

	services := r.Group("/api/services")
	{
		// Public catalog
		services.GET("", controllers.GetServices)
		services.GET("/category-counts", controllers.GetCategoryCounts)
		services.GET("/category/:category", controllers.GetServicesByCategory)

		protected := services.Group("")
		protected.Use(utils.AuthMiddleware(), utils.RequireRoles(models.RoleAdmin, models.RoleProvider))
		{
			protected.POST("", controllers.CreateService)
			protected.GET("/my", controllers.GetMyServices)
			protected.PUT("/:id", controllers.UpdateService)
			protected.DELETE("/:id", controllers.DeleteService)
		}

		services.GET("/:id", controllers.GetServiceByID)
	}

	bookings := r.Group("/api/bookings")
	bookings.Use(utils.AuthMiddleware())
	{
		bookings.POST("", utils.RequireRoles(models.RoleCustomer), controllers.CreateBooking)
		bookings.GET("/customer/:customerId", utils.RequireRoles(models.RoleCustomer), controllers.GetBookingsByCustomer)
		bookings.GET("/provider/:providerId", utils.RequireRoles(models.RoleProvider), controllers.GetBookingsByProvider)
		bookings.PUT("/status/:id", utils.RequireRoles(models.RoleProvider), controllers.UpdateBookingStatus)
		bookings.PUT("/cancel/:id", controllers.CancelBooking)
		bookings.PUT("/payment/:id", utils.RequireRoles(models.RoleAdmin, models.RoleProvider), controllers.UpdatePaymentStatus)
	}

	reviews := r.Group("/api/reviews")
	{
		reviews.POST("/service/:id", utils.AuthMiddleware(), controllers.AddReview)
		reviews.GET("/service/:id", controllers.GetServiceReviews)
	}

	// Provider dashboard
	r.GET("/api/dashboard", utils.AuthMiddleware(), utils.RequireRoles(models.RoleProvider), controllers.GetProviderDashboard)

	return r
}
