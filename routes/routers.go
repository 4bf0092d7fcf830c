package routes

import (
	"context"
	"net/http"

	"homestay/config"
	"homestay/controllers"
	middlewares "homestay/middleware"
	"homestay/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/redis/go-redis/v9"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody, reservationService *services.ReservationService) {

	userController := controllers.NewUserController(db, redisCli)
	messageController := controllers.NewMessageController(m)
	notificationController := controllers.NewNotificationController(reservationService, m)

	v1 := router.Group("/api/v1")
	v1.GET("/users", middlewares.AuthMiddleware(1), userController.GetUsers)
	v1.POST("/users", middlewares.AuthMiddleware(1), userController.CreateUser)
	v1.GET("/users/:id", userController.GetUserByID)
	v1.PUT("/users", middlewares.AuthMiddleware(0, 1, 2), userController.UpdateUser)
	v1.PUT("/userStatus", middlewares.AuthMiddleware(1), userController.ChangeUserStatus)
	v1.GET("/profile", userController.GetProfile)
	v1.PUT("/changePassword", middlewares.AuthMiddleware(0, 1, 2), userController.ChangePassword)

	v1.GET("/verify-email", controllers.VerifyEmail)
	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/resendCode", controllers.ResendVerificationCode)
	v1.POST("/forgetPassword", controllers.ForgetPassword)
	v1.POST("/newPassword", controllers.ResetPassword)
	v1.POST("/verifyCode", controllers.VerifyCode)
	v1.POST("/auth/google", controllers.AuthGoogle)

	v1.GET("/accommodationUser", middlewares.SessionMiddleware(), controllers.SearchAccommodations)
	v1.GET("/accommodation", controllers.GetAllAccommodations)
	v1.POST("/accommodation", middlewares.AuthMiddleware(1, 2), controllers.CreateAccommodation)
	v1.GET("/accommodation/:id", controllers.GetAccommodationDetail)
	v1.PUT("/accommodationUpdate", middlewares.AuthMiddleware(1, 2), controllers.UpdateAccommodation)
	v1.PUT("/accommodationStatus", middlewares.AuthMiddleware(1, 2), controllers.ChangeAccommodationStatus)

	v1.GET("/pricing/:accommodationId", controllers.GetPricingConfiguration)
	v1.PUT("/pricing/:accommodationId", middlewares.AuthMiddleware(1, 2), controllers.UpsertPricingConfiguration)
	v1.POST("/pricing/:accommodationId/quote", controllers.QuotePrice)
	v1.POST("/pricing/:accommodationId/rules", middlewares.AuthMiddleware(1, 2), controllers.CreatePricingRule)
	v1.PUT("/pricingRule/:id", middlewares.AuthMiddleware(1, 2), controllers.UpdatePricingRule)
	v1.DELETE("/pricingRule/:id", middlewares.AuthMiddleware(1, 2), controllers.DeletePricingRule)

	v1.GET("/reservation", controllers.GetReservations)
	v1.POST("/reservation", controllers.CreateReservation)
	v1.PUT("/reservationUpdate", controllers.ChangeReservationStatus)
	v1.GET("/reservation/:id", controllers.GetReservationDetail)
	v1.DELETE("/reservation/:id", middlewares.AuthMiddleware(1), controllers.DeleteReservation)
	v1.GET("/reservationHistory", controllers.GetReservationsByUserId)

	v1.GET("/reviews", controllers.GetAllReviews)
	v1.POST("/reviews", middlewares.AuthMiddleware(0, 1, 2), controllers.CreateReview)
	v1.GET("/reviews/:id", controllers.GetReviewDetail)
	v1.PUT("/reviewUpdate", middlewares.AuthMiddleware(0, 1, 2), controllers.UpdateReview)
	v1.DELETE("/reviews/:id", middlewares.AuthMiddleware(0, 1, 2), controllers.DeleteReview)

	v1.POST("/payment", middlewares.AuthMiddleware(0, 1, 2), controllers.CreatePayment)
	v1.POST("/payment/callback", controllers.PaymentCallback)
	v1.GET("/payment/:id", controllers.GetPaymentDetail)
	v1.GET("/payments", controllers.GetPayments)

	v1.POST("/messages", middlewares.AuthMiddleware(0, 1, 2), messageController.SendMessage)
	v1.GET("/messages/:partnerId", middlewares.AuthMiddleware(0, 1, 2), messageController.GetConversation)
	v1.GET("/conversations", middlewares.AuthMiddleware(0, 1, 2), messageController.GetConversations)

	v1.GET("/notifications", middlewares.AuthMiddleware(), middlewares.RoleMiddleware(1), notificationController.GetAllNotifications)
	v1.GET("/myNotifications", middlewares.AuthMiddleware(0, 1, 2), notificationController.GetNotifyByUser)
	v1.POST("/notifyAll", middlewares.AuthMiddleware(), middlewares.RoleMiddleware(1), notificationController.NotifyAll)
	v1.POST("/notifyUser/:userID", middlewares.AuthMiddleware(), middlewares.RoleMiddleware(1), notificationController.NotifyUser)

	v1.POST("/img/multi-upload", func(c *gin.Context) {
		form, er := c.MultipartForm()
		if er != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}

		var urls []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Lỗi khi mở file"})
				return
			}
			defer src.Close()

			ctx := context.Background()
			resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "uploads"})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
				return
			}
			urls = append(urls, resp.SecureURL)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload thành công",
			"urls":    urls,
		})
	})

	v1.POST("/img/upload", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lỗi khi mở file"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "avatars"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload avatar thành công",
			"url":     resp.SecureURL,
		})
	})
}
