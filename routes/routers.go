package routes

import (
	"label/controllers"
	middlewares "label/middleware"
	"label/services"
	"label/services/logger"
	"label/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody) (*services.ReconcileService, *services.SweepService) {

	log := logger.NewDefaultLogger(logger.InfoLevel)
	notifier := notification.NewMelodyService(m, db)
	ticketRepo := services.NewGormTicketRepository(db)
	mailer := services.NewSMTPMailer()
	gateway := services.NewHTTPPaymentGateway()

	reconciler := services.NewReconcileService(db, ticketRepo, mailer, notifier, log)
	sweeper := services.NewSweepService(ticketRepo, gateway, reconciler, log)

	ticketController := controllers.NewTicketController(ticketRepo, gateway, reconciler, sweeper)
	webhookController := controllers.NewWebhookController(reconciler)

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.SessionMiddleware())

	v1.POST("/auth/register", controllers.Register)
	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)

	v1.GET("/brands", controllers.GetBrands)
	v1.POST("/brands", middlewares.AuthMiddleware(1), controllers.CreateBrand)
	v1.GET("/brands/:id/artists", middlewares.AuthMiddleware(1, 2), controllers.GetBrandArtists)

	v1.GET("/releases", controllers.GetAllReleases)
	v1.GET("/releases/search", controllers.SearchReleases)
	v1.GET("/releases/:id", controllers.GetReleaseDetail)
	v1.POST("/releases", middlewares.AuthMiddleware(1, 2), controllers.CreateRelease)
	v1.PUT("/releaseUpdate", middlewares.AuthMiddleware(1, 2), controllers.UpdateRelease)
	v1.PUT("/releaseStatus", middlewares.AuthMiddleware(1, 2), controllers.ChangeReleaseStatus)

	// Phần chia royalty: vượt 100% ở bất kỳ loại doanh thu nào bị chặn
	// trước khi ghi
	v1.GET("/releases/:id/royalties", middlewares.AuthMiddleware(1, 2, 3), controllers.GetRoyaltySplits)
	v1.PUT("/releases/:id/royalties", middlewares.AuthMiddleware(1, 2), controllers.SaveRoyaltySplits)

	v1.POST("/earnings", middlewares.AuthMiddleware(1, 2), controllers.CreateEarning)
	v1.GET("/releases/:id/earnings", middlewares.AuthMiddleware(1, 2), controllers.GetEarningsByRelease)
	v1.POST("/payments", middlewares.AuthMiddleware(1), controllers.CreatePayment)
	v1.GET("/payments", middlewares.AuthMiddleware(1, 2), controllers.GetPaymentsBySubject)

	v1.GET("/ledger/balance", middlewares.AuthMiddleware(1, 2, 3), controllers.GetBalance)
	v1.GET("/ledger/statement", middlewares.AuthMiddleware(1, 2, 3), controllers.ExportStatement)

	v1.POST("/feeSettings", middlewares.AuthMiddleware(1), controllers.SaveFeeSettings)
	v1.GET("/feeSettings/:id", middlewares.AuthMiddleware(1, 2), controllers.GetFeeSettings)

	v1.GET("/events", controllers.GetAllEvents)
	v1.GET("/events/:id", controllers.GetEventDetail)
	v1.POST("/events", middlewares.AuthMiddleware(1, 2), controllers.CreateEvent)
	v1.PUT("/eventUpdate", middlewares.AuthMiddleware(1, 2), controllers.UpdateEvent)

	v1.POST("/tickets/order", ticketController.CreateTicketOrder)
	v1.POST("/tickets/verify", ticketController.VerifyTicket)
	v1.GET("/events/:id/tickets", middlewares.AuthMiddleware(1, 2), ticketController.GetTicketsByEvent)
	v1.POST("/tickets/resend", middlewares.AuthMiddleware(1), ticketController.ResendTicket)
	v1.POST("/tickets/sweep", middlewares.AuthMiddleware(1), ticketController.SweepAbandonedOrders)

	// Gateway gọi vào không có token; mọi kết quả đều trả 200
	v1.POST("/webhooks/payment", webhookController.HandlePaymentWebhook)

	v1.GET("/notifications", middlewares.AuthMiddleware(1), controllers.GetNotifications)
	v1.PUT("/notifications/:id/read", middlewares.AuthMiddleware(1), controllers.MarkNotificationRead)

	return reconciler, sweeper
}
