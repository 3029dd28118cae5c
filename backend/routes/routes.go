package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcert/backend/config"
	"skillcert/backend/controllers"
	"skillcert/backend/engine"
	"skillcert/backend/middleware"
	"skillcert/backend/storage"
	"skillcert/backend/translate"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	bank := storage.NewQuestionStore(db)
	ledger := storage.NewAttemptStore(db)

	translator := translate.NewClient(cfg.TranslateEndpoint, time.Duration(cfg.TranslateTimeout)*time.Second, logger)
	localizer := engine.NewLocalizer(translator, cfg.TranslateCacheSize)

	authMiddleware := middleware.AuthMiddleware(cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/signup", authController.Signup)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// Test routes
	testController := controllers.NewTestController(db, cfg, bank, ledger, localizer, logger)
	test := app.Group("/api/test", authMiddleware)
	test.Get("/questions/:role", testController.GetQuestions)
	test.Post("/submit-test", testController.SubmitTest)
	test.Get("/attempts", testController.GetAttempts)
	test.Get("/attempt-count", testController.GetAttemptCount)
	test.Post("/reset-attempts", testController.ResetAttempts)

	// Translation routes
	translateController := controllers.NewTranslateController(localizer)
	app.Post("/api/translate/texts", translateController.TranslateTexts)

	// Certificate routes
	certificateController := controllers.NewCertificateController(db, cfg)
	app.Get("/api/certificate/:userId", authMiddleware, certificateController.GetCertificate)

	// Payment routes
	paymentController := controllers.NewPaymentController(db, cfg)
	app.Post("/api/payment/record", authMiddleware, paymentController.RecordPayment)

	// Admin routes
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", middleware.AdminMiddleware(db, cfg))
	admin.Get("/users", adminController.ListUsers)
	admin.Put("/users/:userId", adminController.UpdateUser)
	admin.Delete("/users/:userId", adminController.DeleteUser)
}
