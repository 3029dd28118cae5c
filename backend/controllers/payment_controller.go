package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcert/backend/config"
	"skillcert/backend/models"
	"skillcert/backend/utils"
)

// PaymentController records repayments made before an attempt reset. Capture
// and settlement live outside this backend.
type PaymentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPaymentController(db *gorm.DB, cfg *config.Config) *PaymentController {
	return &PaymentController{DB: db, Cfg: cfg}
}

func (pc *PaymentController) RecordPayment(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Amount     *int `json:"amount"`
		Discounted bool `json:"discounted"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Amount == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Payment amount is required",
		})
	}
	if *input.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Payment amount must be greater than zero",
		})
	}

	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	payment := models.PaymentRecord{
		UserID:     userID,
		Amount:     *input.Amount,
		Discounted: input.Discounted,
	}
	if err := pc.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record payment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Payment recorded successfully",
	})
}
