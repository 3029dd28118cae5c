package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcert/backend/config"
	"skillcert/backend/models"
	"skillcert/backend/utils"
)

// CertificateController serves the data a certificate is rendered from: the
// latest passed attempt. Rendering itself happens client-side.
type CertificateController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCertificateController(db *gorm.DB, cfg *config.Config) *CertificateController {
	return &CertificateController{DB: db, Cfg: cfg}
}

func (cc *CertificateController) GetCertificate(c *fiber.Ctx) error {
	currentUserID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	// Users can only see their own certificate.
	if currentUserID != uint(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Unauthorized access",
		})
	}

	var user models.User
	if err := cc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var passedAttempt models.Attempt
	err = cc.DB.Where("user_id = ? AND passed = ?", userID, true).
		Order("created_at DESC").
		First(&passedAttempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":           "No passed attempt found",
				"has_certificate": false,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"has_certificate": true,
		"name":            user.Name,
		"role":            user.Role,
		"score":           passedAttempt.Score,
		"date":            passedAttempt.CreatedAt.Format("January 02, 2006"),
		"attempt_number":  passedAttempt.AttemptNumber,
	})
}
