package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcert/backend/config"
	"skillcert/backend/models"
	"skillcert/backend/utils"
)

// AdminController manages user accounts. Admin access itself is enforced by
// the admin middleware in front of these routes.
type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

func formatOrNil(t time.Time, ok bool) interface{} {
	if !ok {
		return nil
	}
	return t.Format(time.RFC3339)
}

// ListUsers returns every user, newest first, with their attempt and payment
// summaries.
func (ac *AdminController) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	err := ac.DB.Preload("Attempts").Preload("Payments").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	result := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		attemptsPassed := 0
		var lastAttempt time.Time
		for _, attempt := range user.Attempts {
			if attempt.Passed {
				attemptsPassed++
			}
			if attempt.CreatedAt.After(lastAttempt) {
				lastAttempt = attempt.CreatedAt
			}
		}

		paymentsTotal := 0
		var lastPayment time.Time
		for _, payment := range user.Payments {
			paymentsTotal += payment.Amount
			if payment.CreatedAt.After(lastPayment) {
				lastPayment = payment.CreatedAt
			}
		}

		result = append(result, fiber.Map{
			"id":                    user.ID,
			"name":                  user.Name,
			"email":                 user.Email,
			"role":                  user.Role,
			"is_admin":              user.IsAdmin,
			"created_at":            user.CreatedAt.Format(time.RFC3339),
			"attempts_total":        len(user.Attempts),
			"attempts_passed":       attemptsPassed,
			"attempts_failed":       len(user.Attempts) - attemptsPassed,
			"last_attempt_at":       formatOrNil(lastAttempt, len(user.Attempts) > 0),
			"payments_total_amount": paymentsTotal,
			"payments_count":        len(user.Payments),
			"last_payment_at":       formatOrNil(lastPayment, len(user.Payments) > 0),
		})
	}

	return c.JSON(fiber.Map{"users": result})
}

// UpdateUser changes a user's profile fields. Absent fields are left alone;
// present fields must be non-empty.
func (ac *AdminController) UpdateUser(c *fiber.Ctx) error {
	targetID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var target models.User
	if err := ac.DB.First(&target, targetID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var input struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Role    *string `json:"role"`
		IsAdmin *bool   `json:"is_admin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name == nil && input.Email == nil && input.Role == nil && input.IsAdmin == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid fields provided for update",
		})
	}

	if input.Email != nil {
		if *input.Email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email cannot be empty",
			})
		}
		var existing models.User
		err := ac.DB.Where("email = ? AND id <> ?", *input.Email, target.ID).First(&existing).Error
		if err == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email already in use",
			})
		}
		target.Email = *input.Email
	}

	if input.Name != nil {
		if *input.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Name cannot be empty",
			})
		}
		target.Name = *input.Name
	}

	if input.Role != nil {
		if *input.Role == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Role cannot be empty",
			})
		}
		target.Role = *input.Role
	}

	if input.IsAdmin != nil {
		target.IsAdmin = *input.IsAdmin
	}

	if err := ac.DB.Save(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email already in use",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
	})
}

// DeleteUser removes a user together with their attempts and payments. The
// deletes are unscoped: the email and the attempt-number slots must actually
// free up for reuse.
func (ac *AdminController) DeleteUser(c *fiber.Ctx) error {
	adminID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	targetID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	if adminID == uint(targetID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You cannot delete your own account",
		})
	}

	var target models.User
	if err := ac.DB.First(&target, targetID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", target.ID).Delete(&models.Attempt{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", target.ID).Delete(&models.PaymentRecord{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&target).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
